package algo

import (
	"testing"

	"github.com/huangsam/atlas/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetRiskColor(t *testing.T) {
	seen := map[schema.RiskColor]schema.RiskLevel{}
	for _, level := range schema.AllRiskLevels {
		c := GetRiskColor(level)
		assert.NotEmpty(t, c.BG, level)
		assert.NotEmpty(t, c.Text, level)
		assert.NotEmpty(t, c.Border, level)
		assert.NotEqual(t, fallbackColor, c, level)

		prev, dup := seen[c]
		assert.False(t, dup, "%s shares colors with %s", level, prev)
		seen[c] = level
	}
}

func TestGetRiskColorFallback(t *testing.T) {
	assert.Equal(t, fallbackColor, GetRiskColor("UNKNOWN"))
	assert.Equal(t, fallbackColor, GetRiskColor(""))
	assert.Contains(t, GetRiskColor("low").BG, "gray", "levels are case-sensitive")
}
