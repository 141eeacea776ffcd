package algo

import "github.com/huangsam/atlas/schema"

var riskColors = map[schema.RiskLevel]schema.RiskColor{
	schema.LowRisk:      {BG: "bg-green-100", Text: "text-green-800", Border: "border-green-300"},
	schema.ModerateRisk: {BG: "bg-yellow-100", Text: "text-yellow-800", Border: "border-yellow-300"},
	schema.HighRisk:     {BG: "bg-orange-100", Text: "text-orange-800", Border: "border-orange-300"},
	schema.CriticalRisk: {BG: "bg-red-100", Text: "text-red-800", Border: "border-red-300"},
}

// fallbackColor is returned for any unrecognized level.
var fallbackColor = schema.RiskColor{BG: "bg-gray-100", Text: "text-gray-800", Border: "border-gray-300"}

// GetRiskColor maps a risk level to its presentation tokens.
func GetRiskColor(level schema.RiskLevel) schema.RiskColor {
	if c, ok := riskColors[level]; ok {
		return c
	}
	return fallbackColor
}
