package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/atlas/schema"
)

// factorDefinitions describes the four factors in reporting order.
var factorDefinitions = map[schema.FactorKey]schema.FactorDefinition{
	schema.FactorConfidence: {
		Name:    "Confidence",
		Purpose: "How sure the team is of meeting the sprint goals (1-5 votes)",
		Default: fmt.Sprintf("neutral %.0f/5 vote average", schema.NeutralConfidence),
	},
	schema.FactorVelocity: {
		Name:    "Velocity",
		Purpose: "Declining trend of the 3 latest velocity metrics and distance to target",
		Default: fmt.Sprintf("%.1f with fewer than 2 velocity metrics", schema.InsufficientDataFactor),
	},
	schema.FactorThroughput: {
		Name:    "Throughput",
		Purpose: "Average of the 3 latest throughput or completion rate metrics",
		Default: fmt.Sprintf("%.1f without throughput metrics", schema.InsufficientDataFactor),
	},
	schema.FactorObjective: {
		Name:    "Objectives",
		Purpose: "Health of the sprint objectives by status",
		Default: fmt.Sprintf("%.0f%% health without objectives", schema.EmptyObjectiveHealth),
	},
}

// BuildWeightsModel constructs the render model for the weights command.
func BuildWeightsModel() *schema.WeightsRenderModel {
	factors := make([]schema.FactorDefinition, 0, len(schema.AllFactorKeys))
	terms := make([]string, 0, len(schema.AllFactorKeys))
	for _, key := range schema.AllFactorKeys {
		def := factorDefinitions[key]
		def.Key = key
		def.Weight = schema.FactorWeights[key]
		factors = append(factors, def)
		terms = append(terms, fmt.Sprintf("%.2f*%s", def.Weight, key))
	}

	return &schema.WeightsRenderModel{
		Title:       "Atlas Risk Weights",
		Description: "Overall score = weighted sum of four risk factors in [0,1], scaled to 0-100",
		Formula:     fmt.Sprintf("score = round(100*(%s))", strings.Join(terms, "+")),
		Factors:     factors,
		Bands:       schema.LevelBands(),
	}
}
