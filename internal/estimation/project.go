package estimation

import (
	"math"

	"github.com/stacksolutions/estimator/internal/model"
)

const (
	BaseCost  = 15000.0
	BaseWeeks = 6.0

	// Estimates are reported as total × [SpreadLow, SpreadHigh].
	SpreadLow  = 0.8
	SpreadHigh = 1.2

	// HighVarianceProjectType always yields low confidence.
	HighVarianceProjectType = "ai"
	// TopComplexityTier caps confidence at medium.
	TopComplexityTier = "enterprise"

	lowConfidenceFeatureCount    = 5
	mediumConfidenceFeatureCount = 3
)

// EstimateProject computes the cost and duration range of a project.
// Unknown identifiers fail with a *SelectionError; no default is applied.
// Repeated feature identifiers count once.
func EstimateProject(t *RateTable, req model.ProjectEstimateRequest) (model.ProjectEstimateResult, error) {
	projectType, ok := t.ProjectType(req.Type)
	if !ok {
		return model.ProjectEstimateResult{}, &SelectionError{Kind: "project type", ID: req.Type}
	}
	complexity, ok := t.ComplexityLevel(req.Complexity)
	if !ok {
		return model.ProjectEstimateResult{}, &SelectionError{Kind: "complexity", ID: req.Complexity}
	}

	multiplier := projectType.Multiplier * complexity.Multiplier
	cost := BaseCost * multiplier
	weeks := BaseWeeks * multiplier

	selected := make(map[string]bool, len(req.Features))
	for _, id := range req.Features {
		if selected[id] {
			continue
		}
		feature, ok := t.Feature(id)
		if !ok {
			return model.ProjectEstimateResult{}, &SelectionError{Kind: "feature", ID: id}
		}
		selected[id] = true
		cost += feature.Cost
		weeks += float64(feature.Weeks)
	}

	return model.ProjectEstimateResult{
		MinCost:    int64(math.Round(cost * SpreadLow)),
		MaxCost:    int64(math.Round(cost * SpreadHigh)),
		MinWeeks:   int(math.Round(weeks * SpreadLow)),
		MaxWeeks:   int(math.Round(weeks * SpreadHigh)),
		Confidence: confidence(projectType.ID, complexity.ID, len(selected)),
	}, nil
}

// confidence applies the first matching rule: low, then medium, then high.
func confidence(projectType, complexity string, features int) model.Confidence {
	switch {
	case projectType == HighVarianceProjectType || features > lowConfidenceFeatureCount:
		return model.ConfidenceLow
	case features > mediumConfidenceFeatureCount || complexity == TopComplexityTier:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceHigh
	}
}
