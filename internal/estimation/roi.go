package estimation

import (
	"fmt"
	"math"

	"github.com/stacksolutions/estimator/internal/model"
)

const (
	WeeksPerYear  = 52
	MonthsPerYear = 12
)

// EstimateROI projects savings, revenue growth and payback for an ROI category.
// Negative or non-finite inputs fail with an *InputError, an unknown category with a
// *SelectionError. Money figures are rounded to cents, the percentage and payback to
// two decimals.
func EstimateROI(t *RateTable, req model.ROIEstimateRequest) (model.ROIEstimateResult, error) {
	if err := validateROIRequest(req); err != nil {
		return model.ROIEstimateResult{}, err
	}
	category, ok := t.ROICategory(req.Category)
	if !ok {
		return model.ROIEstimateResult{}, &SelectionError{Kind: "roi category", ID: req.Category}
	}
	if !(category.EngagementCost > 0) {
		return model.ROIEstimateResult{}, configErrorf("roi category %q has engagement cost %v", category.ID, category.EngagementCost)
	}

	weeklyCost := req.InefficiencyHours * req.HourlyRate * float64(req.TeamSize)
	annualCost := weeklyCost * WeeksPerYear

	savings := annualCost * (category.EfficiencyMultiplier - 1)
	revenueIncrease := req.CurrentRevenue * (category.RevenueMultiplier - 1)
	totalBenefit := savings + revenueIncrease

	roi := (totalBenefit - category.EngagementCost) / category.EngagementCost * 100

	derived := []struct {
		name  string
		value float64
	}{
		{"annual_inefficiency_cost", annualCost},
		{"potential_savings", savings},
		{"revenue_increase", revenueIncrease},
		{"total_benefit", totalBenefit},
		{"roi_percentage", roi},
	}
	for _, d := range derived {
		if !finite(d.value) {
			return model.ROIEstimateResult{}, fmt.Errorf("%w: inputs too large, %s is out of range", ErrInvalidInput, d.name)
		}
	}

	payback := model.NotRecoverable
	if totalBenefit > 0 {
		// A vanishingly small benefit never pays back in practice.
		if months := category.EngagementCost / (totalBenefit / MonthsPerYear); finite(months) {
			payback = model.Payback{Months: round2(months), Recoverable: true}
		}
	}

	return model.ROIEstimateResult{
		AnnualInefficiencyCost: round2(annualCost),
		PotentialSavings:       round2(savings),
		RevenueIncrease:        round2(revenueIncrease),
		TotalBenefit:           round2(totalBenefit),
		EngagementCost:         category.EngagementCost,
		ROIPercentage:          round2(roi),
		Payback:                payback,
	}, nil
}

func validateROIRequest(req model.ROIEstimateRequest) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"current_revenue", req.CurrentRevenue},
		{"team_size", float64(req.TeamSize)},
		{"hourly_rate", req.HourlyRate},
		{"inefficiency_hours", req.InefficiencyHours},
	}
	for _, f := range fields {
		if !finite(f.value) || f.value < 0 {
			return &InputError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

// roundingLimit is where float64 stops carrying fractional digits.
const roundingLimit = 1 << 52

func round2(v float64) float64 {
	if math.Abs(v) >= roundingLimit {
		return v
	}
	return math.Round(v*100) / 100
}
