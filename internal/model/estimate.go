package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Confidence is a qualitative reliability label for a project estimate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// EstimateKind distinguishes the two calculators in stored records.
type EstimateKind string

const (
	EstimateKindProject EstimateKind = "project"
	EstimateKindROI     EstimateKind = "roi"
)

// Valid reports whether k is a known kind.
func (k EstimateKind) Valid() bool {
	return k == EstimateKindProject || k == EstimateKindROI
}

// ProjectEstimateRequest selects a project type, a complexity tier and optional features.
type ProjectEstimateRequest struct {
	Type       string   `json:"type"`
	Complexity string   `json:"complexity"`
	Features   []string `json:"features"`
}

// ProjectEstimateResult is a cost and duration range. Costs are whole currency units.
type ProjectEstimateResult struct {
	MinCost    int64      `json:"min_cost"`
	MaxCost    int64      `json:"max_cost"`
	MinWeeks   int        `json:"min_weeks"`
	MaxWeeks   int        `json:"max_weeks"`
	Confidence Confidence `json:"confidence"`
}

// ROIEstimateRequest describes the current situation of a prospective client.
type ROIEstimateRequest struct {
	CurrentRevenue    float64 `json:"current_revenue"`
	TeamSize          int     `json:"team_size"`
	HourlyRate        float64 `json:"hourly_rate"`
	InefficiencyHours float64 `json:"inefficiency_hours"`
	Category          string  `json:"category"`
}

// ROIEstimateResult holds annual figures in currency units, rounded to cents.
type ROIEstimateResult struct {
	AnnualInefficiencyCost float64 `json:"annual_inefficiency_cost"`
	PotentialSavings       float64 `json:"potential_savings"`
	RevenueIncrease        float64 `json:"revenue_increase"`
	TotalBenefit           float64 `json:"total_benefit"`
	EngagementCost         float64 `json:"engagement_cost"`
	ROIPercentage          float64 `json:"roi_percentage"`
	Payback                Payback `json:"payback_months"`
}

// Payback is the number of months until the engagement cost is recovered.
// When Recoverable is false, Months carries no meaning.
type Payback struct {
	Months      float64
	Recoverable bool
}

// NotRecoverable is the payback of an engagement whose benefit never covers its cost.
var NotRecoverable = Payback{}

// MarshalJSON encodes an unrecoverable payback as null.
func (p Payback) MarshalJSON() ([]byte, error) {
	if !p.Recoverable {
		return []byte("null"), nil
	}
	return json.Marshal(p.Months)
}

// UnmarshalJSON accepts a number or null.
func (p *Payback) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = NotRecoverable
		return nil
	}
	var months float64
	if err := json.Unmarshal(data, &months); err != nil {
		return err
	}
	*p = Payback{Months: months, Recoverable: true}
	return nil
}

// EstimateRecord is a stored estimate. Request and Result hold the JSON of the
// kind-specific request and result types.
type EstimateRecord struct {
	ID        string          `json:"id"`
	Kind      EstimateKind    `json:"kind"`
	Request   json.RawMessage `json:"request"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProjectQuote is a computed project estimate together with its display strings.
type ProjectQuote struct {
	ID        string                 `json:"id"`
	Request   ProjectEstimateRequest `json:"request"`
	Result    ProjectEstimateResult  `json:"result"`
	Display   ProjectDisplay         `json:"display"`
	Cached    bool                   `json:"cached"`
	CreatedAt time.Time              `json:"created_at"`
}

// ProjectDisplay holds the formatted strings of a project estimate.
type ProjectDisplay struct {
	CostRange     string `json:"cost_range"`
	DurationRange string `json:"duration_range"`
	Confidence    string `json:"confidence"`
}

// ROIQuote is a computed ROI estimate together with its display strings.
type ROIQuote struct {
	ID        string             `json:"id"`
	Request   ROIEstimateRequest `json:"request"`
	Result    ROIEstimateResult  `json:"result"`
	Display   ROIDisplay         `json:"display"`
	Cached    bool               `json:"cached"`
	CreatedAt time.Time          `json:"created_at"`
}

// ROIDisplay holds the formatted strings of an ROI estimate.
type ROIDisplay struct {
	AnnualInefficiencyCost string `json:"annual_inefficiency_cost"`
	PotentialSavings       string `json:"potential_savings"`
	RevenueIncrease        string `json:"revenue_increase"`
	ROIPercentage          string `json:"roi_percentage"`
	Payback                string `json:"payback"`
}
