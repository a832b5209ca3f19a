package model

// ProjectTypeRate scales base cost and duration for a kind of project.
type ProjectTypeRate struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// ComplexityLevel scales base cost and duration for the requested complexity tier.
type ComplexityLevel struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Multiplier  float64 `json:"multiplier" yaml:"multiplier"`
	Description string  `json:"description" yaml:"description"`
}

// FeatureLineItem is an optional feature with a fixed additive cost and duration.
type FeatureLineItem struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Cost  float64 `json:"cost" yaml:"cost"`
	Weeks int     `json:"weeks" yaml:"weeks"`
}

// ROICategoryRate holds the improvement multipliers and engagement cost of an ROI category.
type ROICategoryRate struct {
	ID                   string  `json:"id" yaml:"id"`
	Name                 string  `json:"name" yaml:"name"`
	EfficiencyMultiplier float64 `json:"efficiency_multiplier" yaml:"efficiency_multiplier"`
	RevenueMultiplier    float64 `json:"revenue_multiplier" yaml:"revenue_multiplier"`
	EngagementCost       float64 `json:"engagement_cost" yaml:"engagement_cost"`
}

// Catalog lists every selectable option of a rate table, in table order.
type Catalog struct {
	ProjectTypes     []ProjectTypeRate `json:"project_types"`
	ComplexityLevels []ComplexityLevel `json:"complexity_levels"`
	Features         []FeatureLineItem `json:"features"`
	ROICategories    []ROICategoryRate `json:"roi_categories"`
}
