package estimation

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/stacksolutions/estimator/internal/model"
)

// RateTable is an immutable set of lookup tables keyed by identifier.
// Use NewRateTable or DefaultRateTable to build one; the zero value is empty.
type RateTable struct {
	projectTypes     []model.ProjectTypeRate
	complexityLevels []model.ComplexityLevel
	features         []model.FeatureLineItem
	roiCategories    []model.ROICategoryRate

	projectTypeIdx map[string]int
	complexityIdx  map[string]int
	featureIdx     map[string]int
	roiIdx         map[string]int

	fingerprint string
}

// NewRateTable copies the given entries into a new table. Entries keep their order;
// when an identifier repeats, lookups resolve to its first entry and Validate reports it.
func NewRateTable(
	projectTypes []model.ProjectTypeRate,
	complexityLevels []model.ComplexityLevel,
	features []model.FeatureLineItem,
	roiCategories []model.ROICategoryRate,
) *RateTable {
	t := &RateTable{
		projectTypes:     append([]model.ProjectTypeRate(nil), projectTypes...),
		complexityLevels: append([]model.ComplexityLevel(nil), complexityLevels...),
		features:         append([]model.FeatureLineItem(nil), features...),
		roiCategories:    append([]model.ROICategoryRate(nil), roiCategories...),
	}
	t.projectTypeIdx = index(len(t.projectTypes), func(i int) string { return t.projectTypes[i].ID })
	t.complexityIdx = index(len(t.complexityLevels), func(i int) string { return t.complexityLevels[i].ID })
	t.featureIdx = index(len(t.features), func(i int) string { return t.features[i].ID })
	t.roiIdx = index(len(t.roiCategories), func(i int) string { return t.roiCategories[i].ID })

	h := sha256.New()
	fmt.Fprintf(h, "%v|%v|%v|%v", t.projectTypes, t.complexityLevels, t.features, t.roiCategories)
	t.fingerprint = hex.EncodeToString(h.Sum(nil))[:16]
	return t
}

// Fingerprint identifies the table contents. Equal tables share a fingerprint,
// so results computed from one table can be keyed by it.
func (t *RateTable) Fingerprint() string {
	return t.fingerprint
}

func index(n int, id func(int) string) map[string]int {
	m := make(map[string]int, n)
	for i := 0; i < n; i++ {
		if _, dup := m[id(i)]; !dup {
			m[id(i)] = i
		}
	}
	return m
}

// DefaultRateTable returns the built-in pricing.
func DefaultRateTable() *RateTable {
	return NewRateTable(
		[]model.ProjectTypeRate{
			{ID: "web", Name: "Web Application", Multiplier: 1.0},
			{ID: "mobile", Name: "Mobile App (Flutter)", Multiplier: 1.2},
			{ID: "ecommerce", Name: "E-commerce Platform", Multiplier: 1.5},
			{ID: "ai", Name: "AI/Automation Solution", Multiplier: 1.8},
			{ID: "enterprise", Name: "Enterprise System", Multiplier: 2.0},
		},
		[]model.ComplexityLevel{
			{ID: "simple", Name: "Simple", Multiplier: 1.0, Description: "Basic functionality, standard design"},
			{ID: "moderate", Name: "Moderate", Multiplier: 1.5, Description: "Custom features, integrations"},
			{ID: "complex", Name: "Complex", Multiplier: 2.0, Description: "Advanced features, multiple integrations"},
			{ID: "enterprise", Name: "Enterprise", Multiplier: 3.0, Description: "Highly complex, scalable architecture"},
		},
		[]model.FeatureLineItem{
			{ID: "auth", Name: "User Authentication", Cost: 2000, Weeks: 1},
			{ID: "payment", Name: "Payment Integration", Cost: 3000, Weeks: 2},
			{ID: "admin", Name: "Admin Dashboard", Cost: 4000, Weeks: 2},
			{ID: "api", Name: "REST API", Cost: 3500, Weeks: 2},
			{ID: "realtime", Name: "Real-time Features", Cost: 5000, Weeks: 3},
			{ID: "analytics", Name: "Analytics Integration", Cost: 2500, Weeks: 1},
		},
		[]model.ROICategoryRate{
			{ID: "web-app", Name: "Web Application", EfficiencyMultiplier: 1.2, RevenueMultiplier: 1.15, EngagementCost: 25000},
			{ID: "mobile-app", Name: "Mobile App", EfficiencyMultiplier: 1.3, RevenueMultiplier: 1.25, EngagementCost: 35000},
			{ID: "ai-automation", Name: "AI & Automation", EfficiencyMultiplier: 2.5, RevenueMultiplier: 1.4, EngagementCost: 45000},
			{ID: "ecommerce", Name: "E-commerce", EfficiencyMultiplier: 1.4, RevenueMultiplier: 1.35, EngagementCost: 40000},
			{ID: "enterprise", Name: "Enterprise System", EfficiencyMultiplier: 1.8, RevenueMultiplier: 1.3, EngagementCost: 75000},
		},
	)
}

func (t *RateTable) ProjectType(id string) (model.ProjectTypeRate, bool) {
	i, ok := t.projectTypeIdx[id]
	if !ok {
		return model.ProjectTypeRate{}, false
	}
	return t.projectTypes[i], true
}

func (t *RateTable) ComplexityLevel(id string) (model.ComplexityLevel, bool) {
	i, ok := t.complexityIdx[id]
	if !ok {
		return model.ComplexityLevel{}, false
	}
	return t.complexityLevels[i], true
}

func (t *RateTable) Feature(id string) (model.FeatureLineItem, bool) {
	i, ok := t.featureIdx[id]
	if !ok {
		return model.FeatureLineItem{}, false
	}
	return t.features[i], true
}

func (t *RateTable) ROICategory(id string) (model.ROICategoryRate, bool) {
	i, ok := t.roiIdx[id]
	if !ok {
		return model.ROICategoryRate{}, false
	}
	return t.roiCategories[i], true
}

// Catalog returns copies of all entries in table order.
func (t *RateTable) Catalog() model.Catalog {
	return model.Catalog{
		ProjectTypes:     append([]model.ProjectTypeRate{}, t.projectTypes...),
		ComplexityLevels: append([]model.ComplexityLevel{}, t.complexityLevels...),
		Features:         append([]model.FeatureLineItem{}, t.features...),
		ROICategories:    append([]model.ROICategoryRate{}, t.roiCategories...),
	}
}

// Validate checks the static invariants of the table. All violations are reported
// together; each wraps ErrInvalidConfiguration.
func (t *RateTable) Validate() error {
	var errs []error
	if len(t.projectTypes) == 0 {
		errs = append(errs, configErrorf("no project types"))
	}
	if len(t.complexityLevels) == 0 {
		errs = append(errs, configErrorf("no complexity levels"))
	}
	if len(t.roiCategories) == 0 {
		errs = append(errs, configErrorf("no roi categories"))
	}

	seen := map[string]bool{}
	for _, p := range t.projectTypes {
		errs = append(errs, checkID("project type", p.ID, seen)...)
		if !finite(p.Multiplier) || p.Multiplier < 1 {
			errs = append(errs, configErrorf("project type %q: multiplier %v is below 1.0", p.ID, p.Multiplier))
		}
	}
	seen = map[string]bool{}
	for _, c := range t.complexityLevels {
		errs = append(errs, checkID("complexity", c.ID, seen)...)
		if !finite(c.Multiplier) || c.Multiplier < 1 {
			errs = append(errs, configErrorf("complexity %q: multiplier %v is below 1.0", c.ID, c.Multiplier))
		}
	}
	seen = map[string]bool{}
	for _, f := range t.features {
		errs = append(errs, checkID("feature", f.ID, seen)...)
		if !finite(f.Cost) || f.Cost < 0 {
			errs = append(errs, configErrorf("feature %q: negative cost %v", f.ID, f.Cost))
		}
		if f.Weeks < 0 {
			errs = append(errs, configErrorf("feature %q: negative weeks %d", f.ID, f.Weeks))
		}
	}
	seen = map[string]bool{}
	for _, r := range t.roiCategories {
		errs = append(errs, checkID("roi category", r.ID, seen)...)
		if !finite(r.EfficiencyMultiplier) || r.EfficiencyMultiplier <= 0 {
			errs = append(errs, configErrorf("roi category %q: efficiency multiplier %v must be positive", r.ID, r.EfficiencyMultiplier))
		}
		if !finite(r.RevenueMultiplier) || r.RevenueMultiplier <= 0 {
			errs = append(errs, configErrorf("roi category %q: revenue multiplier %v must be positive", r.ID, r.RevenueMultiplier))
		}
		if !finite(r.EngagementCost) || r.EngagementCost <= 0 {
			errs = append(errs, configErrorf("roi category %q: engagement cost %v must be positive", r.ID, r.EngagementCost))
		}
	}
	return errors.Join(errs...)
}

func checkID(kind, id string, seen map[string]bool) []error {
	if id == "" {
		return []error{configErrorf("%s with empty id", kind)}
	}
	if seen[id] {
		return []error{configErrorf("duplicate %s %q", kind, id)}
	}
	seen[id] = true
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
