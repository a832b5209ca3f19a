package estimation

import (
	"errors"
	"testing"

	"github.com/stacksolutions/estimator/internal/model"
)

func TestEstimateProject_WebSimpleNoFeatures(t *testing.T) {
	got, err := EstimateProject(DefaultRateTable(), model.ProjectEstimateRequest{Type: "web", Complexity: "simple"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.ProjectEstimateResult{MinCost: 12000, MaxCost: 18000, MinWeeks: 5, MaxWeeks: 7, Confidence: model.ConfidenceHigh}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestEstimateProject_AIEnterpriseWithAuth(t *testing.T) {
	got, err := EstimateProject(DefaultRateTable(), model.ProjectEstimateRequest{
		Type:       "ai",
		Complexity: "enterprise",
		Features:   []string{"auth"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 15000*1.8*3.0 + 2000 = 83000; 6*5.4 + 1 = 33.4 weeks
	want := model.ProjectEstimateResult{MinCost: 66400, MaxCost: 99600, MinWeeks: 27, MaxWeeks: 40, Confidence: model.ConfidenceLow}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestEstimateProject_DuplicateFeaturesCollapse(t *testing.T) {
	table := DefaultRateTable()
	once, err := EstimateProject(table, model.ProjectEstimateRequest{Type: "web", Complexity: "simple", Features: []string{"api"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := EstimateProject(table, model.ProjectEstimateRequest{Type: "web", Complexity: "simple", Features: []string{"api", "api", "api", "api"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if once != twice {
		t.Errorf("expected duplicates to collapse: %+v vs %+v", once, twice)
	}
	if twice.Confidence != model.ConfidenceHigh {
		t.Errorf("expected repeated feature to count once for confidence, got %s", twice.Confidence)
	}
}

func TestEstimateProject_Confidence(t *testing.T) {
	tests := []struct {
		name       string
		typ        string
		complexity string
		features   []string
		want       model.Confidence
	}{
		{"plain web", "web", "moderate", []string{"auth", "api"}, model.ConfidenceHigh},
		{"three features", "mobile", "complex", []string{"auth", "api", "admin"}, model.ConfidenceHigh},
		{"four features", "mobile", "complex", []string{"auth", "api", "admin", "payment"}, model.ConfidenceMedium},
		{"enterprise tier", "web", "enterprise", nil, model.ConfidenceMedium},
		{"five features", "web", "simple", []string{"auth", "api", "admin", "payment", "realtime"}, model.ConfidenceMedium},
		{"six features", "web", "simple", []string{"auth", "api", "admin", "payment", "realtime", "analytics"}, model.ConfidenceLow},
		{"ai type", "ai", "simple", nil, model.ConfidenceLow},
		{"ai type at enterprise tier", "ai", "enterprise", []string{"auth", "api", "admin", "payment"}, model.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateProject(DefaultRateTable(), model.ProjectEstimateRequest{Type: tt.typ, Complexity: tt.complexity, Features: tt.features})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Confidence != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Confidence)
			}
		})
	}
}

func TestEstimateProject_UnknownSelections(t *testing.T) {
	tests := []struct {
		name string
		req  model.ProjectEstimateRequest
		kind string
		id   string
	}{
		{"unknown type", model.ProjectEstimateRequest{Type: "blockchain", Complexity: "simple"}, "project type", "blockchain"},
		{"empty type", model.ProjectEstimateRequest{Type: "", Complexity: "simple"}, "project type", ""},
		{"unknown complexity", model.ProjectEstimateRequest{Type: "web", Complexity: "trivial"}, "complexity", "trivial"},
		{"unknown feature", model.ProjectEstimateRequest{Type: "web", Complexity: "simple", Features: []string{"auth", "teleport"}}, "feature", "teleport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateProject(DefaultRateTable(), tt.req)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Fatalf("expected ErrInvalidSelection, got %v", err)
			}
			var sel *SelectionError
			if !errors.As(err, &sel) {
				t.Fatalf("expected *SelectionError, got %T", err)
			}
			if sel.Kind != tt.kind || sel.ID != tt.id {
				t.Errorf("expected %s %q, got %s %q", tt.kind, tt.id, sel.Kind, sel.ID)
			}
			if got != (model.ProjectEstimateResult{}) {
				t.Errorf("expected no partial result, got %+v", got)
			}
		})
	}
}

// subsets returns every subset of ids, in a stable order.
func subsets(ids []string) [][]string {
	out := make([][]string, 0, 1<<len(ids))
	for mask := 0; mask < 1<<len(ids); mask++ {
		var s []string
		for i, id := range ids {
			if mask&(1<<i) != 0 {
				s = append(s, id)
			}
		}
		out = append(out, s)
	}
	return out
}

func TestEstimateProject_Properties(t *testing.T) {
	table := DefaultRateTable()
	catalog := table.Catalog()
	var featureIDs []string
	for _, f := range catalog.Features {
		featureIDs = append(featureIDs, f.ID)
	}

	for _, pt := range catalog.ProjectTypes {
		for _, cx := range catalog.ComplexityLevels {
			base, err := EstimateProject(table, model.ProjectEstimateRequest{Type: pt.ID, Complexity: cx.ID})
			if err != nil {
				t.Fatalf("%s/%s: unexpected error: %v", pt.ID, cx.ID, err)
			}
			for _, features := range subsets(featureIDs) {
				req := model.ProjectEstimateRequest{Type: pt.ID, Complexity: cx.ID, Features: features}
				got, err := EstimateProject(table, req)
				if err != nil {
					t.Fatalf("%+v: unexpected error: %v", req, err)
				}
				if got.MinCost > got.MaxCost || got.MinWeeks > got.MaxWeeks {
					t.Errorf("%+v: range inverted: %+v", req, got)
				}
				if got.MinCost < base.MinCost || got.MinWeeks < base.MinWeeks {
					t.Errorf("%+v: features decreased the estimate below %+v: %+v", req, base, got)
				}
				again, _ := EstimateProject(table, req)
				if again != got {
					t.Errorf("%+v: not deterministic: %+v vs %+v", req, got, again)
				}
				if (pt.ID == "ai" || len(features) > 5) && got.Confidence != model.ConfidenceLow {
					t.Errorf("%+v: expected low confidence, got %s", req, got.Confidence)
				}
				if (len(features) > 3 || cx.ID == "enterprise") && got.Confidence == model.ConfidenceHigh {
					t.Errorf("%+v: expected at most medium confidence, got high", req)
				}
			}
		}
	}
}

func TestEstimateProject_AddingFeatureNeverDecreases(t *testing.T) {
	table := DefaultRateTable()
	features := []string{"auth", "payment", "admin", "api", "realtime", "analytics"}
	prev, err := EstimateProject(table, model.ProjectEstimateRequest{Type: "mobile", Complexity: "moderate"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range features {
		got, err := EstimateProject(table, model.ProjectEstimateRequest{Type: "mobile", Complexity: "moderate", Features: features[:i+1]})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.MinCost < prev.MinCost || got.MaxCost < prev.MaxCost || got.MinWeeks < prev.MinWeeks || got.MaxWeeks < prev.MaxWeeks {
			t.Errorf("adding %s decreased estimate: %+v -> %+v", features[i], prev, got)
		}
		prev = got
	}
}
