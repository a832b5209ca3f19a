package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrument_LabelsByRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/estimates/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := Instrument(mux)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/estimates/"+id, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	body := `
# HELP estimator_http_requests_total Number of HTTP requests partitioned by status code, method and route pattern.
# TYPE estimator_http_requests_total counter
estimator_http_requests_total{code="404",method="GET",path="GET /api/estimates/{id}"} 2
estimator_http_requests_total{code="404",method="GET",path="unmatched"} 1
`
	if err := testutil.GatherAndCompare(prometheus.DefaultGatherer, strings.NewReader(body), "estimator_http_requests_total"); err != nil {
		t.Error(err)
	}
}

func TestRequestLogger_PassesStatusThrough(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	rec := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/consultation/bookings", nil))
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}
