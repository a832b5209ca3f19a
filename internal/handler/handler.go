package handler

import (
	"net/http"

	"github.com/stacksolutions/estimator/internal/repository"
)

// Handler serves the cross-cutting endpoints (health, CORS).
type Handler struct {
	deps        map[string]repository.DB
	frontendURL string
}

// New creates a Handler. deps are pinged by Health, keyed by the name reported
// on failure; a nil map reports healthy.
func New(deps map[string]repository.DB, frontendURL string) *Handler {
	return &Handler{deps: deps, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
