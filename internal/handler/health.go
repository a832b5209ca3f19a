package handler

import (
	"net/http"
	"sort"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.deps[name].Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "unhealthy",
				Message: name + ": " + err.Error(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "StackSolutions Estimator API",
	})
}
