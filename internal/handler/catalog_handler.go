package handler

import (
	"net/http"

	"github.com/stacksolutions/estimator/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Catalog handles GET /api/catalog.
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalogService.Catalog())
}
