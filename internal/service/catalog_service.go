package service

import "github.com/stacksolutions/estimator/internal/model"

// CatalogService lists the options of the active rate table.
type CatalogService interface {
	Catalog() model.Catalog
}

type catalogServiceImpl struct {
	rates RateSource
}

func NewCatalogService(rates RateSource) CatalogService {
	return &catalogServiceImpl{rates: rates}
}

// Catalog returns copies of every option list, in table order.
func (s *catalogServiceImpl) Catalog() model.Catalog {
	return s.rates.Current().Catalog()
}
