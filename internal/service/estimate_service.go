package service

import (
	"context"

	"github.com/stacksolutions/estimator/internal/estimation"
	"github.com/stacksolutions/estimator/internal/model"
)

// RateSource supplies the rate table an estimate is computed against.
type RateSource interface {
	Current() *estimation.RateTable
}

// EstimateService computes, caches and records estimates.
type EstimateService interface {
	// EstimateProject returns a cost and duration range for the request. Engine
	// errors (estimation.ErrInvalidSelection, ErrInvalidConfiguration) are
	// returned unchanged and nothing is recorded.
	EstimateProject(ctx context.Context, req model.ProjectEstimateRequest) (*model.ProjectQuote, error)

	// EstimateROI returns annual benefit, ROI and payback for the request.
	EstimateROI(ctx context.Context, req model.ROIEstimateRequest) (*model.ROIQuote, error)

	// Get returns a recorded estimate, or repository.ErrNotFound.
	Get(ctx context.Context, id string) (*model.EstimateRecord, error)

	// Recent lists the newest recorded estimates. An empty kind lists both kinds.
	Recent(ctx context.Context, kind model.EstimateKind, limit int) ([]*model.EstimateRecord, error)
}
