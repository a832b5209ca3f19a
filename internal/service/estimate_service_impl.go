package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stacksolutions/estimator/internal/estimation"
	"github.com/stacksolutions/estimator/internal/format"
	"github.com/stacksolutions/estimator/internal/metrics"
	"github.com/stacksolutions/estimator/internal/model"
	"github.com/stacksolutions/estimator/internal/repository"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

type estimateServiceImpl struct {
	rates    RateSource
	repo     repository.EstimateRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration

	now   func() time.Time
	newID func() string
}

// NewEstimateService creates an EstimateService. cache may be nil to disable caching.
func NewEstimateService(rates RateSource, repo repository.EstimateRepository, cache repository.CacheRepository, cacheTTL time.Duration) EstimateService {
	return &estimateServiceImpl{
		rates:    rates,
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

func (s *estimateServiceImpl) EstimateProject(ctx context.Context, req model.ProjectEstimateRequest) (*model.ProjectQuote, error) {
	req = normalizeProjectRequest(req)
	table := s.rates.Current()
	key := projectCacheKey(table, req)

	var result model.ProjectEstimateResult
	cached := s.cacheGet(ctx, model.EstimateKindProject, key, &result)
	if !cached {
		var err error
		result, err = estimation.EstimateProject(table, req)
		if err != nil {
			metrics.IncreaseEstimatesTotal(string(model.EstimateKindProject), outcome(err))
			return nil, err
		}
		s.cacheSet(ctx, model.EstimateKindProject, key, result)
	}

	quote := &model.ProjectQuote{
		ID:        s.newID(),
		Request:   req,
		Result:    result,
		Display:   format.ProjectDisplay(result),
		Cached:    cached,
		CreatedAt: s.now(),
	}
	s.record(ctx, quote.ID, model.EstimateKindProject, req, result, quote.CreatedAt)
	metrics.IncreaseEstimatesTotal(string(model.EstimateKindProject), metrics.OutcomeOK)
	return quote, nil
}

func (s *estimateServiceImpl) EstimateROI(ctx context.Context, req model.ROIEstimateRequest) (*model.ROIQuote, error) {
	req.Category = normalizeID(req.Category)
	table := s.rates.Current()
	key := roiCacheKey(table, req)

	var result model.ROIEstimateResult
	cached := s.cacheGet(ctx, model.EstimateKindROI, key, &result)
	if !cached {
		var err error
		result, err = estimation.EstimateROI(table, req)
		if err != nil {
			metrics.IncreaseEstimatesTotal(string(model.EstimateKindROI), outcome(err))
			return nil, err
		}
		s.cacheSet(ctx, model.EstimateKindROI, key, result)
	}

	quote := &model.ROIQuote{
		ID:        s.newID(),
		Request:   req,
		Result:    result,
		Display:   format.ROIDisplay(result),
		Cached:    cached,
		CreatedAt: s.now(),
	}
	s.record(ctx, quote.ID, model.EstimateKindROI, req, result, quote.CreatedAt)
	metrics.IncreaseEstimatesTotal(string(model.EstimateKindROI), metrics.OutcomeOK)
	return quote, nil
}

func (s *estimateServiceImpl) Get(ctx context.Context, id string) (*model.EstimateRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *estimateServiceImpl) Recent(ctx context.Context, kind model.EstimateKind, limit int) ([]*model.EstimateRecord, error) {
	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown estimate kind %q", estimation.ErrInvalidInput, kind)
	}
	switch {
	case limit <= 0:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}
	return s.repo.ListRecent(ctx, kind, limit)
}

// cacheGet decodes a cached result into dst. Cache failures count as misses.
func (s *estimateServiceImpl) cacheGet(ctx context.Context, kind model.EstimateKind, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.IncreaseEstimateCache(string(kind), metrics.CacheError)
		slog.Warn("estimate cache lookup failed", "kind", kind, "error", err)
		return false
	}
	if !ok {
		metrics.IncreaseEstimateCache(string(kind), metrics.CacheMiss)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		metrics.IncreaseEstimateCache(string(kind), metrics.CacheError)
		slog.Warn("discarding undecodable cache entry", "kind", kind, "key", key, "error", err)
		return false
	}
	metrics.IncreaseEstimateCache(string(kind), metrics.CacheHit)
	return true
}

func (s *estimateServiceImpl) cacheSet(ctx context.Context, kind model.EstimateKind, key string, v any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("encode estimate for cache failed", "kind", kind, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		slog.Warn("estimate cache store failed", "kind", kind, "error", err)
	}
}

// record saves the estimate to history. A failure is logged and the estimate
// is still returned to the caller.
func (s *estimateServiceImpl) record(ctx context.Context, id string, kind model.EstimateKind, req, result any, at time.Time) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		slog.Warn("encode estimate request failed", "id", id, "error", err)
		return
	}
	resJSON, err := json.Marshal(result)
	if err != nil {
		slog.Warn("encode estimate result failed", "id", id, "error", err)
		return
	}
	rec := &model.EstimateRecord{
		ID:        id,
		Kind:      kind,
		Request:   reqJSON,
		Result:    resJSON,
		CreatedAt: at,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		slog.Warn("save estimate history failed", "id", id, "kind", kind, "error", err)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, estimation.ErrInvalidSelection):
		return metrics.OutcomeInvalidSelection
	case errors.Is(err, estimation.ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, estimation.ErrInvalidConfiguration):
		return metrics.OutcomeInvalidConfig
	default:
		return metrics.OutcomeError
	}
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// normalizeProjectRequest lowercases identifiers and returns the features
// de-duplicated in sorted order. Equivalent requests normalize identically.
func normalizeProjectRequest(req model.ProjectEstimateRequest) model.ProjectEstimateRequest {
	out := model.ProjectEstimateRequest{
		Type:       normalizeID(req.Type),
		Complexity: normalizeID(req.Complexity),
		Features:   []string{},
	}
	seen := make(map[string]bool, len(req.Features))
	for _, f := range req.Features {
		f = normalizeID(f)
		if seen[f] {
			continue
		}
		seen[f] = true
		out.Features = append(out.Features, f)
	}
	sort.Strings(out.Features)
	return out
}

func projectCacheKey(t *estimation.RateTable, req model.ProjectEstimateRequest) string {
	return strings.Join([]string{
		"project", t.Fingerprint(), req.Type, req.Complexity, strings.Join(req.Features, ","),
	}, ":")
}

func roiCacheKey(t *estimation.RateTable, req model.ROIEstimateRequest) string {
	g := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	return strings.Join([]string{
		"roi", t.Fingerprint(), req.Category,
		g(req.CurrentRevenue), strconv.Itoa(req.TeamSize), g(req.HourlyRate), g(req.InefficiencyHours),
	}, ":")
}
