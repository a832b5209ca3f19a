package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/stacksolutions/estimator/internal/model"
)

// MemoryEstimateRepository keeps estimates in process memory. It is used when
// no database is configured; history is lost on restart.
type MemoryEstimateRepository struct {
	mu      sync.RWMutex
	records []*model.EstimateRecord
	byID    map[string]*model.EstimateRecord
}

func NewMemoryEstimateRepository() *MemoryEstimateRepository {
	return &MemoryEstimateRepository{byID: make(map[string]*model.EstimateRecord)}
}

var _ EstimateRepository = (*MemoryEstimateRepository)(nil)

func (r *MemoryEstimateRepository) Save(ctx context.Context, rec *model.EstimateRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rec.ID]; ok {
		return ErrDuplicate
	}
	c := *rec
	r.records = append(r.records, &c)
	r.byID[c.ID] = &c
	return nil
}

func (r *MemoryEstimateRepository) GetByID(ctx context.Context, id string) (*model.EstimateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *rec
	return &c, nil
}

func (r *MemoryEstimateRepository) ListRecent(ctx context.Context, kind model.EstimateKind, limit int) ([]*model.EstimateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.EstimateRecord
	for _, rec := range r.records {
		if kind != "" && rec.Kind != kind {
			continue
		}
		c := *rec
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
