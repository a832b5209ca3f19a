package ratefile

import (
	"log/slog"
	"sync/atomic"

	"github.com/stacksolutions/estimator/internal/estimation"
	"github.com/stacksolutions/estimator/internal/metrics"
)

// Store holds the active rate table. Tables are swapped whole, so a reader
// always sees one consistent table.
type Store struct {
	current atomic.Pointer[estimation.RateTable]
}

// NewStore returns a store serving t, or the built-in table when t is nil.
func NewStore(t *estimation.RateTable) *Store {
	if t == nil {
		t = estimation.DefaultRateTable()
	}
	s := &Store{}
	s.current.Store(t)
	return s
}

// Current returns the active table. It is never nil.
func (s *Store) Current() *estimation.RateTable {
	return s.current.Load()
}

// Replace makes t the active table. A nil t is ignored.
func (s *Store) Replace(t *estimation.RateTable) {
	if t == nil {
		return
	}
	s.current.Store(t)
}

// ReloadFrom loads path and activates it. On failure the active table is kept.
func (s *Store) ReloadFrom(path string) error {
	t, err := Load(path)
	if err != nil {
		metrics.IncreaseRateTableReloads(metrics.OutcomeError)
		return err
	}
	s.Replace(t)
	metrics.IncreaseRateTableReloads(metrics.OutcomeOK)
	slog.Info("rate table reloaded", "path", path)
	return nil
}
