package repository

import (
	"context"
	"sync"

	"github.com/stacksolutions/estimator/internal/model"
)

// MemoryContactRepository keeps contact messages in process memory.
type MemoryContactRepository struct {
	mu       sync.Mutex
	messages []*model.ContactMessage
}

func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{}
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

func (r *MemoryContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *msg
	r.messages = append(r.messages, &c)
	return nil
}

// Messages returns copies of the stored messages in arrival order.
func (r *MemoryContactRepository) Messages() []*model.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.ContactMessage, 0, len(r.messages))
	for _, m := range r.messages {
		c := *m
		out = append(out, &c)
	}
	return out
}
