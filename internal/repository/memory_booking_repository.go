package repository

import (
	"context"
	"sync"

	"github.com/stacksolutions/estimator/internal/model"
)

// MemoryBookingRepository keeps bookings in process memory.
type MemoryBookingRepository struct {
	mu       sync.Mutex
	bookings []*model.ConsultationBooking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{}
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)

func (r *MemoryBookingRepository) Save(ctx context.Context, b *model.ConsultationBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.Date == b.Date && existing.Slot == b.Slot {
			return ErrDuplicate
		}
	}
	c := *b
	r.bookings = append(r.bookings, &c)
	return nil
}

func (r *MemoryBookingRepository) ListByDate(ctx context.Context, date string) ([]*model.ConsultationBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.ConsultationBooking
	for _, b := range r.bookings {
		if b.Date == date {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}
