package repository

import (
	"context"

	"github.com/stacksolutions/estimator/internal/model"
)

// DB は接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// EstimateRepository stores computed estimates for later retrieval.
type EstimateRepository interface {
	Save(ctx context.Context, rec *model.EstimateRecord) error
	// GetByID returns ErrNotFound when no estimate has the id.
	GetByID(ctx context.Context, id string) (*model.EstimateRecord, error)
	// ListRecent returns the newest estimates first. An empty kind matches both kinds.
	ListRecent(ctx context.Context, kind model.EstimateKind, limit int) ([]*model.EstimateRecord, error)
}

// BookingRepository stores consultation bookings.
type BookingRepository interface {
	// Save returns ErrDuplicate when the date and slot are already booked.
	Save(ctx context.Context, b *model.ConsultationBooking) error
	// ListByDate returns the bookings of one YYYY-MM-DD day.
	ListByDate(ctx context.Context, date string) ([]*model.ConsultationBooking, error)
}

// ContactRepository stores contact form messages.
type ContactRepository interface {
	Save(ctx context.Context, msg *model.ContactMessage) error
}
