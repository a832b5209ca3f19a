package service

import (
	"context"
	"errors"
	"time"

	"github.com/stacksolutions/estimator/internal/model"
)

const (
	DefaultBookingWindowDays = 30
	MaxBookingWindowDays     = 60
)

var (
	ErrUnavailableDate = errors.New("date is not available for booking")
	ErrUnknownSlot     = errors.New("unknown consultation slot")
	ErrSlotTaken       = errors.New("consultation slot already booked")
)

// ConsultationService offers consultation days and books slots on them.
type ConsultationService interface {
	// AvailableDates lists the weekdays among the next days calendar days after
	// from. days <= 0 means DefaultBookingWindowDays; it is capped at
	// MaxBookingWindowDays.
	AvailableDates(from time.Time, days int) []model.AvailableDate

	// Book reserves a slot. The date must be currently available and the slot
	// one of ListSlots; a slot can be booked once per date.
	Book(ctx context.Context, input model.ConsultationBookingInput) (*model.ConsultationBooking, error)

	ListSlots() []string

	// OpenSlots returns the slots of an available date that nobody has booked
	// yet, in ListSlots order. A date outside the booking window is
	// ErrUnavailableDate.
	OpenSlots(ctx context.Context, date string) ([]string, error)
}
