package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/stacksolutions/estimator/internal/format"
	"github.com/stacksolutions/estimator/internal/model"
	"github.com/stacksolutions/estimator/internal/repository"
)

const dateLayout = "2006-01-02"

type consultationServiceImpl struct {
	repo  repository.BookingRepository
	now   func() time.Time
	newID func() string
}

func NewConsultationService(repo repository.BookingRepository) ConsultationService {
	return &consultationServiceImpl{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *consultationServiceImpl) AvailableDates(from time.Time, days int) []model.AvailableDate {
	if days <= 0 {
		days = DefaultBookingWindowDays
	}
	if days > MaxBookingWindowDays {
		days = MaxBookingWindowDays
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	dates := make([]model.AvailableDate, 0, days)
	for i := 1; i <= days; i++ {
		d := day.AddDate(0, 0, i)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, model.AvailableDate{
			Value: d.Format(dateLayout),
			Label: format.FormatWeekdayDate(d),
		})
	}
	return dates
}

func (s *consultationServiceImpl) Book(ctx context.Context, input model.ConsultationBookingInput) (*model.ConsultationBooking, error) {
	if !slices.Contains(model.ConsultationSlots, input.Slot) {
		return nil, ErrUnknownSlot
	}
	now := s.now()
	if !s.isAvailable(now, input.Date) {
		return nil, ErrUnavailableDate
	}

	b := &model.ConsultationBooking{
		ID:          s.newID(),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Company:     input.Company,
		ProjectType: input.ProjectType,
		Budget:      input.Budget,
		Date:        input.Date,
		Slot:        input.Slot,
		MeetingType: input.MeetingType,
		Message:     input.Message,
		CreatedAt:   now.UTC(),
	}
	if err := s.repo.Save(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return b, nil
}

// ListSlots returns a copy of the bookable start times.
func (s *consultationServiceImpl) ListSlots() []string {
	return slices.Clone(model.ConsultationSlots)
}

func (s *consultationServiceImpl) OpenSlots(ctx context.Context, date string) ([]string, error) {
	if !s.isAvailable(s.now(), date) {
		return nil, ErrUnavailableDate
	}
	booked, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b.Slot] = true
	}
	open := make([]string, 0, len(model.ConsultationSlots))
	for _, slot := range model.ConsultationSlots {
		if !taken[slot] {
			open = append(open, slot)
		}
	}
	return open, nil
}

func (s *consultationServiceImpl) isAvailable(now time.Time, date string) bool {
	return slices.ContainsFunc(s.AvailableDates(now, DefaultBookingWindowDays), func(d model.AvailableDate) bool {
		return d.Value == date
	})
}
