package model

import (
	"strings"
	"time"
)

// AvailableDate is a bookable consultation day.
type AvailableDate struct {
	Value string `json:"value"` // YYYY-MM-DD
	Label string `json:"label"`
}

// ConsultationBooking is a reserved consultation slot.
type ConsultationBooking struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company"`
	ProjectType string    `json:"project_type"`
	Budget      string    `json:"budget"`
	Date        string    `json:"date"`
	Slot        string    `json:"slot"`
	MeetingType string    `json:"meeting_type"` // "video" | "phone" | "in-person"
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConsultationBookingInput is the request payload for a booking.
type ConsultationBookingInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=10,max=30,phone"`
	Company     string `json:"company" validate:"max=200"`
	ProjectType string `json:"project_type" validate:"required,max=100"`
	Budget      string `json:"budget" validate:"required,max=100"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Slot        string `json:"slot" validate:"required"`
	MeetingType string `json:"meeting_type" validate:"required,oneof=video phone in-person"`
	Message     string `json:"message" validate:"max=2000"`
}

// Trim strips surrounding space from every field before validation.
func (in *ConsultationBookingInput) Trim() {
	for _, f := range []*string{
		&in.Name, &in.Email, &in.Phone, &in.Company, &in.ProjectType,
		&in.Budget, &in.Date, &in.Slot, &in.MeetingType, &in.Message,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// ConsultationSlots are the bookable start times of a consultation day.
var ConsultationSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
}
