package model

import (
	"strings"
	"time"
)

const ContactStatusUnread = "unread"

// ContactMessage is a project inquiry sent through the contact form.
type ContactMessage struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	ProjectType string    `json:"project_type"`
	Budget      string    `json:"budget"`
	Timeline    string    `json:"timeline,omitempty"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // "unread" | "read"
	CreatedAt   time.Time `json:"created_at"`
}

// ContactInput is the request payload of the contact form.
type ContactInput struct {
	FirstName   string `json:"first_name" validate:"required,min=2,max=100"`
	LastName    string `json:"last_name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30,phone"`
	Company     string `json:"company" validate:"max=200"`
	ProjectType string `json:"project_type" validate:"required,max=100"`
	Budget      string `json:"budget" validate:"required,max=100"`
	Timeline    string `json:"timeline" validate:"max=100"`
	Description string `json:"description" validate:"required,min=20,max=5000"`
}

// Trim strips surrounding space from every field, so length rules apply to
// what is stored.
func (in *ContactInput) Trim() {
	for _, f := range []*string{
		&in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Company,
		&in.ProjectType, &in.Budget, &in.Timeline, &in.Description,
	} {
		*f = strings.TrimSpace(*f)
	}
}
