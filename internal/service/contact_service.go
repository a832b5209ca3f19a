package service

import (
	"context"

	"github.com/stacksolutions/estimator/internal/model"
)

// ContactService accepts project inquiries from the contact form.
type ContactService interface {
	// Submit stores a new message with status "unread". Input is expected to
	// be validated already.
	Submit(ctx context.Context, input model.ContactInput) (*model.ContactMessage, error)
}
