package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stacksolutions/estimator/internal/model"
	"github.com/stacksolutions/estimator/internal/repository"
)

type contactServiceImpl struct {
	repo  repository.ContactRepository
	now   func() time.Time
	newID func() string
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, input model.ContactInput) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		ID:          s.newID(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Company:     input.Company,
		ProjectType: input.ProjectType,
		Budget:      input.Budget,
		Timeline:    input.Timeline,
		Description: input.Description,
		Status:      model.ContactStatusUnread,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, err
	}
	slog.Info("contact message received", "id", msg.ID, "project_type", msg.ProjectType, "budget", msg.Budget)
	return msg, nil
}
