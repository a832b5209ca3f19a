package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stacksolutions/estimator/internal/model"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

var _ ContactRepository = (*PgContactRepository)(nil)

// Save inserts a contact_messages row. Optional fields are stored as NULL when empty.
func (r *PgContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages
		   (id, first_name, last_name, email, phone, company, project_type, budget, timeline, description, status, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, NULLIF($9, ''), $10, $11, $12)`,
		msg.ID, msg.FirstName, msg.LastName, msg.Email, msg.Phone, msg.Company,
		msg.ProjectType, msg.Budget, msg.Timeline, msg.Description, msg.Status, msg.CreatedAt,
	)
	return err
}
