package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stacksolutions/estimator/internal/model"
)

const uniqueViolation = "23505"

// PgBookingRepository is the PostgreSQL implementation of BookingRepository.
type PgBookingRepository struct {
	pool *pgxpool.Pool
}

func NewPgBookingRepository(pool *pgxpool.Pool) *PgBookingRepository {
	return &PgBookingRepository{pool: pool}
}

var _ BookingRepository = (*PgBookingRepository)(nil)

// Save inserts a consultation_bookings row. The (date, slot) unique index
// turns a double booking into ErrDuplicate.
func (r *PgBookingRepository) Save(ctx context.Context, b *model.ConsultationBooking) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO consultation_bookings
		   (id, name, email, phone, company, project_type, budget, date, slot, meeting_type, message, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8::text::date, $9, $10, NULLIF($11, ''), $12)`,
		b.ID, b.Name, b.Email, b.Phone, b.Company, b.ProjectType, b.Budget,
		b.Date, b.Slot, b.MeetingType, b.Message, b.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (r *PgBookingRepository) ListByDate(ctx context.Context, date string) ([]*model.ConsultationBooking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, phone, COALESCE(company, ''), project_type, budget,
		        to_char(date, 'YYYY-MM-DD'), slot, meeting_type, COALESCE(message, ''), created_at
		 FROM consultation_bookings
		 WHERE date = $1::text::date
		 ORDER BY created_at`,
		date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*model.ConsultationBooking
	for rows.Next() {
		var b model.ConsultationBooking
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Company, &b.ProjectType, &b.Budget,
			&b.Date, &b.Slot, &b.MeetingType, &b.Message, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
