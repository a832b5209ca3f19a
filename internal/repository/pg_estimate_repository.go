package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stacksolutions/estimator/internal/model"
)

// PgEstimateRepository is the PostgreSQL implementation of EstimateRepository.
type PgEstimateRepository struct {
	pool *pgxpool.Pool
}

// NewPgEstimateRepository creates a PgEstimateRepository backed by the given pool.
func NewPgEstimateRepository(pool *pgxpool.Pool) *PgEstimateRepository {
	return &PgEstimateRepository{pool: pool}
}

var _ EstimateRepository = (*PgEstimateRepository)(nil)

func (r *PgEstimateRepository) Save(ctx context.Context, rec *model.EstimateRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO estimates (id, kind, request, result, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, string(rec.Kind), []byte(rec.Request), []byte(rec.Result), rec.CreatedAt,
	)
	return err
}

func (r *PgEstimateRepository) GetByID(ctx context.Context, id string) (*model.EstimateRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, kind, request, result, created_at FROM estimates WHERE id = $1`, id)
	rec, err := scanEstimate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *PgEstimateRepository) ListRecent(ctx context.Context, kind model.EstimateKind, limit int) ([]*model.EstimateRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, request, result, created_at
		 FROM estimates
		 WHERE $1 = '' OR kind = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		string(kind), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.EstimateRecord
	for rows.Next() {
		rec, err := scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanEstimate(row pgx.Row) (*model.EstimateRecord, error) {
	var rec model.EstimateRecord
	var kind string
	var request, result []byte
	if err := row.Scan(&rec.ID, &kind, &request, &result, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Kind = model.EstimateKind(kind)
	rec.Request = request
	rec.Result = result
	return &rec, nil
}
