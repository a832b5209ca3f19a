package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig describes the PostgreSQL connection used for estimate history,
// consultation bookings and contact messages.
type PoolConfig struct {
	URL            string
	MaxConns       int32
	ConnectTimeout time.Duration
}

// NewPool は PostgreSQL 接続プールを生成し、疎通を確認する
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Tables are the tables the Pg repositories read and write, in migration order.
var Tables = []string{"estimates", "consultation_bookings", "contact_messages"}

// RowQuerier is the part of *pgxpool.Pool that MissingTables needs.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MissingTables returns the entries of Tables that do not exist in the
// connected database, i.e. the migrations still to run.
func MissingTables(ctx context.Context, db RowQuerier) ([]string, error) {
	var missing []string
	for _, table := range Tables {
		var exists bool
		if err := db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, table).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check table %s: %w", table, err)
		}
		if !exists {
			missing = append(missing, table)
		}
	}
	return missing, nil
}
