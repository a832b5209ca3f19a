package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/stacksolutions/estimator/internal/config"
	"github.com/stacksolutions/estimator/internal/logging"
	"github.com/stacksolutions/estimator/internal/repository"
)

const dropAllFile = "000_drop_all.sql"

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   未適用のマイグレーションを適用
  fresh       見積もり関連テーブルを DROP し、全マイグレーションを適用
  status      適用済み・未適用のマイグレーションと不足テーブルを表示`)
	os.Exit(2)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if cfg.Database.URL == "" {
		logging.Fatal("DATABASE_URL is not set; estimate history runs in memory and needs no migrations")
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "" && cmd != "fresh" && cmd != "status" {
		usage()
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.Database.Pool())
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	m := &migrator{pool: pool, dir: findMigrationDir()}
	switch cmd {
	case "":
		err = m.up(ctx)
	case "fresh":
		if err = m.dropAll(ctx); err == nil {
			err = m.up(ctx)
		}
	case "status":
		err = m.status(ctx, os.Stdout)
	}
	if err != nil {
		logging.Fatal("migrate failed", "command", cmd, "error", err)
	}
}

func findMigrationDir() string {
	for _, dir := range []string{"migrations", "../migrations", "../../migrations"} {
		if _, err := os.Stat(filepath.Join(dir, dropAllFile)); err == nil {
			return dir
		}
	}
	return "migrations"
}

// collectUpFiles はマイグレーション名（.up.sql を除いたもの）をソート済みで返す
func collectUpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, strings.TrimSuffix(e.Name(), ".up.sql"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// pending returns the names not yet recorded in applied, keeping their order.
func pending(names []string, applied map[string]bool) []string {
	var out []string
	for _, n := range names {
		if !applied[n] {
			out = append(out, n)
		}
	}
	return out
}

type migrator struct {
	pool *pgxpool.Pool
	dir  string
}

func (m *migrator) applied(ctx context.Context) (map[string]bool, error) {
	if _, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	rows, err := m.pool.Query(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// up applies pending migrations, each in its own transaction, then checks
// that every table the repositories use exists.
func (m *migrator) up(ctx context.Context) error {
	names, err := collectUpFiles(m.dir)
	if err != nil {
		return err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	todo := pending(names, applied)
	for _, name := range todo {
		sql, err := os.ReadFile(filepath.Join(m.dir, name+".up.sql"))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		tx, err := m.pool.Begin(ctx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		slog.Info("migration applied", "migration", name)
	}
	if len(todo) == 0 {
		slog.Info("all migrations already applied")
	}

	missing, err := repository.MissingTables(ctx, m.pool)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("tables still missing after migrating: %s", strings.Join(missing, ", "))
	}
	slog.Info("estimator schema ready", "tables", repository.Tables)
	return nil
}

func (m *migrator) dropAll(ctx context.Context) error {
	sql, err := os.ReadFile(filepath.Join(m.dir, dropAllFile))
	if err != nil {
		return fmt.Errorf("read %s: %w", dropAllFile, err)
	}
	if _, err := m.pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	slog.Info("estimator tables dropped")
	return nil
}

func (m *migrator) status(ctx context.Context, w io.Writer) error {
	names, err := collectUpFiles(m.dir)
	if err != nil {
		return err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}
	missing, err := repository.MissingTables(ctx, m.pool)
	if err != nil {
		return err
	}
	writeStatus(w, names, applied, missing)
	if len(missing) > 0 {
		return errors.New("database is not fully migrated")
	}
	return nil
}

func writeStatus(w io.Writer, names []string, applied map[string]bool, missing []string) {
	for _, n := range names {
		state := "pending"
		if applied[n] {
			state = "applied"
		}
		fmt.Fprintf(w, "%-8s %s\n", state, n)
	}
	if len(missing) == 0 {
		fmt.Fprintf(w, "tables: %s present\n", strings.Join(repository.Tables, ", "))
		return
	}
	fmt.Fprintf(w, "missing tables: %s\n", strings.Join(missing, ", "))
}
