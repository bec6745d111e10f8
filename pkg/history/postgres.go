package history

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ Recorder = (*Store)(nil)

// Store is the Postgres-backed Recorder.
type Store struct {
	Pool *pgxpool.Pool
}

// Connect opens a connection pool and checks it with a ping.
func Connect(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() { s.Pool.Close() }

// Migrate applies the embedded migrations.
func (s *Store) Migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.Pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Record inserts an entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.Pool.Exec(ctx, `
        INSERT INTO analyses (id, locale, sensitivity, score, total_risks, critical, high, medium, low, auto_fix_available, categories, created_at)
        VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, e.ID.String(), e.Locale, e.Sensitivity, e.Score, e.TotalRisks, e.Critical, e.High, e.Medium, e.Low, e.AutoFixAvailable, e.Categories, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording analysis: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.Pool.Query(ctx, `
        SELECT id::text, locale, sensitivity, score, total_risks, critical, high, medium, low, auto_fix_available, categories, created_at
        FROM analyses
        ORDER BY created_at DESC
        LIMIT $1
    `, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var id string
		if err := rows.Scan(&id, &e.Locale, &e.Sensitivity, &e.Score, &e.TotalRisks, &e.Critical, &e.High, &e.Medium, &e.Low, &e.AutoFixAvailable, &e.Categories, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing history id %q: %w", id, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return entries, nil
}
