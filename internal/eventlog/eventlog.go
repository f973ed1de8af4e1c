package eventlog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Request is one completed translation, recorded for usage analytics.
type Request struct {
	LangCode   string
	Format     string
	TokenCount int
	HitCount   int
	MissCount  int
	DurationMs int64
	Source     string // "http" or "ws"
}

// Logger provides async usage logging to the database. It is safe to use
// without a database: recording becomes a no-op.
type Logger struct {
	db *pgxpool.Pool
}

// New creates a usage logger. db may be nil.
func New(db *pgxpool.Pool) *Logger {
	return &Logger{db: db}
}

// Record writes a usage row synchronously.
func (l *Logger) Record(ctx context.Context, r Request) error {
	if l == nil || l.db == nil {
		return nil // Silently skip if no DB
	}

	_, err := l.db.Exec(ctx, `
		INSERT INTO translation_requests (lang_code, format, token_count, hit_count, miss_count, duration_ms, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.LangCode, r.Format, r.TokenCount, r.HitCount, r.MissCount, r.DurationMs, r.Source)

	return err
}

// RecordAsync writes a usage row without blocking the request path.
func (l *Logger) RecordAsync(r Request) {
	if l == nil || l.db == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.Record(ctx, r)
	}()
}
