package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the read side of the usage analytics tables.
type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LanguageStats aggregates usage for one language.
type LanguageStats struct {
	LangCode      string     `json:"lang_code"`
	Requests      int64      `json:"requests"`
	Tokens        int64      `json:"tokens"`
	Hits          int64      `json:"hits"`
	Misses        int64      `json:"misses"`
	LastRequestAt *time.Time `json:"last_request_at,omitempty"`
}

// RequestLog is one recorded translation request.
type RequestLog struct {
	ID         string    `json:"id"`
	LangCode   string    `json:"lang_code"`
	Format     string    `json:"format"`
	TokenCount int       `json:"token_count"`
	HitCount   int       `json:"hit_count"`
	MissCount  int       `json:"miss_count"`
	DurationMs int64     `json:"duration_ms"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatsByLanguage returns per-language usage aggregates, busiest first.
func (s *Store) StatsByLanguage(ctx context.Context) ([]LanguageStats, error) {
	rows, err := s.db.Query(ctx, `
		SELECT lang_code, COUNT(*), COALESCE(SUM(token_count), 0),
		       COALESCE(SUM(hit_count), 0), COALESCE(SUM(miss_count), 0),
		       MAX(created_at)
		FROM translation_requests
		GROUP BY lang_code
		ORDER BY COUNT(*) DESC, lang_code ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LanguageStats
	for rows.Next() {
		var st LanguageStats
		if err := rows.Scan(&st.LangCode, &st.Requests, &st.Tokens, &st.Hits, &st.Misses, &st.LastRequestAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// RecentRequests lists the newest recorded requests.
func (s *Store) RecentRequests(ctx context.Context, limit int) ([]RequestLog, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, lang_code, format, token_count, hit_count, miss_count, duration_ms, source, created_at
		FROM translation_requests
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RequestLog
	for rows.Next() {
		var r RequestLog
		if err := rows.Scan(&r.ID, &r.LangCode, &r.Format, &r.TokenCount, &r.HitCount,
			&r.MissCount, &r.DurationMs, &r.Source, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
