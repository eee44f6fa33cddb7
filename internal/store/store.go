// Package store provides PostgreSQL persistence for completed audit reports.
// The pipeline itself is stateless; the server layer saves reports here after
// assembly, and a storage failure never fails the audit response.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marketpulse/seo-audit/internal/audit"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes and verifies a connection pool.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveReport persists a completed report and returns its id.
func (s *Store) SaveReport(ctx context.Context, report *audit.Report) (uuid.UUID, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO audit_reports (url, overall_score, critical_count, warning_count, passed_count, report, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		report.URL,
		report.OverallScore,
		report.Issues.Critical,
		report.Issues.Warning,
		report.Issues.Passed,
		payload,
		report.GeneratedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert audit report: %w", err)
	}

	return id, nil
}

// Summary is one row of the audit history listing.
type Summary struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	OverallScore int       `json:"overallScore"`
	Critical     int       `json:"critical"`
	Warning      int       `json:"warning"`
	Passed       int       `json:"passed"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Recent returns the latest audits, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, url, overall_score, critical_count, warning_count, passed_count, created_at
		 FROM audit_reports
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit history: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.URL, &s.OverallScore, &s.Critical, &s.Warning, &s.Passed, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit history: %w", err)
	}

	return summaries, nil
}

// GetReport loads one stored report by id.
func (s *Store) GetReport(ctx context.Context, id uuid.UUID) (*audit.Report, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT report FROM audit_reports WHERE id = $1`, id,
	).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit report %s: %w", id, err)
	}

	var report audit.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit report %s: %w", id, err)
	}

	return &report, nil
}
