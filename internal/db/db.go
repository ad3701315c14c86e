// Package db stores completed PRD analysis reports in a local SQLite file.
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
)

// Store manages the report history database.
type Store struct {
	db *sql.DB
}

// Report is a persisted analysis: summary columns for listing plus the full
// report JSON for replay.
type Report struct {
	ID         string
	Source     string
	StoryCount int
	Score      int
	Grade      string
	IsValid    bool
	CreatedAt  int64
	Payload    []byte
}

// Summary carries the columns extracted from an analysis at save time.
type Summary struct {
	Source     string
	StoryCount int
	Score      int
	Grade      string
	IsValid    bool
}

// Open opens the report database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &Store{db: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema creates the report table if needed.
func (s *Store) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		story_count INTEGER NOT NULL,
		score INTEGER NOT NULL,
		grade TEXT NOT NULL,
		is_valid INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		payload BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveReport persists one analysis report and returns the stored record.
func (s *Store) SaveReport(summary Summary, payload []byte) (*Report, error) {
	report := &Report{
		ID:         uuid.NewString(),
		Source:     summary.Source,
		StoryCount: summary.StoryCount,
		Score:      summary.Score,
		Grade:      summary.Grade,
		IsValid:    summary.IsValid,
		CreatedAt:  time.Now().Unix(),
		Payload:    payload,
	}

	_, err := s.db.Exec(`
		INSERT INTO reports (id, source, story_count, score, grade, is_valid, created_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.Source, report.StoryCount, report.Score, report.Grade,
		boolToInt(report.IsValid), report.CreatedAt, report.Payload)
	if err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}

	return report, nil
}

// ListReports returns the most recent reports, newest first, without
// payloads.
func (s *Store) ListReports(limit int) ([]*Report, error) {
	rows, err := s.db.Query(`
		SELECT id, source, story_count, score, grade, is_valid, created_at
		FROM reports
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		var r Report
		var valid int
		if err := rows.Scan(&r.ID, &r.Source, &r.StoryCount, &r.Score, &r.Grade, &valid, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		r.IsValid = valid != 0
		reports = append(reports, &r)
	}
	return reports, rows.Err()
}

// GetReport loads one report, payload included.
func (s *Store) GetReport(id string) (*Report, error) {
	var r Report
	var valid int
	err := s.db.QueryRow(`
		SELECT id, source, story_count, score, grade, is_valid, created_at, payload
		FROM reports
		WHERE id = ?
	`, id).Scan(&r.ID, &r.Source, &r.StoryCount, &r.Score, &r.Grade, &valid, &r.CreatedAt, &r.Payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading report: %w", err)
	}
	r.IsValid = valid != 0
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
