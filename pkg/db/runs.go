package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/seo-meta-lint/models"
	"github.com/google/uuid"
)

// timeLayout is fixed-width so text ordering matches time ordering.
const timeLayout = "2006-01-02 15:04:05.000000"

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is a stored validate invocation.
type Run struct {
	RunID        string
	CreatedAt    time.Time
	Source       string
	PageCount    int
	ErrorCount   int
	WarningCount int
	InfoCount    int
}

// RunPage is the stored summary of one record within a run.
type RunPage struct {
	PageIndex    int
	Source       string
	Title        string
	CanonicalURL sql.NullString
	ErrorCount   int
	WarningCount int
	InfoCount    int
}

// StoredFinding is a finding as stored; PageIndex is invalid for
// cross-page findings.
type StoredFinding struct {
	PageIndex sql.NullInt64
	models.Finding
}

// RecordRun stores a batch report in a single transaction and returns the
// new run ID.
func (db *DB) RecordRun(source string, batch models.BatchReport) (string, error) {
	runID := uuid.NewString()
	totals := batch.Totals()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (run_id, created_at, source, page_count, error_count, warning_count, info_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, time.Now().UTC().Format(timeLayout), source, len(batch.Pages),
		totals[models.SeverityError], totals[models.SeverityWarning], totals[models.SeverityInfo])
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, p := range batch.Pages {
		var canonical sql.NullString
		if p.Report.Normalized.CanonicalURL != nil {
			canonical = sql.NullString{String: *p.Report.Normalized.CanonicalURL, Valid: true}
		}
		_, err = tx.Exec(`
			INSERT INTO run_pages (run_id, page_index, source, title, canonical_url, error_count, warning_count, info_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, p.Index, p.Source, p.Report.Normalized.Title, canonical,
			p.Report.Count(models.SeverityError), p.Report.Count(models.SeverityWarning), p.Report.Count(models.SeverityInfo))
		if err != nil {
			return "", fmt.Errorf("failed to insert run page: %w", err)
		}

		for pos, f := range p.Report.Findings {
			if err := insertFinding(tx, runID, sql.NullInt64{Int64: int64(p.Index), Valid: true}, pos, f); err != nil {
				return "", err
			}
		}
	}

	for pos, f := range batch.CrossPage {
		if err := insertFinding(tx, runID, sql.NullInt64{}, pos, f); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

func insertFinding(tx *sql.Tx, runID string, pageIndex sql.NullInt64, pos int, f models.Finding) error {
	_, err := tx.Exec(`
		INSERT INTO run_findings (run_id, page_index, position, field, severity, code, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, pageIndex, pos, f.Field, string(f.Severity), f.Code, f.Message)
	if err != nil {
		return fmt.Errorf("failed to insert finding: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 means all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, source, page_count, error_count, warning_count, info_count
		FROM runs
		ORDER BY created_at DESC, rowid DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, created_at, source, page_count, error_count, warning_count, info_count
		FROM runs WHERE run_id = ?
	`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r       Run
		created string
		source  sql.NullString
	)
	if err := s.Scan(&r.RunID, &created, &source, &r.PageCount, &r.ErrorCount, &r.WarningCount, &r.InfoCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan run: %w", err)
	}
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return r, fmt.Errorf("failed to parse run time %q: %w", created, err)
	}
	r.CreatedAt = t
	r.Source = source.String
	return r, nil
}

// GetRunPages returns page summaries for a run in page order.
func (db *DB) GetRunPages(runID string) ([]RunPage, error) {
	rows, err := db.Query(`
		SELECT page_index, source, title, canonical_url, error_count, warning_count, info_count
		FROM run_pages WHERE run_id = ?
		ORDER BY page_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run pages: %w", err)
	}
	defer rows.Close()

	var pages []RunPage
	for rows.Next() {
		var (
			p      RunPage
			source sql.NullString
			title  sql.NullString
		)
		if err := rows.Scan(&p.PageIndex, &source, &title, &p.CanonicalURL, &p.ErrorCount, &p.WarningCount, &p.InfoCount); err != nil {
			return nil, fmt.Errorf("failed to scan run page: %w", err)
		}
		p.Source = source.String
		p.Title = title.String
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetRunFindings returns a run's findings: per-page findings in page and
// rule order, then cross-page findings.
func (db *DB) GetRunFindings(runID string) ([]StoredFinding, error) {
	rows, err := db.Query(`
		SELECT page_index, field, severity, code, message
		FROM run_findings WHERE run_id = ?
		ORDER BY page_index IS NULL, page_index, position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run findings: %w", err)
	}
	defer rows.Close()

	var findings []StoredFinding
	for rows.Next() {
		var (
			f   StoredFinding
			sev string
		)
		if err := rows.Scan(&f.PageIndex, &f.Field, &sev, &f.Code, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		f.Severity = models.Severity(sev)
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// LatestRunID returns the most recent run's ID, or ErrRunNotFound when
// the history is empty.
func (db *DB) LatestRunID() (string, error) {
	runs, err := db.ListRuns(1)
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", ErrRunNotFound
	}
	return runs[0].RunID, nil
}
