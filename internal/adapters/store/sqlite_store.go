// Package store implements the LeadStore persistence port over SQLite and
// MySQL. The lead score is denormalized into its own column so ranking and
// stats never need to unpack the JSON score set.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
)

// SQLiteStore is a SQLite implementation of the LeadStore interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (and migrates) a SQLite database at the given path
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS source_items (
			id            TEXT PRIMARY KEY,
			source        TEXT,
			url           TEXT,
			author_handle TEXT,
			text          TEXT,
			timestamp     TIMESTAMP,
			raw_metadata  TEXT,
			created_at    TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id                TEXT PRIMARY KEY,
			source_item_id    TEXT REFERENCES source_items(id),
			clinic_id         INTEGER,
			scores            TEXT,
			labels            TEXT,
			evidence_snippets TEXT,
			lead_score        REAL,
			status            TEXT DEFAULT 'pending',
			created_at        TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS outreach_drafts (
			id               TEXT PRIMARY KEY,
			lead_id          TEXT REFERENCES leads(id),
			strategy         TEXT,
			messages         TEXT,
			triage_questions TEXT,
			created_at       TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id             TEXT PRIMARY KEY,
			event          TEXT,
			actor          TEXT,
			model_version  TEXT,
			prompt_version TEXT,
			payload        TEXT,
			timestamp      TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_lead_score ON leads(lead_score)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate SQLite schema: %w", err)
		}
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// SaveQualification persists one signal's SourceItem, Lead and AuditLog
// entry in a single transaction
func (s *SQLiteStore) SaveQualification(ctx context.Context, item *core.SourceItem, lead *core.Lead, audit *core.AuditLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	metadata, err := marshalJSON(item.RawMetadata)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO source_items (id, source, url, author_handle, text, timestamp, raw_metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.Source, item.URL, item.AuthorHandle, item.Text, item.Timestamp, metadata, now); err != nil {
		return fmt.Errorf("failed to insert source item: %w", err)
	}

	scores, labels, evidence, err := marshalLeadColumns(lead)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO leads (id, source_item_id, clinic_id, scores, labels, evidence_snippets, lead_score, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, lead.ID, lead.SourceItemID, lead.ClinicID, scores, labels, evidence, lead.Scores.LeadScore, string(lead.Status), now); err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	payload, err := marshalJSON(audit.Payload)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO audit_logs (id, event, actor, model_version, prompt_version, payload, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, audit.ID, audit.Event, audit.Actor, audit.ModelVersion, audit.PromptVersion, payload, now); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit qualification: %w", err)
	}
	return nil
}

// GetLead retrieves one lead by id
func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*core.Lead, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_item_id, clinic_id, scores, labels, evidence_snippets, status, created_at
		FROM leads WHERE id = ?
	`, id)
	return scanLead(row)
}

// ListLeads returns a page of leads ordered by creation time
func (s *SQLiteStore) ListLeads(ctx context.Context, offset, limit int) ([]core.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_item_id, clinic_id, scores, labels, evidence_snippets, status, created_at
		FROM leads ORDER BY created_at LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()
	return collectLeads(rows)
}

// UpdateLeadStatus mutates the review status of an existing lead
func (s *SQLiteStore) UpdateLeadStatus(ctx context.Context, id string, status core.LeadStatus) (*core.Lead, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE leads SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, core.ErrLeadNotFound
	}
	return s.GetLead(ctx, id)
}

// TopLeads returns up to limit leads ordered by lead score descending
func (s *SQLiteStore) TopLeads(ctx context.Context, limit int) ([]core.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_item_id, clinic_id, scores, labels, evidence_snippets, status, created_at
		FROM leads ORDER BY lead_score DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top leads: %w", err)
	}
	defer rows.Close()
	return collectLeads(rows)
}

// SaveOutreachDraft appends an outreach draft for a lead
func (s *SQLiteStore) SaveOutreachDraft(ctx context.Context, draft *core.OutreachDraft) error {
	messages, err := marshalJSON(draft.Messages)
	if err != nil {
		return err
	}
	questions, err := marshalJSON(draft.TriageQuestions)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO outreach_drafts (id, lead_id, strategy, messages, triage_questions, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, draft.ID, draft.LeadID, draft.Strategy, messages, questions, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert outreach draft: %w", err)
	}
	return nil
}

// Stats returns the consolidated dashboard counters
func (s *SQLiteStore) Stats(ctx context.Context) (*core.StatsSummary, error) {
	summary := &core.StatsSummary{
		RegionCoverage: regionCoverage,
		LastUpdate:     time.Now(),
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN lead_score > ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(lead_score), 0)
		FROM leads
	`, core.VIPScoreThreshold).Scan(&summary.TotalLeads, &summary.VIPLeads, &summary.PotentialRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	// Revenue proxy: R$ 1000 per score point
	summary.PotentialRevenue *= revenuePerScorePoint
	return summary, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
