package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
)

// MySQLStore is a MySQL implementation of the LeadStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL using the given DSN and migrates the schema.
// The DSN must carry parseTime=true so timestamps scan into time.Time.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS source_items (
			id            VARCHAR(36) PRIMARY KEY,
			source        VARCHAR(64),
			url           TEXT,
			author_handle VARCHAR(255),
			text          TEXT,
			timestamp     DATETIME,
			raw_metadata  JSON,
			created_at    DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id                VARCHAR(36) PRIMARY KEY,
			source_item_id    VARCHAR(36),
			clinic_id         INT,
			scores            JSON,
			labels            JSON,
			evidence_snippets JSON,
			lead_score        DOUBLE,
			status            VARCHAR(16) DEFAULT 'pending',
			created_at        DATETIME,
			INDEX idx_leads_lead_score (lead_score),
			INDEX idx_leads_created_at (created_at)
		)`,
		`CREATE TABLE IF NOT EXISTS outreach_drafts (
			id               VARCHAR(36) PRIMARY KEY,
			lead_id          VARCHAR(36),
			strategy         VARCHAR(255),
			messages         JSON,
			triage_questions JSON,
			created_at       DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id             VARCHAR(36) PRIMARY KEY,
			event          VARCHAR(64),
			actor          VARCHAR(64),
			model_version  VARCHAR(128),
			prompt_version VARCHAR(64),
			payload        JSON,
			timestamp      DATETIME
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate MySQL schema: %w", err)
		}
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// SaveQualification persists one signal's SourceItem, Lead and AuditLog
// entry in a single transaction
func (s *MySQLStore) SaveQualification(ctx context.Context, item *core.SourceItem, lead *core.Lead, audit *core.AuditLog) error {
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
func (s *MySQLStore) GetLead(ctx context.Context, id string) (*core.Lead, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_item_id, clinic_id, scores, labels, evidence_snippets, status, created_at
		FROM leads WHERE id = ?
	`, id)
	return scanLead(row)
}

// ListLeads returns a page of leads ordered by creation time
func (s *MySQLStore) ListLeads(ctx context.Context, offset, limit int) ([]core.Lead, error) {
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
func (s *MySQLStore) UpdateLeadStatus(ctx context.Context, id string, status core.LeadStatus) (*core.Lead, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE leads SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		// MySQL reports zero affected rows for no-op updates too, so
		// distinguish a missing lead from an unchanged one.
		if _, err := s.GetLead(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.GetLead(ctx, id)
}

// TopLeads returns up to limit leads ordered by lead score descending
func (s *MySQLStore) TopLeads(ctx context.Context, limit int) ([]core.Lead, error) {
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
func (s *MySQLStore) SaveOutreachDraft(ctx context.Context, draft *core.OutreachDraft) error {
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
func (s *MySQLStore) Stats(ctx context.Context) (*core.StatsSummary, error) {
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

	summary.PotentialRevenue *= revenuePerScorePoint
	return summary, nil
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
