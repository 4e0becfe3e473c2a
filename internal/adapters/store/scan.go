package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
)

const (
	regionCoverage       = "Grande São Paulo"
	revenuePerScorePoint = 1000.0
)

type scannable interface {
	Scan(dest ...any) error
}

// marshalJSON encodes a JSON column value, mapping nil to an empty document
func marshalJSON(v any) (string, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON column: %w", err)
	}
	return string(b), nil
}

func marshalLeadColumns(lead *core.Lead) (scores, labels, evidence string, err error) {
	if scores, err = marshalJSON(lead.Scores); err != nil {
		return
	}
	if labels, err = marshalJSON(lead.Labels); err != nil {
		return
	}
	evidence, err = marshalJSON(lead.EvidenceSnippets)
	return
}

func scanLead(row scannable) (*core.Lead, error) {
	var (
		lead                     core.Lead
		scores, labels, evidence string
		status                   string
		createdAt                time.Time
	)
	err := row.Scan(&lead.ID, &lead.SourceItemID, &lead.ClinicID, &scores, &labels, &evidence, &status, &createdAt)
	if err == sql.ErrNoRows {
		return nil, core.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan lead: %w", err)
	}

	if err := json.Unmarshal([]byte(scores), &lead.Scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lead scores: %w", err)
	}
	if err := json.Unmarshal([]byte(labels), &lead.Labels); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lead labels: %w", err)
	}
	if evidence != "" && evidence != "{}" {
		if err := json.Unmarshal([]byte(evidence), &lead.EvidenceSnippets); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lead evidence: %w", err)
		}
	}
	lead.Status = core.LeadStatus(status)
	lead.CreatedAt = createdAt
	return &lead, nil
}

func collectLeads(rows *sql.Rows) ([]core.Lead, error) {
	var leads []core.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, nil
}
