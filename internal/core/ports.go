package core

import (
	"context"
	"errors"
)

// ErrLeadNotFound is returned by store lookups for unknown lead ids
var ErrLeadNotFound = errors.New("lead not found")

// LLMClient defines the interface for the external reasoning oracle.
// Implementations may fail; the engines translate every failure into a
// deterministic fallback so the pipeline never stalls on a single signal.
type LLMClient interface {
	// ClassifyText classifies raw signal text for buying intent
	ClassifyText(ctx context.Context, text string) (*Classification, error)

	// AnalyzeImage audits a profile image for socioeconomic indicators
	AnalyzeImage(ctx context.Context, imageURL string) (*VisualAnalysis, error)

	// ModelName returns the model identifier used for audit records
	ModelName() string
}

// SignalSource defines the interface for a search provider
type SignalSource interface {
	// Search returns raw signals matching a single query
	Search(ctx context.Context, query string) ([]RawSignal, error)
}

// LeadStore defines the persistence interface for the qualification pipeline
type LeadStore interface {
	// SaveQualification persists a SourceItem, its Lead and the AuditLog
	// entry in a single transaction. IDs must be set by the caller.
	SaveQualification(ctx context.Context, item *SourceItem, lead *Lead, audit *AuditLog) error

	// GetLead retrieves one lead; ErrLeadNotFound for unknown ids
	GetLead(ctx context.Context, id string) (*Lead, error)

	// ListLeads returns a page of leads ordered by creation time
	ListLeads(ctx context.Context, offset, limit int) ([]Lead, error)

	// UpdateLeadStatus mutates the review status of an existing lead;
	// ErrLeadNotFound for unknown ids
	UpdateLeadStatus(ctx context.Context, id string, status LeadStatus) (*Lead, error)

	// TopLeads returns up to limit leads ordered by lead score descending
	TopLeads(ctx context.Context, limit int) ([]Lead, error)

	// SaveOutreachDraft appends an outreach draft for a lead
	SaveOutreachDraft(ctx context.Context, draft *OutreachDraft) error

	// Stats returns the consolidated counters for the dashboard
	Stats(ctx context.Context) (*StatsSummary, error)

	// Close releases the underlying connections
	Close() error
}

// Notifier delivers alerts about high-value leads to the SDR team
type Notifier interface {
	// NotifyVIPLead sends the booking summary for a lead above the VIP threshold
	NotifyVIPLead(ctx context.Context, lead *Lead, summary string) error
}
