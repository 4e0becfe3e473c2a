package core

import (
	"time"
)

// RawSignal is one raw captured signal before qualification
type RawSignal struct {
	Source       string
	URL          string
	AuthorHandle string
	AuthorImage  string
	Text         string
	Timestamp    time.Time
	RawMetadata  map[string]any
}

// SourceItem is a persisted raw signal; immutable after creation
type SourceItem struct {
	ID           string
	Source       string
	URL          string
	AuthorHandle string
	Text         string
	Timestamp    time.Time
	RawMetadata  map[string]any
	CreatedAt    time.Time
}

// ScoreSet holds all named sub-scores of a lead plus the derived lead score
type ScoreSet struct {
	Fit                 float64  `json:"fit"`
	Intent              float64  `json:"intent"`
	Urgency             float64  `json:"urgency"`
	Maturity            float64  `json:"maturity"`
	Risk                float64  `json:"risk"`
	SocialStatusSignal  float64  `json:"social_status_signal"`
	VisualFit           float64  `json:"visual_fit"`
	IsSPRegion          bool     `json:"is_sp_region"`
	IsEliteNeighborhood bool     `json:"is_elite_neighborhood"`
	LeadScore           float64  `json:"lead_score"`
	VisualJustification string   `json:"visual_justification,omitempty"`
	DetectedLocation    string   `json:"detected_location,omitempty"`
	SubliminalSignals   []string `json:"subliminal_signals,omitempty"`
}

// Labels holds the categorical classification of a lead
type Labels struct {
	PainPoint     string   `json:"pain_point"`
	IntentStage   string   `json:"intent_stage"`
	Maturity      string   `json:"maturity"`
	Tier          string   `json:"tier"`
	VisualProfile []string `json:"visual_profile,omitempty"`
}

// Socioeconomic tiers derived from visual analysis
const (
	TierVIP      = "VIP"
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierStandard = "Standard"
)

// LeadStatus is the review state of a lead
type LeadStatus string

const (
	StatusPending  LeadStatus = "pending"
	StatusApproved LeadStatus = "approved"
	StatusRejected LeadStatus = "rejected"
)

// Valid reports whether the status is one of the allowed review states
func (s LeadStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Lead is a qualified prospect derived from exactly one SourceItem.
// Only Status is mutable after creation, via an explicit review action.
type Lead struct {
	ID               string
	SourceItemID     string
	ClinicID         int
	Scores           ScoreSet
	Labels           Labels
	EvidenceSnippets []string
	Status           LeadStatus
	CreatedAt        time.Time
}

// AuditLog is an append-only record of a qualification event
type AuditLog struct {
	ID            string
	Event         string
	Actor         string
	ModelVersion  string
	PromptVersion string
	Payload       map[string]any
	Timestamp     time.Time
}

// OutreachDraft is a downstream artifact generated on demand for a lead
type OutreachDraft struct {
	ID              string
	LeadID          string
	Strategy        string
	Messages        []string
	TriageQuestions []string
	CreatedAt       time.Time
}

// LabelConfidence pairs a label with the oracle's confidence in it
type LabelConfidence struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// MaturityLabel pairs a maturity label with a 0-100 score
type MaturityLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classification is the structured result of text classification
type Classification struct {
	PainPoint           LabelConfidence `json:"pain_point"`
	IntentStage         LabelConfidence `json:"intent_stage"`
	Maturity            MaturityLabel   `json:"maturity"`
	IsSPRegion          bool            `json:"is_sp_region"`
	IsEliteNeighborhood bool            `json:"is_elite_neighborhood"`
	DetectedLocation    string          `json:"detected_location"`
	Scores              ScoreSet        `json:"scores"`
	SubliminalSignals   []string        `json:"subliminal_signals"`
	Evidence            []string        `json:"evidence"`
	RiskFlags           []string        `json:"risk_flags"`
}

// AssetAudit is the structured asset breakdown of a visual analysis
type AssetAudit struct {
	HighValueObjects  []string `json:"high_value_objects"`
	LuxuryEnvironment string   `json:"luxury_environment"`
	BrandDetection    []string `json:"brand_detection"`
}

// VisualAnalysis is the raw structured verdict returned by the vision oracle
type VisualAnalysis struct {
	VisualFit                float64    `json:"visual_fit"`
	AssetAudit               AssetAudit `json:"asset_audit"`
	SocioeconomicTier        string     `json:"socioeconomic_tier"`
	DetectedLuxuryIndicators []string   `json:"detected_luxury_indicators"`
	Justification            string     `json:"justification"`
}

// VisualProfile is the merged visual verdict consumed by the pipeline
type VisualProfile struct {
	VisualFit     float64
	Attributes    []string
	Justification string
	Tier          string
}

// LeadScoreRef identifies one successfully processed lead and its final score
type LeadScoreRef struct {
	LeadID string  `json:"lead_id"`
	Score  float64 `json:"score"`
}

// StatsSummary holds the consolidated dashboard counters
type StatsSummary struct {
	TotalLeads       int       `json:"total_leads"`
	VIPLeads         int       `json:"vip_leads"`
	PotentialRevenue float64   `json:"potential_revenue"`
	RegionCoverage   string    `json:"region_coverage"`
	LastUpdate       time.Time `json:"last_update"`
}

// RevenueEstimate is the output of the revenue estimator
type RevenueEstimate struct {
	Service        string  `json:"service"`
	EstimatedValue float64 `json:"estimated_value"`
	Currency       string  `json:"currency"`
}

// TriageFlow is the SDR conversation plan for a lead
type TriageFlow struct {
	Strategy          string   `json:"strategy"`
	OpeningStatement  string   `json:"opening_statement"`
	TriageQuestions   []string `json:"triage_questions"`
	AppointmentIntent string   `json:"appointment_intent"`
}

// OutreachPlan bundles the composed outreach messages for a lead
type OutreachPlan struct {
	Strategy        string   `json:"strategy"`
	Messages        []string `json:"messages"`
	TriageQuestions []string `json:"triage_questions"`
}
