package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	auditEventQualification = "lead_qualification"
	auditActor              = "AI_Agent_Tier1"
)

// Collector is the signal ingestion pipeline: it pulls raw signals from the
// search provider (or the fixture generator when the provider is
// unconfigured), drives classification, visual profiling and scoring per
// signal, and persists the results atomically per signal.
type Collector struct {
	intent   *IntentEngine
	vision   *VisionEngine
	scorer   LeadScorer
	store    LeadStore
	search   SignalSource
	notifier Notifier
	clinicID int
	logger   *zap.Logger
}

// NewCollector creates a new signal collector. search and notifier may be
// nil: a nil search provider always uses the fixture generator, a nil
// notifier disables VIP alerts.
func NewCollector(
	intent *IntentEngine,
	vision *VisionEngine,
	scorer LeadScorer,
	store LeadStore,
	search SignalSource,
	notifier Notifier,
	clinicID int,
	logger *zap.Logger,
) *Collector {
	return &Collector{
		intent:   intent,
		vision:   vision,
		scorer:   scorer,
		store:    store,
		search:   search,
		notifier: notifier,
		clinicID: clinicID,
		logger:   logger,
	}
}

// NormalizeText cleans raw signal text before classification
func NormalizeText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// FetchSignals collects raw signals for the given queries. When the search
// provider is unconfigured or yields nothing, the deterministic fixture
// signals are returned so the rest of the pipeline stays exercisable
// without live external dependencies.
func (c *Collector) FetchSignals(ctx context.Context, queries []string) []RawSignal {
	if c.search == nil {
		c.logger.Warn("Search provider not configured, using fixture signals")
		return FixtureSignals()
	}

	var all []RawSignal
	for _, query := range queries {
		signals, err := c.search.Search(ctx, query)
		if err != nil {
			c.logger.Error("Signal search failed",
				zap.String("query", query),
				zap.Error(err))
			continue
		}
		all = append(all, signals...)
	}

	if len(all) == 0 {
		c.logger.Warn("Search returned no signals, using fixture signals")
		return FixtureSignals()
	}
	return all
}

// ProcessSignals runs the full qualification sequence for every signal.
// Signals are independent: a failure on one is logged and skipped, and the
// batch continues. Only successfully persisted leads are returned.
func (c *Collector) ProcessSignals(ctx context.Context, signals []RawSignal) []LeadScoreRef {
	results := make([]LeadScoreRef, 0, len(signals))

	for _, sig := range signals {
		ref, err := c.processSignal(ctx, sig)
		if err != nil {
			c.logger.Error("Failed to process signal",
				zap.String("source", sig.Source),
				zap.String("url", sig.URL),
				zap.Error(err))
			continue
		}
		results = append(results, *ref)
	}

	return results
}

// processSignal qualifies one signal. SourceItem, Lead and AuditLog are
// committed in one store transaction so a mid-signal failure leaves no
// partial writes.
func (c *Collector) processSignal(ctx context.Context, sig RawSignal) (*LeadScoreRef, error) {
	text := NormalizeText(sig.Text)

	item := &SourceItem{
		ID:           uuid.New().String(),
		Source:       sig.Source,
		URL:          sig.URL,
		AuthorHandle: sig.AuthorHandle,
		Text:         text,
		Timestamp:    sig.Timestamp,
		RawMetadata:  sig.RawMetadata,
	}

	classification := c.intent.Classify(ctx, text)

	visual := DefaultVisualProfile()
	if sig.AuthorImage != "" {
		visual = c.vision.Analyze(ctx, sig.AuthorImage)
	}

	// Merge the visual verdict and recompute the authoritative score. The
	// score computed inside Classify predates visual_fit and survives only
	// in the audit payload.
	finalScores := classification.Scores
	finalScores.VisualFit = visual.VisualFit
	finalScores.VisualJustification = visual.Justification
	finalScores.LeadScore = c.scorer.Score(finalScores)

	lead := &Lead{
		ID:           uuid.New().String(),
		SourceItemID: item.ID,
		ClinicID:     c.clinicID,
		Scores:       finalScores,
		Labels: Labels{
			PainPoint:     classification.PainPoint.Label,
			IntentStage:   classification.IntentStage.Label,
			Maturity:      classification.Maturity.Label,
			Tier:          visual.Tier,
			VisualProfile: visual.Attributes,
		},
		EvidenceSnippets: classification.Evidence,
		Status:           StatusPending,
	}

	audit := &AuditLog{
		ID:           uuid.New().String(),
		Event:        auditEventQualification,
		Actor:        auditActor,
		ModelVersion: c.intent.ModelName(),
		Payload: map[string]any{
			"lead_id":         lead.ID,
			"text_analysis":   classification,
			"visual_analysis": visual,
			"final_score":     finalScores.LeadScore,
		},
	}

	if err := c.store.SaveQualification(ctx, item, lead, audit); err != nil {
		return nil, err
	}

	c.logger.Info("Lead qualified and saved",
		zap.String("lead_id", lead.ID),
		zap.Float64("score", finalScores.LeadScore),
		zap.String("tier", lead.Labels.Tier))

	c.notifyIfVIP(ctx, lead)

	return &LeadScoreRef{LeadID: lead.ID, Score: finalScores.LeadScore}, nil
}

// notifyIfVIP alerts the SDR team about leads above the VIP threshold.
// Notification failures never affect the pipeline result.
func (c *Collector) notifyIfVIP(ctx context.Context, lead *Lead) {
	if c.notifier == nil || lead.Scores.LeadScore <= VIPScoreThreshold {
		return
	}
	summary := NewTriagePlanner().BookingSummary(lead)
	if err := c.notifier.NotifyVIPLead(ctx, lead, summary); err != nil {
		c.logger.Error("Failed to send VIP alert",
			zap.String("lead_id", lead.ID),
			zap.Error(err))
	}
}

// FetchAndProcess runs one complete capture mission
func (c *Collector) FetchAndProcess(ctx context.Context, queries []string) []LeadScoreRef {
	signals := c.FetchSignals(ctx, queries)
	c.logger.Info("Collected potential signals", zap.Int("count", len(signals)))
	return c.ProcessSignals(ctx, signals)
}

// FixtureSignals returns the deterministic, side-effect-free example
// signals used when no search provider is available.
func FixtureSignals() []RawSignal {
	now := time.Now()
	return []RawSignal{
		{
			Source:       "instagram",
			URL:          "https://www.instagram.com/p/C_real1",
			AuthorHandle: "@carol_luxe_sp",
			AuthorImage:  "https://images.unsplash.com/photo-1488426862026-3ee34a7d66df?q=80&w=300",
			Text:         "Meninas, fiz o Ultraformer MPT no Itaim e amei o resultado! Alguém já testou o Morpheus 8 para papada? Quero muito fazer na Clínica Mais.",
			Timestamp:    now,
			RawMetadata:  map[string]any{"location": "Itaim Bibi, São Paulo"},
		},
		{
			Source:       "google_reviews",
			URL:          "https://goo.gl/maps/review_alphaville",
			AuthorHandle: "Beatriz Mendonça",
			AuthorImage:  "https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?q=80&w=300",
			Text:         "Moro em Alphaville e estou procurando uma clínica que tenha o Lavieen original. Ouvi dizer que a Clínica Mais no Itaim é a melhor de SP.",
			Timestamp:    now,
			RawMetadata:  map[string]any{"rating": 5},
		},
	}
}
