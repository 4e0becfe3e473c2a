package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RiskFlagClassificationError marks a fallback result produced after an
// oracle failure
const RiskFlagClassificationError = "error_in_classification"

// IntentEngine classifies raw signal text for buying intent through the
// reasoning oracle. Every call succeeds: oracle errors, timeouts and
// malformed responses degrade to a deterministic fallback result.
type IntentEngine struct {
	llm     LLMClient
	scorer  LeadScorer
	timeout time.Duration
	logger  *zap.Logger
}

// NewIntentEngine creates a new intent engine
func NewIntentEngine(llm LLMClient, scorer LeadScorer, timeout time.Duration, logger *zap.Logger) *IntentEngine {
	return &IntentEngine{
		llm:     llm,
		scorer:  scorer,
		timeout: timeout,
		logger:  logger,
	}
}

// ModelName returns the oracle model identifier for audit records
func (e *IntentEngine) ModelName() string {
	return e.llm.ModelName()
}

// Classify classifies text and returns a structured result. The regional
// flags are copied into the score set and an intermediate lead score is
// computed; the pipeline recomputes the authoritative score after the
// visual merge.
func (e *IntentEngine) Classify(ctx context.Context, text string) *Classification {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	result, err := e.llm.ClassifyText(ctx, text)
	if err != nil {
		e.logger.Error("Text classification failed, using fallback result", zap.Error(err))
		return FallbackClassification()
	}

	// Expose the regional flags to the scorer and pre-score the lead.
	result.Scores.IsSPRegion = result.IsSPRegion
	result.Scores.IsEliteNeighborhood = result.IsEliteNeighborhood
	result.Scores.DetectedLocation = result.DetectedLocation
	result.Scores.SubliminalSignals = result.SubliminalSignals
	result.Scores.LeadScore = e.scorer.Score(result.Scores)

	return result
}

// FallbackClassification is the deterministic zero result substituted when
// the oracle fails. The absent region flag does not penalize by default.
func FallbackClassification() *Classification {
	return &Classification{
		PainPoint:   LabelConfidence{Label: "unknown", Confidence: 0},
		IntentStage: LabelConfidence{Label: "unknown", Confidence: 0},
		Maturity:    MaturityLabel{Label: "unknown", Score: 0},
		IsSPRegion:  true,
		Scores: ScoreSet{
			IsSPRegion: true,
			LeadScore:  0,
		},
		Evidence:  []string{},
		RiskFlags: []string{RiskFlagClassificationError},
	}
}
