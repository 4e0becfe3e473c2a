package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubLLM is a scripted oracle client for engine tests
type stubLLM struct {
	classification *Classification
	visual         *VisualAnalysis
	classifyErr    error
	analyzeErr     error
	lastText       string
	lastImageURL   string
}

func (s *stubLLM) ClassifyText(_ context.Context, text string) (*Classification, error) {
	s.lastText = text
	if s.classifyErr != nil {
		return nil, s.classifyErr
	}
	c := *s.classification
	return &c, nil
}

func (s *stubLLM) AnalyzeImage(_ context.Context, imageURL string) (*VisualAnalysis, error) {
	s.lastImageURL = imageURL
	if s.analyzeErr != nil {
		return nil, s.analyzeErr
	}
	v := *s.visual
	return &v, nil
}

func (s *stubLLM) ModelName() string {
	return "stub-model"
}

func TestIntentEngineCopiesRegionalFlagsIntoScores(t *testing.T) {
	llm := &stubLLM{
		classification: &Classification{
			PainPoint:           LabelConfidence{Label: "flacidez", Confidence: 0.9},
			IntentStage:         LabelConfidence{Label: "decisao", Confidence: 0.8},
			Maturity:            MaturityLabel{Label: "pronta", Score: 80},
			IsSPRegion:          true,
			IsEliteNeighborhood: true,
			DetectedLocation:    "Itaim Bibi",
			SubliminalSignals:   []string{"menciona clínica premium"},
			Scores: ScoreSet{
				Fit:                80,
				Intent:             90,
				Urgency:            70,
				Maturity:           80,
				SocialStatusSignal: 60,
			},
		},
	}
	engine := NewIntentEngine(llm, NewLeadScorer(), time.Second, zap.NewNop())

	result := engine.Classify(context.Background(), "quero fazer ultraformer no itaim")

	require.NotNil(t, result)
	assert.Equal(t, "quero fazer ultraformer no itaim", llm.lastText)
	assert.True(t, result.Scores.IsSPRegion)
	assert.True(t, result.Scores.IsEliteNeighborhood)
	assert.Equal(t, "Itaim Bibi", result.Scores.DetectedLocation)
	assert.Equal(t, []string{"menciona clínica premium"}, result.Scores.SubliminalSignals)
	assert.Greater(t, result.Scores.LeadScore, 0.0)
}

func TestIntentEngineFallbackOnOracleError(t *testing.T) {
	llm := &stubLLM{classifyErr: errors.New("rate limited")}
	engine := NewIntentEngine(llm, NewLeadScorer(), time.Second, zap.NewNop())

	result := engine.Classify(context.Background(), "qualquer texto")

	require.NotNil(t, result)
	assert.Equal(t, "unknown", result.PainPoint.Label)
	assert.Equal(t, "unknown", result.IntentStage.Label)
	assert.Equal(t, "unknown", result.Maturity.Label)
	assert.True(t, result.Scores.IsSPRegion, "missing region must not penalize")
	assert.Equal(t, 0.0, result.Scores.LeadScore)
	assert.Contains(t, result.RiskFlags, RiskFlagClassificationError)
}

func TestIntentEngineModelName(t *testing.T) {
	engine := NewIntentEngine(&stubLLM{}, NewLeadScorer(), 0, zap.NewNop())
	assert.Equal(t, "stub-model", engine.ModelName())
}
