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

func TestVisionEngineMapsAnalysisToProfile(t *testing.T) {
	llm := &stubLLM{
		visual: &VisualAnalysis{
			VisualFit:                92,
			SocioeconomicTier:        TierVIP,
			DetectedLuxuryIndicators: []string{"Rolex Datejust", "interior de carro premium"},
			Justification:            "relógio de luxo visível no pulso",
		},
	}
	engine := NewVisionEngine(llm, time.Second, zap.NewNop())

	profile := engine.Analyze(context.Background(), "https://example.com/p.jpg")

	require.NotNil(t, profile)
	assert.Equal(t, "https://example.com/p.jpg", llm.lastImageURL)
	assert.Equal(t, 92.0, profile.VisualFit)
	assert.Equal(t, TierVIP, profile.Tier)
	assert.Len(t, profile.Attributes, 2)
	assert.Equal(t, "relógio de luxo visível no pulso", profile.Justification)
}

func TestVisionEngineNeutralProfileOnError(t *testing.T) {
	llm := &stubLLM{analyzeErr: errors.New("image fetch failed")}
	engine := NewVisionEngine(llm, time.Second, zap.NewNop())

	profile := engine.Analyze(context.Background(), "https://example.com/p.jpg")

	require.NotNil(t, profile)
	assert.Equal(t, 50.0, profile.VisualFit)
	assert.Equal(t, TierStandard, profile.Tier)
	assert.Empty(t, profile.Attributes)
}

func TestVisionEngineDefaultsEmptyTier(t *testing.T) {
	llm := &stubLLM{visual: &VisualAnalysis{VisualFit: 70}}
	engine := NewVisionEngine(llm, 0, zap.NewNop())

	profile := engine.Analyze(context.Background(), "https://example.com/p.jpg")
	assert.Equal(t, TierStandard, profile.Tier)
}

func TestDefaultVisualProfile(t *testing.T) {
	profile := DefaultVisualProfile()
	assert.Equal(t, 50.0, profile.VisualFit)
	assert.Equal(t, TierStandard, profile.Tier)
	assert.Equal(t, "no image available", profile.Justification)
}
