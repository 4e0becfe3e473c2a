package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAllZeroInRegion(t *testing.T) {
	scorer := NewLeadScorer()

	score := scorer.Score(ScoreSet{IsSPRegion: true})
	assert.Equal(t, 0.0, score)
}

func TestScoreWeightedSum(t *testing.T) {
	scorer := NewLeadScorer()

	s := ScoreSet{
		Fit:                80,
		Intent:             90,
		Urgency:            70,
		Maturity:           60,
		VisualFit:          85,
		SocialStatusSignal: 75,
		Risk:               10,
		IsSPRegion:         true,
	}
	// 8 + 9 + 3.5 + 6 + 29.75 + 15 - 6 = 65.25
	score := scorer.Score(s)
	assert.InDelta(t, 65.25, score, 1e-9)
}

func TestScoreRegionalMultiplierHalvesOutsideSP(t *testing.T) {
	scorer := NewLeadScorer()

	inside := ScoreSet{Fit: 50, Intent: 50, VisualFit: 50, IsSPRegion: true}
	outside := inside
	outside.IsSPRegion = false

	assert.InDelta(t, scorer.Score(inside)/2, scorer.Score(outside), 1e-9)
}

func TestScoreEliteNeighborhoodBonus(t *testing.T) {
	scorer := NewLeadScorer()

	base := ScoreSet{Fit: 50, Intent: 50, VisualFit: 50, IsSPRegion: true}
	elite := base
	elite.IsEliteNeighborhood = true

	assert.InDelta(t, scorer.Score(base)*1.2, scorer.Score(elite), 1e-9)
}

func TestScoreRiskIsAPenalty(t *testing.T) {
	scorer := NewLeadScorer()

	clean := ScoreSet{Fit: 80, Intent: 80, VisualFit: 80, IsSPRegion: true}
	risky := clean
	risky.Risk = 50

	assert.Less(t, scorer.Score(risky), scorer.Score(clean))
}

func TestScoreClampedToLowerBound(t *testing.T) {
	scorer := NewLeadScorer()

	// Risk dominates everything else, pushing the raw score negative.
	score := scorer.Score(ScoreSet{Risk: 100, IsSPRegion: true})
	assert.Equal(t, 0.0, score)
}

func TestScoreClampedToUpperBound(t *testing.T) {
	scorer := NewLeadScorer()

	s := ScoreSet{
		Fit:                 100,
		Intent:              100,
		Urgency:             100,
		Maturity:            100,
		VisualFit:           100,
		SocialStatusSignal:  100,
		IsSPRegion:          true,
		IsEliteNeighborhood: true,
	}
	// Raw 90 with the elite bonus would be 108; clamp to 100.
	assert.Equal(t, 100.0, scorer.Score(s))
}

func TestScoreIsPure(t *testing.T) {
	scorer := NewLeadScorer()

	s := ScoreSet{Fit: 42, VisualFit: 77, IsSPRegion: true, IsEliteNeighborhood: true}
	first := scorer.Score(s)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, scorer.Score(s))
	}
}
