package core

// VIPScoreThreshold is the lead score above which a lead is treated as VIP.
// Shared by stats, ranking output and the notifier so the boundary stays
// consistent across every consumer.
const VIPScoreThreshold = 30.0

// Weights of the lead scoring formula. Visual fit and social status
// dominate because the clinic targets the high-end segment; risk is a
// strong penalty.
const (
	weightFit          = 0.10
	weightIntent       = 0.10
	weightUrgency      = 0.05
	weightMaturity     = 0.10
	weightVisualFit    = 0.35
	weightSocialStatus = 0.20
	weightRisk         = 0.60
)

// LeadScorer combines sub-scores into a final bounded lead score.
// Pure and total: no I/O, no failure mode, always a finite value in [0,100].
type LeadScorer struct{}

// NewLeadScorer creates a new lead scorer
func NewLeadScorer() LeadScorer {
	return LeadScorer{}
}

// Score computes the weighted lead score with geofencing multipliers.
// Leads outside Grande São Paulo are halved; elite neighborhoods get a
// 20% bonus. The result is clamped to [0,100].
func (LeadScorer) Score(s ScoreSet) float64 {
	raw := weightFit*s.Fit +
		weightIntent*s.Intent +
		weightUrgency*s.Urgency +
		weightMaturity*s.Maturity +
		weightVisualFit*s.VisualFit +
		weightSocialStatus*s.SocialStatusSignal -
		weightRisk*s.Risk

	regional := 0.5
	if s.IsSPRegion {
		regional = 1.0
	}
	elite := 1.0
	if s.IsEliteNeighborhood {
		elite = 1.2
	}

	return clamp(raw*regional*elite, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
