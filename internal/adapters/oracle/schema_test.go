package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassificationPromptEmbedsText(t *testing.T) {
	prompt := ClassificationPrompt("quero fazer ultraformer")
	assert.Contains(t, prompt, `Texto: "quero fazer ultraformer"`)
	assert.Contains(t, prompt, "GRANDE SÃO PAULO")
	assert.Contains(t, prompt, "Itaim Bibi")
}

func TestParseClassification(t *testing.T) {
	raw := `{
		"pain_point": {"label": "flacidez facial", "confidence": 0.92},
		"intent_stage": {"label": "decisão", "confidence": 0.85},
		"maturity": {"label": "consumidora experiente", "score": 78},
		"is_sp_region": true,
		"is_elite_neighborhood": true,
		"detected_location": "Itaim Bibi",
		"scores": {"fit": 88, "intent": 90, "urgency": 70, "risk": 5, "social_status_signal": 80},
		"subliminal_signals": ["menciona Ultraformer pelo nome técnico"],
		"evidence": ["quero muito fazer na Clínica Mais"],
		"risk_flags": []
	}`

	c, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, "flacidez facial", c.PainPoint.Label)
	assert.Equal(t, 0.92, c.PainPoint.Confidence)
	assert.True(t, c.IsSPRegion)
	assert.True(t, c.IsEliteNeighborhood)
	assert.Equal(t, "Itaim Bibi", c.DetectedLocation)
	assert.Equal(t, 88.0, c.Scores.Fit)
	assert.Equal(t, 78.0, c.Scores.Maturity, "maturity score feeds the weighted sum")
	assert.Equal(t, 80.0, c.Scores.SocialStatusSignal)
	assert.Len(t, c.SubliminalSignals, 1)
}

func TestParseClassificationMissingRegionDefaultsTrue(t *testing.T) {
	raw := `{"pain_point": {"label": "melasma", "confidence": 0.5}, "scores": {"fit": 40}}`

	c, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.True(t, c.IsSPRegion, "absent region flag must not penalize")
	assert.False(t, c.IsEliteNeighborhood)
	assert.Equal(t, 0.0, c.Scores.Intent)
}

func TestParseClassificationExplicitFalseRegion(t *testing.T) {
	raw := `{"is_sp_region": false, "detected_location": "Curitiba", "scores": {}}`

	c, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.False(t, c.IsSPRegion)
}

func TestParseClassificationWithSurroundingProse(t *testing.T) {
	raw := "Aqui está a análise solicitada:\n```json\n" +
		`{"pain_point": {"label": "rugas", "confidence": 0.7}, "is_sp_region": true, "scores": {"fit": 60}}` +
		"\n```\nEspero ter ajudado!"

	c, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, "rugas", c.PainPoint.Label)
	assert.Equal(t, 60.0, c.Scores.Fit)
}

func TestParseClassificationRejectsGarbage(t *testing.T) {
	_, err := ParseClassification("the model refused to answer")
	assert.Error(t, err)
}

func TestParseVisualAnalysis(t *testing.T) {
	raw := `{
		"visual_fit": 95,
		"asset_audit": {
			"high_value_objects": ["Rolex Submariner"],
			"luxury_environment": "cabine de primeira classe",
			"brand_detection": ["Hermès"]
		},
		"socioeconomic_tier": "VIP",
		"detected_luxury_indicators": ["relógio de luxo", "viagem premium"],
		"justification": "patrimônio visual compatível com alvo Tier 1"
	}`

	v, err := ParseVisualAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, 95.0, v.VisualFit)
	assert.Equal(t, "VIP", v.SocioeconomicTier)
	assert.Equal(t, []string{"Rolex Submariner"}, v.AssetAudit.HighValueObjects)
	assert.Len(t, v.DetectedLuxuryIndicators, 2)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ExtractJSON("prefix {\"a\":1} suffix"))
	assert.Equal(t, `{"a":{"b":2}}`, ExtractJSON(`{"a":{"b":2}}`))
	assert.Equal(t, "no braces here", ExtractJSON("no braces here"))
}
