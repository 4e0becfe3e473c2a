package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func leadWith(painPoint, tier string) *Lead {
	return &Lead{Labels: Labels{PainPoint: painPoint, Tier: tier}}
}

func TestEstimateMatchesServiceByPainPoint(t *testing.T) {
	e := NewRevenueEstimator()

	tests := []struct {
		painPoint string
		service   string
		value     float64
	}{
		{"quero fazer ultraformer mpt no rosto", "Ultraformer MPT", 6000},
		{"Morpheus 8 para papada", "Morpheus 8", 8000},
		{"botox na testa", "Botox", 1800},
		{"sculptra para glúteos", "Sculptra", 5500},
		{"protocolo full face completo", "Protocolo Full Face", 25000},
	}
	for _, tt := range tests {
		est := e.Estimate(leadWith(tt.painPoint, TierStandard))
		assert.Equal(t, tt.service, est.Service)
		assert.Equal(t, tt.value, est.EstimatedValue)
		assert.Equal(t, "R$", est.Currency)
	}
}

func TestEstimateDefaultsToConsultation(t *testing.T) {
	e := NewRevenueEstimator()

	est := e.Estimate(leadWith("flacidez indefinida", TierGold))
	assert.Equal(t, "Consulta / Geral", est.Service)
	assert.Equal(t, 2500.0, est.EstimatedValue)
}

func TestEstimateVIPMultiplier(t *testing.T) {
	e := NewRevenueEstimator()

	est := e.Estimate(leadWith("interesse em morpheus 8", TierVIP))
	assert.Equal(t, "Protocolo VIP (Morpheus 8+)", est.Service)
	assert.Equal(t, 20000.0, est.EstimatedValue)
}

func TestEstimatePlatinumMultiplier(t *testing.T) {
	e := NewRevenueEstimator()

	est := e.Estimate(leadWith("lavieen", TierPlatinum))
	assert.Equal(t, "Protocolo Premium (Lavieen+)", est.Service)
	assert.Equal(t, 4500.0, est.EstimatedValue)
}

func TestEstimateIsIdempotent(t *testing.T) {
	e := NewRevenueEstimator()
	lead := leadWith("ultraformer mpt", TierVIP)

	first := e.Estimate(lead)
	second := e.Estimate(lead)
	assert.Equal(t, first, second)
}
