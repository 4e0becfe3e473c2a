package core

import (
	"fmt"
	"strings"
)

// servicePrice is one row of the Tier 1 price table. Order matters: the
// first service whose name appears in the pain point wins.
type servicePrice struct {
	Service string
	Price   float64
}

// Default ticket when no service matches the pain point
const (
	defaultServiceLabel = "Consulta / Geral"
	defaultBaseValue    = 2500.0
	revenueCurrency     = "R$"
)

// RevenueEstimator computes the potential ticket of a lead from its pain
// point and socioeconomic tier. Pure function of (pain_point, tier).
type RevenueEstimator struct {
	prices []servicePrice
}

// NewRevenueEstimator creates an estimator loaded with the clinic's average
// ticket per technology
func NewRevenueEstimator() *RevenueEstimator {
	return &RevenueEstimator{
		prices: []servicePrice{
			{"Ultraformer MPT", 6000.0},
			{"Morpheus 8", 8000.0},
			{"Lavieen", 2500.0},
			{"Botox", 1800.0},
			{"Preenchimento", 3500.0},
			{"Bioestimuladores", 5000.0},
			{"Sculptra", 5500.0},
			{"Radiesse", 4500.0},
			{"Protocolo Full Face", 25000.0},
		},
	}
}

// Estimate returns the estimated ticket for a lead. VIP leads tend to close
// combined protocols, hence the tier multipliers.
func (e *RevenueEstimator) Estimate(lead *Lead) RevenueEstimate {
	painPoint := strings.ToLower(lead.Labels.PainPoint)

	baseValue := defaultBaseValue
	service := defaultServiceLabel
	for _, p := range e.prices {
		if strings.Contains(painPoint, strings.ToLower(p.Service)) {
			baseValue = p.Price
			service = p.Service
			break
		}
	}

	multiplier := 1.0
	switch lead.Labels.Tier {
	case TierVIP:
		multiplier = 2.5
		service = fmt.Sprintf("Protocolo VIP (%s+)", service)
	case TierPlatinum:
		multiplier = 1.8
		service = fmt.Sprintf("Protocolo Premium (%s+)", service)
	}

	return RevenueEstimate{
		Service:        service,
		EstimatedValue: baseValue * multiplier,
		Currency:       revenueCurrency,
	}
}
