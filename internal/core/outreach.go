package core

import (
	"fmt"
	"strings"
)

// OutreachComposer generates outreach message drafts for a lead. Pure,
// stateless string templates gated by tier; no oracle call.
type OutreachComposer struct {
	complianceRules []string
}

// NewOutreachComposer creates a composer with the clinic's compliance rules
func NewOutreachComposer() *OutreachComposer {
	return &OutreachComposer{
		complianceRules: []string{
			"Proibido promessas de resultado",
			"Proibido diagnóstico",
			"Obrigatório convite para avaliação",
			"Tom educativo",
		},
	}
}

// Compose builds the outreach strategy, message variants and triage
// questions for a lead
func (c *OutreachComposer) Compose(lead *Lead) OutreachPlan {
	return OutreachPlan{
		Strategy: "premium_educational",
		Messages: []string{
			"Olá! Vimos seu interesse em tecnologias de ponta para rejuvenescimento. " +
				"Na Clínica Médica Mais (Itaim Bibi), somos especialistas em protocolos personalizados " +
				"com Ultraformer MPT e Bioestimuladores para resultados naturais. Gostaria de conhecer nosso espaço?",
		},
		TriageQuestions: []string{
			"Você já realizou algum procedimento com bioestimuladores ou tecnologias como Ultraformer anteriormente?",
			"Qual sua principal expectativa em relação à naturalidade do resultado?",
		},
	}
}

// TriagePlanner prepares the SDR triage flow and booking summaries for the
// human consultant. Deterministic templates branched on tier and maturity.
type TriagePlanner struct{}

// NewTriagePlanner creates a new triage planner
func NewTriagePlanner() *TriagePlanner {
	return &TriagePlanner{}
}

// Plan generates a conversation flow tailored to the lead's pain point,
// maturity and tier
func (p *TriagePlanner) Plan(lead *Lead) TriageFlow {
	painPoint := lead.Labels.PainPoint
	if painPoint == "" {
		painPoint = "estética"
	}

	var strategy, opening, intent string
	if lead.Labels.Tier == TierVIP || lead.Labels.Tier == TierPlatinum {
		strategy = "Consultiva de Alto Padrão (Exclusividade)"
		opening = fmt.Sprintf(
			"Como você já conhece os benefícios de tecnologias como %s, nossa consultoria foca em protocolos exclusivos e discrição absoluta.",
			painPoint)
		intent = "high"
	} else {
		strategy = "Educativa Técnica (Autoridade)"
		opening = fmt.Sprintf(
			"Entendo perfeitamente sua busca por %s. Na Clínica Mais, priorizamos a ciência por trás de cada resultado natural.",
			painPoint)
		intent = "medium"
	}

	return TriageFlow{
		Strategy:         strategy,
		OpeningStatement: opening,
		TriageQuestions: []string{
			fmt.Sprintf("Em relação ao tratamento de %s, qual resultado você mais valoriza: durabilidade ou naturalidade imediata?", painPoint),
			"Você tem preferência por alguma das nossas tecnologias específicas, como Ultraformer MPT ou Morpheus 8?",
			"Para sua comodidade, você prefere horários no período da manhã ou tarde no Itaim Bibi?",
		},
		AppointmentIntent: intent,
	}
}

// BookingSummary prepares the executive summary the human consultant uses
// to close the appointment
func (p *TriagePlanner) BookingSummary(lead *Lead) string {
	focus := "Qualidade técnica"
	if len(lead.Scores.SubliminalSignals) > 0 {
		focus = lead.Scores.SubliminalSignals[0]
	}

	var b strings.Builder
	b.WriteString("RESUMO SDR - CLÍNICA MAIS\n")
	b.WriteString("-------------------------\n")
	fmt.Fprintf(&b, "Lead: %s\n", lead.ID)
	fmt.Fprintf(&b, "Perfil: %s (%.2f pts)\n", lead.Labels.Tier, lead.Scores.LeadScore)
	fmt.Fprintf(&b, "Interesse: %s\n", lead.Labels.PainPoint)
	fmt.Fprintf(&b, "Maturidade: %s\n", lead.Labels.Maturity)
	fmt.Fprintf(&b, "Local: %s\n", lead.Scores.DetectedLocation)
	fmt.Fprintf(&b, "FOCO: %s\n", focus)
	return b.String()
}
