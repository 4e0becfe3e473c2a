// Package oracle holds the instruction contract shared by every oracle
// provider adapter: the fixed prompts sent to the reasoning service and the
// JSON schema its responses are validated against at the boundary.
package oracle

import (
	"encoding/json"
	"fmt"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
)

// SystemPrompt is the fixed system instruction for text classification
const SystemPrompt = "Você é um especialista em qualificação de leads para medicina estética."

const classificationPromptFormat = `VOCÊ É UM ANALISTA DE INTELIGÊNCIA SOCIAL E COMPORTAMENTAL DA 'CLÍNICA MÉDICA MAIS' EM SÃO PAULO.
A Clínica Mais é uma clínica Tier 1 localizada no Itaim Bibi/Jardins, focada em Dermatologia, Estética Avançada e Longevidade.

Sua tarefa é analisar o texto/comentário abaixo buscando leads para os seguintes serviços:
- TECNOLOGIAS: Ultraformer MPT, Morpheus, Lavieen, Liftera.
- INJETÁVEIS: Botox, Preenchimento (Ácido Hialurônico), Bioestimuladores (Sculptra, Radiesse).
- PROTOCOLOS: Rejuvenescimento facial, contorno corporal, tratamento de manchas/melasma.

CONDIÇÃO OBRIGATÓRIA: Identificar se o lead pertence à GRANDE SÃO PAULO.
Bairros de Altíssima Prioridade (Elite): Itaim Bibi, Jardins, Vila Nova Conceição, Moema, Higienópolis, Pacaembu, Morumbi, Alto de Pinheiros.
Cidades/Regiões de Alta Prioridade: Alphaville (Barueri/Santana de Parnaíba), Granja Viana, Santo André (Bairro Jardim), São Caetano do Sul.

Texto: "%s"

ALÉM DO CONTEÚDO DIRETO, BUSQUE INDICADORES INDIRETOS:
1. REFINAMENTO VOCABULAR: Uso de termos técnicos, elegância na escrita ou familiaridade com o universo premium.
2. CÍRCULO SOCIAL/ASPIRACIONAL: Menção a locais, marcas ou estilos de vida que indicam que a pessoa pertence ou transita no alto padrão.
3. MATURIDADE DE CONSUMO: A pessoa já consome procedimentos caros? Ela fala com propriedade sobre tecnologias (ex: Ultraformer, Morpheus, Bioestimuladores)?
4. "DOG WHISTLES" DO LUXO: Expressões ou preocupações que apenas o público de alta renda possui (ex: manutenção de "quiet luxury", discrição, protocolos exclusivos).

Retorne APENAS um JSON:
{
    "pain_point": {"label": "queixa", "confidence": 0.0-1.0},
    "intent_stage": {"label": "estágio", "confidence": 0.0-1.0},
    "maturity": {"label": "experiência_no_luxo", "score": 0-100},
    "is_sp_region": true/false (Grande São Paulo),
    "is_elite_neighborhood": true/false (Se pertence aos bairros de elite citados ou Alphaville),
    "detected_location": "nome da cidade ou bairro identificado",
    "scores": {
        "fit": 0-100 (alinhamento com Clínica Mais e luxo),
        "intent": 0-100,
        "urgency": 0-100,
        "risk": 0-100,
        "social_status_signal": 0-100
    },
    "subliminal_signals": ["lista de indícios indiretos de alto padrão"],
    "evidence": ["trechos que justificam"],
    "risk_flags": []
}`

// VisionPrompt is the fixed forensic instruction for profile image audits
const VisionPrompt = `VOCÊ É UM INVESTIGADOR DE ELITE ESPECIALIZADO EM PATRIMÔNIO E ESTILO DE VIDA DE ALTO LUXO (UHNW - Ultra High Net Worth).
Sua tarefa é realizar uma perícia detalhada na imagem para identificar sinais inequívocos de riqueza e alto poder aquisitivo.

PERÍCIA DE ELEMENTOS (SEJA EXTREMAMENTE MINUCIOSO):

1. OBJETOS DE ALTO VALOR (Possessions):
   - RELÓGIOS: Identifique se há presença de marcas como Rolex, Patek Philippe, Audemars Piguet, Cartier, Richard Mille.
   - JOIAS: Presença de diamantes, pedras preciosas, joalheria de marca (Tiffany, Bulgari, Van Cleef & Arpels).
   - BOLSAS/ACESSÓRIOS: Identifique modelos icônicos de luxo (Hermès Birkin/Kelly, Chanel Classic, Louis Vuitton, Gucci).

2. LOGÍSTICA E MEIOS DE TRANSPORTE (Luxury Logistics):
   - AVIAÇÃO: Cabines de Primeira Classe ou Executiva, jatos particulares, salas VIP exclusivas.
   - NÁUTICA: Iates, lanchas de alto padrão, marinas exclusivas.
   - AUTOMÓVEIS: Interiores de carros de luxo (Porsche, Ferrari, Lamborghini, Rolls-Royce, Mercedes-Benz Classe S).

3. CENÁRIOS E ESTILO DE VIDA (Elite Scenarios):
   - AMBIENTES: Resorts 5 estrelas, hotéis de luxo (Aman, Four Seasons, Rosewood), restaurantes com estrela Michelin.
   - EVENTOS: Áreas VIP, camarotes, eventos de gala, destinos de viagem internacionais exclusivos (Courchevel, St. Tropez, Dubai).

4. APARÊNCIA "CUIDADA POR ESPECIALISTAS" (High-End Maintenance):
   - Estética impecável que sugere altos gastos mensais com procedimentos médicos, odontologia estética e hair care de luxo.

Retorne um JSON de perícia técnica:
{
    "visual_fit": 0-100 (Score agressivo: 100 apenas para luxo extremo),
    "asset_audit": {
        "high_value_objects": ["lista de objetos caros identificados"],
        "luxury_environment": "descrição do local (ex: classe executiva, iate, resort)",
        "brand_detection": ["marcas de grife identificadas no vestuário/acessórios"]
    },
    "socioeconomic_tier": "VIP, Platinum, Gold, ou Standard",
    "detected_luxury_indicators": ["lista de evidências de riqueza"],
    "justification": "Análise técnica do patrimônio visual estimado e por que esta pessoa é o alvo Tier 1 da clínica (tratamentos de alto ticket)."
}`

// ClassificationPrompt embeds the signal text into the fixed classification
// instruction
func ClassificationPrompt(text string) string {
	return fmt.Sprintf(classificationPromptFormat, text)
}

// classificationResponse is the wire shape of the oracle's classification
// verdict. IsSPRegion is a pointer because an absent region flag must
// default to true rather than penalize the lead.
type classificationResponse struct {
	PainPoint           core.LabelConfidence `json:"pain_point"`
	IntentStage         core.LabelConfidence `json:"intent_stage"`
	Maturity            core.MaturityLabel   `json:"maturity"`
	IsSPRegion          *bool                `json:"is_sp_region"`
	IsEliteNeighborhood bool                 `json:"is_elite_neighborhood"`
	DetectedLocation    string               `json:"detected_location"`
	Scores              struct {
		Fit                float64 `json:"fit"`
		Intent             float64 `json:"intent"`
		Urgency            float64 `json:"urgency"`
		Risk               float64 `json:"risk"`
		SocialStatusSignal float64 `json:"social_status_signal"`
	} `json:"scores"`
	SubliminalSignals []string `json:"subliminal_signals"`
	Evidence          []string `json:"evidence"`
	RiskFlags         []string `json:"risk_flags"`
}

// ParseClassification validates a raw oracle response against the expected
// classification schema and converts it into the domain result
func ParseClassification(responseText string) (*core.Classification, error) {
	var resp classificationResponse
	if err := json.Unmarshal([]byte(ExtractJSON(responseText)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse oracle response as JSON: %w", err)
	}

	isSP := true
	if resp.IsSPRegion != nil {
		isSP = *resp.IsSPRegion
	}

	return &core.Classification{
		PainPoint:           resp.PainPoint,
		IntentStage:         resp.IntentStage,
		Maturity:            resp.Maturity,
		IsSPRegion:          isSP,
		IsEliteNeighborhood: resp.IsEliteNeighborhood,
		DetectedLocation:    resp.DetectedLocation,
		Scores: core.ScoreSet{
			Fit:                resp.Scores.Fit,
			Intent:             resp.Scores.Intent,
			Urgency:            resp.Scores.Urgency,
			Maturity:           resp.Maturity.Score,
			Risk:               resp.Scores.Risk,
			SocialStatusSignal: resp.Scores.SocialStatusSignal,
		},
		SubliminalSignals: resp.SubliminalSignals,
		Evidence:          resp.Evidence,
		RiskFlags:         resp.RiskFlags,
	}, nil
}

// ParseVisualAnalysis validates a raw oracle response against the expected
// visual audit schema
func ParseVisualAnalysis(responseText string) (*core.VisualAnalysis, error) {
	var resp core.VisualAnalysis
	if err := json.Unmarshal([]byte(ExtractJSON(responseText)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse vision response as JSON: %w", err)
	}
	return &resp, nil
}

// ExtractJSON strips any prose the model wrapped around the JSON document
// by slicing from the first '{' to the last '}'
func ExtractJSON(responseText string) string {
	jsonStart := -1
	for i := 0; i < len(responseText); i++ {
		if responseText[i] == '{' {
			jsonStart = i
			break
		}
	}

	jsonEnd := -1
	for i := len(responseText) - 1; i >= 0; i-- {
		if responseText[i] == '}' {
			jsonEnd = i + 1
			break
		}
	}

	if jsonStart >= 0 && jsonEnd > jsonStart {
		return responseText[jsonStart:jsonEnd]
	}
	return responseText
}
