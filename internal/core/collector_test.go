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

// fakeStore records saved qualifications and can fail on demand
type fakeStore struct {
	saved      []*Lead
	items      []*SourceItem
	audits     []*AuditLog
	drafts     []*OutreachDraft
	failAfter  int
	saveCalled int
}

func (f *fakeStore) SaveQualification(_ context.Context, item *SourceItem, lead *Lead, audit *AuditLog) error {
	f.saveCalled++
	if f.failAfter > 0 && f.saveCalled > f.failAfter {
		return errors.New("disk full")
	}
	f.items = append(f.items, item)
	f.saved = append(f.saved, lead)
	f.audits = append(f.audits, audit)
	return nil
}

func (f *fakeStore) GetLead(_ context.Context, id string) (*Lead, error) {
	for _, l := range f.saved {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, ErrLeadNotFound
}

func (f *fakeStore) ListLeads(_ context.Context, _, _ int) ([]Lead, error) {
	out := make([]Lead, 0, len(f.saved))
	for _, l := range f.saved {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeStore) UpdateLeadStatus(_ context.Context, id string, status LeadStatus) (*Lead, error) {
	lead, err := f.GetLead(context.Background(), id)
	if err != nil {
		return nil, err
	}
	lead.Status = status
	return lead, nil
}

func (f *fakeStore) TopLeads(_ context.Context, limit int) ([]Lead, error) {
	return f.ListLeads(context.Background(), 0, limit)
}

func (f *fakeStore) SaveOutreachDraft(_ context.Context, draft *OutreachDraft) error {
	f.drafts = append(f.drafts, draft)
	return nil
}

func (f *fakeStore) Stats(_ context.Context) (*StatsSummary, error) {
	return &StatsSummary{TotalLeads: len(f.saved)}, nil
}

func (f *fakeStore) Close() error { return nil }

// fakeSearch returns scripted signals per query
type fakeSearch struct {
	signals []RawSignal
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string) ([]RawSignal, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.signals, nil
}

// fakeNotifier records VIP alerts
type fakeNotifier struct {
	alerts []string
	err    error
}

func (f *fakeNotifier) NotifyVIPLead(_ context.Context, lead *Lead, _ string) error {
	f.alerts = append(f.alerts, lead.ID)
	return f.err
}

func highIntentClassification() *Classification {
	return &Classification{
		PainPoint:           LabelConfidence{Label: "flacidez", Confidence: 0.9},
		IntentStage:         LabelConfidence{Label: "decisao", Confidence: 0.9},
		Maturity:            MaturityLabel{Label: "pronta_para_agendar", Score: 85},
		IsSPRegion:          true,
		IsEliteNeighborhood: true,
		DetectedLocation:    "Itaim Bibi",
		SubliminalSignals:   []string{"cita procedimento premium pelo nome"},
		Scores: ScoreSet{
			Fit:                85,
			Intent:             90,
			Urgency:            75,
			Maturity:           85,
			SocialStatusSignal: 70,
			Risk:               5,
		},
		Evidence: []string{"quero muito fazer na Clínica Mais"},
	}
}

func newTestCollector(llm *stubLLM, store LeadStore, search SignalSource, notifier Notifier) *Collector {
	scorer := NewLeadScorer()
	intent := NewIntentEngine(llm, scorer, time.Second, zap.NewNop())
	vision := NewVisionEngine(llm, time.Second, zap.NewNop())
	return NewCollector(intent, vision, scorer, store, search, notifier, 1, zap.NewNop())
}

func TestNormalizeTextCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "quero fazer botox", NormalizeText("  quero \n\t fazer   botox  "))
	assert.Equal(t, "", NormalizeText("   \n\t "))
}

func TestFetchSignalsUsesFixturesWithoutProvider(t *testing.T) {
	c := newTestCollector(&stubLLM{}, &fakeStore{}, nil, nil)

	signals := c.FetchSignals(context.Background(), []string{"Ultraformer MPT"})
	require.Len(t, signals, 2)
	assert.Equal(t, "@carol_luxe_sp", signals[0].AuthorHandle)
	assert.Equal(t, "Beatriz Mendonça", signals[1].AuthorHandle)
}

func TestFetchSignalsUsesFixturesWhenSearchEmpty(t *testing.T) {
	search := &fakeSearch{err: errors.New("api down")}
	c := newTestCollector(&stubLLM{}, &fakeStore{}, search, nil)

	signals := c.FetchSignals(context.Background(), []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, search.queries)
	require.Len(t, signals, 2, "fixture fallback expected")
}

func TestFetchSignalsAggregatesQueries(t *testing.T) {
	search := &fakeSearch{signals: []RawSignal{{Source: "google_web", Text: "sinal"}}}
	c := newTestCollector(&stubLLM{}, &fakeStore{}, search, nil)

	signals := c.FetchSignals(context.Background(), []string{"a", "b", "c"})
	assert.Len(t, signals, 3)
}

func TestProcessSignalsEndToEnd(t *testing.T) {
	llm := &stubLLM{
		classification: highIntentClassification(),
		visual: &VisualAnalysis{
			VisualFit:                90,
			SocioeconomicTier:        TierVIP,
			DetectedLuxuryIndicators: []string{"bolsa de grife"},
			Justification:            "indicadores de alto padrão",
		},
	}
	store := &fakeStore{}
	c := newTestCollector(llm, store, nil, nil)

	refs := c.ProcessSignals(context.Background(), []RawSignal{{
		Source:      "instagram",
		Text:        "Quero fazer Ultraformer no Itaim",
		AuthorImage: "https://example.com/p.jpg",
	}})

	require.Len(t, refs, 1)
	require.Len(t, store.saved, 1)
	lead := store.saved[0]

	// raw = 8.5 + 9 + 3.75 + 8.5 + 31.5 + 14 - 3 = 72.25; ×1.0 ×1.2 = 86.7
	assert.InDelta(t, 86.7, lead.Scores.LeadScore, 1e-6)
	assert.Equal(t, refs[0].Score, lead.Scores.LeadScore)
	assert.Equal(t, TierVIP, lead.Labels.Tier)
	assert.Equal(t, "flacidez", lead.Labels.PainPoint)
	assert.Equal(t, StatusPending, lead.Status)
	assert.Equal(t, 90.0, lead.Scores.VisualFit)

	// Lead, SourceItem and AuditLog committed together.
	require.Len(t, store.items, 1)
	require.Len(t, store.audits, 1)
	assert.Equal(t, lead.SourceItemID, store.items[0].ID)
	assert.Equal(t, "lead_qualification", store.audits[0].Event)
	assert.Equal(t, "AI_Agent_Tier1", store.audits[0].Actor)
	assert.Equal(t, lead.ID, store.audits[0].Payload["lead_id"])
}

func TestProcessSignalsOutsideSPScoresHalf(t *testing.T) {
	insideLLM := &stubLLM{classification: highIntentClassification()}
	insideStore := &fakeStore{}
	newTestCollector(insideLLM, insideStore, nil, nil).
		ProcessSignals(context.Background(), []RawSignal{{Text: "Itaim Bibi"}})

	outside := highIntentClassification()
	outside.IsSPRegion = false
	outside.IsEliteNeighborhood = false
	outside.DetectedLocation = "Curitiba"
	outsideStore := &fakeStore{}
	newTestCollector(&stubLLM{classification: outside}, outsideStore, nil, nil).
		ProcessSignals(context.Background(), []RawSignal{{Text: "Curitiba"}})

	require.Len(t, insideStore.saved, 1)
	require.Len(t, outsideStore.saved, 1)
	inScore := insideStore.saved[0].Scores.LeadScore
	outScore := outsideStore.saved[0].Scores.LeadScore
	assert.InDelta(t, inScore/2.4, outScore, 1e-6, "regional halving plus lost elite bonus")
}

func TestProcessSignalsNeutralVisualWithoutImage(t *testing.T) {
	llm := &stubLLM{classification: highIntentClassification()}
	store := &fakeStore{}
	c := newTestCollector(llm, store, nil, nil)

	c.ProcessSignals(context.Background(), []RawSignal{{Text: "sem foto"}})

	require.Len(t, store.saved, 1)
	assert.Equal(t, 50.0, store.saved[0].Scores.VisualFit)
	assert.Equal(t, TierStandard, store.saved[0].Labels.Tier)
	assert.Empty(t, llm.lastImageURL, "vision oracle must not be called without an image")
}

func TestProcessSignalsContinuesAfterStoreFailure(t *testing.T) {
	llm := &stubLLM{classification: highIntentClassification()}
	store := &fakeStore{failAfter: 1}
	c := newTestCollector(llm, store, nil, nil)

	refs := c.ProcessSignals(context.Background(), []RawSignal{
		{Text: "primeiro"}, {Text: "segundo"}, {Text: "terceiro"},
	})

	// Only the first save succeeds; the other signals are skipped, not fatal.
	assert.Len(t, refs, 1)
	assert.Equal(t, 3, store.saveCalled)
}

func TestProcessSignalsNotifiesVIPLeads(t *testing.T) {
	llm := &stubLLM{classification: highIntentClassification()}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	c := newTestCollector(llm, store, nil, notifier)

	c.ProcessSignals(context.Background(), []RawSignal{{Text: "lead forte"}})

	require.Len(t, store.saved, 1)
	require.Greater(t, store.saved[0].Scores.LeadScore, VIPScoreThreshold)
	assert.Equal(t, []string{store.saved[0].ID}, notifier.alerts)
}

func TestProcessSignalsNotifierFailureIsNotFatal(t *testing.T) {
	llm := &stubLLM{classification: highIntentClassification()}
	store := &fakeStore{}
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	c := newTestCollector(llm, store, nil, notifier)

	refs := c.ProcessSignals(context.Background(), []RawSignal{{Text: "lead forte"}})
	assert.Len(t, refs, 1)
}

func TestFixtureSignalsAreDeterministic(t *testing.T) {
	a := FixtureSignals()
	b := FixtureSignals()
	require.Len(t, a, 2)
	assert.Equal(t, a[0].Text, b[0].Text)
	assert.Equal(t, a[1].URL, b[1].URL)
	assert.Contains(t, a[0].Text, "Ultraformer MPT")
	assert.Contains(t, a[1].Text, "Alphaville")
}
