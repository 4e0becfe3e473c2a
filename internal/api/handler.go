// Package api is the thin HTTP presentation layer over the qualification
// core: lead review, capture mission trigger and dashboard stats.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
)

const (
	defaultListLimit = 100
	missionTimeout   = 10 * time.Minute
)

// Handler exposes the qualification core over HTTP
type Handler struct {
	store          core.LeadStore
	collector      *core.Collector
	composer       *core.OutreachComposer
	planner        *core.TriagePlanner
	estimator      *core.RevenueEstimator
	missionQueries []string
	logger         *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	store core.LeadStore,
	collector *core.Collector,
	composer *core.OutreachComposer,
	planner *core.TriagePlanner,
	estimator *core.RevenueEstimator,
	missionQueries []string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		store:          store,
		collector:      collector,
		composer:       composer,
		planner:        planner,
		estimator:      estimator,
		missionQueries: missionQueries,
		logger:         logger,
	}
}

// Router builds the chi router with all API routes
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/", h.root)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leads", h.listLeads)
		r.Get("/leads/{leadID}", h.getLead)
		r.Put("/leads/{leadID}", h.updateLeadStatus)
		r.Get("/leads/{leadID}/outreach", h.generateOutreach)
		r.Post("/mission/run", h.runMission)
		r.Get("/stats", h.getStats)
	})
	return r
}

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Agente de Captação por Intenção - Estética Médica API",
	})
}

// leadResponse is the wire representation of a lead
type leadResponse struct {
	ID               string        `json:"id"`
	SourceItemID     string        `json:"source_item_id"`
	ClinicID         int           `json:"clinic_id"`
	Scores           core.ScoreSet `json:"scores"`
	Labels           core.Labels   `json:"labels"`
	EvidenceSnippets []string      `json:"evidence_snippets,omitempty"`
	Status           string        `json:"status"`
	CreatedAt        string        `json:"created_at"`
}

func toLeadResponse(lead *core.Lead) leadResponse {
	return leadResponse{
		ID:               lead.ID,
		SourceItemID:     lead.SourceItemID,
		ClinicID:         lead.ClinicID,
		Scores:           lead.Scores,
		Labels:           lead.Labels,
		EvidenceSnippets: lead.EvidenceSnippets,
		Status:           string(lead.Status),
		CreatedAt:        lead.CreatedAt.Format(time.RFC3339),
	}
}

// listLeads degrades to an empty page on storage failure so the read
// surface stays available
func (h *Handler) listLeads(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultListLimit
	}

	leads, err := h.store.ListLeads(r.Context(), offset, limit)
	if err != nil {
		h.logger.Error("Failed to list leads", zap.Error(err))
		writeJSON(w, http.StatusOK, []leadResponse{})
		return
	}

	resp := make([]leadResponse, 0, len(leads))
	for i := range leads {
		resp = append(resp, toLeadResponse(&leads[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.store.GetLead(r.Context(), chi.URLParam(r, "leadID"))
	if err != nil {
		h.writeLeadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponse(lead))
}

func (h *Handler) updateLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := core.LeadStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be one of pending, approved, rejected")
		return
	}

	lead, err := h.store.UpdateLeadStatus(r.Context(), chi.URLParam(r, "leadID"), status)
	if err != nil {
		h.writeLeadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeadResponse(lead))
}

// generateOutreach composes and persists an outreach draft on demand
func (h *Handler) generateOutreach(w http.ResponseWriter, r *http.Request) {
	lead, err := h.store.GetLead(r.Context(), chi.URLParam(r, "leadID"))
	if err != nil {
		h.writeLeadError(w, err)
		return
	}

	plan := h.composer.Compose(lead)
	triage := h.planner.Plan(lead)
	revenue := h.estimator.Estimate(lead)

	draft := &core.OutreachDraft{
		ID:              uuid.New().String(),
		LeadID:          lead.ID,
		Strategy:        plan.Strategy,
		Messages:        plan.Messages,
		TriageQuestions: triage.TriageQuestions,
	}
	if err := h.store.SaveOutreachDraft(r.Context(), draft); err != nil {
		h.logger.Error("Failed to save outreach draft",
			zap.String("lead_id", lead.ID),
			zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"draft_id": draft.ID,
		"outreach": plan,
		"triage":   triage,
		"revenue":  revenue,
	})
}

// runMission triggers the capture mission in the background and returns
// immediately
func (h *Handler) runMission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Queries []string `json:"queries"`
	}
	// Body is optional; the configured mission queries are the default.
	_ = json.NewDecoder(r.Body).Decode(&req)

	queries := req.Queries
	if len(queries) == 0 {
		queries = h.missionQueries
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), missionTimeout)
		defer cancel()
		results := h.collector.FetchAndProcess(ctx, queries)
		h.logger.Info("Capture mission finished", zap.Int("leads", len(results)))
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "Missão de captura iniciada em segundo plano.",
	})
}

// getStats degrades to zeroed counters on storage failure
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err))
		writeJSON(w, http.StatusOK, core.StatsSummary{
			RegionCoverage: "N/A",
			LastUpdate:     time.Now(),
		})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) writeLeadError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrLeadNotFound) {
		writeError(w, http.StatusNotFound, "Lead not found")
		return
	}
	h.logger.Error("Lead lookup failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
