// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

// Package handler exposes the arbiter and redeemer workflows over HTTP.
// The surface serves exactly one active session per process, matching
// the single-session concurrency model of the subsystem.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nocturnelabs/arbiter-service/pkg/cascade"
	"github.com/nocturnelabs/arbiter-service/pkg/redemption"
	"github.com/nocturnelabs/arbiter-service/pkg/roll"
	"github.com/nocturnelabs/arbiter-service/pkg/state"
)

// Handler wires the HTTP surface to the cascade and redemption controllers.
type Handler struct {
	cascade   *cascade.Controller
	redeemer  *redemption.Controller
	weekStore *state.WeekStore
}

// Deps carries the handler dependencies.
type Deps struct {
	Cascade   *cascade.Controller
	Redeemer  *redemption.Controller
	WeekStore *state.WeekStore
}

// NewHandler creates the HTTP handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		cascade:   deps.Cascade,
		redeemer:  deps.Redeemer,
		weekStore: deps.WeekStore,
	}
}

// Register mounts all routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/arbiter", func(rr chi.Router) {
		rr.Get("/state", h.State)
		rr.Post("/roll", h.Roll)
		rr.Post("/double-down", h.DoubleDown)
		rr.Post("/quantity", h.Quantity)
		rr.Post("/reset", h.Reset)
		rr.Post("/log/clear", h.ClearLog)
	})
	r.Route("/redeemer", func(rr chi.Router) {
		rr.Post("/challenge", h.SummonChallenge)
		rr.Post("/answer", h.SubmitAnswer)
		rr.Get("/archive", h.Archive)
		rr.Post("/archive/clear", h.ClearArchive)
	})
	r.Get("/healthz", h.Health)
}

// sessionView is the API rendering of the arbiter session.
type sessionView struct {
	Week    state.WeekState  `json:"week"`
	Outcome string           `json:"outcome,omitempty"`
	Session cascade.Snapshot `json:"session"`
}

func (h *Handler) sessionView(ctx context.Context, snap cascade.Snapshot) (sessionView, error) {
	week, err := h.weekStore.Load(ctx)
	if err != nil {
		return sessionView{}, err
	}
	view := sessionView{Week: week, Session: snap}
	if snap.LastOutcome != roll.OutcomeUnspecified {
		view.Outcome = snap.LastOutcome.String()
	}
	return view, nil
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, cascade.ErrInvalidTransition),
		errors.Is(err, redemption.ErrNoPendingChallenge):
		status = http.StatusConflict
	case errors.Is(err, cascade.ErrQuantityOutOfRange):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
