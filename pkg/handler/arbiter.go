// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"net/http"

	"github.com/nocturnelabs/arbiter-service/pkg/cascade"
	"github.com/nocturnelabs/arbiter-service/pkg/common"
)

// State returns the current week counters and session snapshot.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Arbiter.State")
	defer scope.Finish()

	view, err := h.sessionView(scope.Ctx, h.cascade.Snapshot())
	if err != nil {
		scope.Log.WithError(err).Error("load week state failed")
		scope.TraceError(err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Roll performs the daily probability roll.
func (h *Handler) Roll(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Arbiter.Roll")
	defer scope.Finish()

	snap, err := h.cascade.Roll(scope.Ctx)
	if err != nil {
		scope.Log.WithError(err).Error("roll failed")
		scope.TraceError(err)
		writeError(w, err)
		return
	}
	scope.Log.WithField("outcome", snap.LastOutcome.String()).Info("roll resolved")

	view, err := h.sessionView(scope.Ctx, snap)
	if err != nil {
		scope.Log.WithError(err).Error("load week state failed")
		scope.TraceError(err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type doubleDownRequest struct {
	Accept bool `json:"accept"`
}

// DoubleDown resolves the double-down offer after a win.
func (h *Handler) DoubleDown(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Arbiter.DoubleDown")
	defer scope.Finish()

	var req doubleDownRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	snap, err := h.cascade.DoubleDown(scope.Ctx, req.Accept)
	if err != nil {
		scope.Log.WithError(err).Error("double-down failed")
		scope.TraceError(err)
		writeError(w, err)
		return
	}
	scope.Log.WithField("accepted", req.Accept).Info("double-down resolved")

	view, err := h.sessionView(scope.Ctx, snap)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type quantityRequest struct {
	Confirm  bool `json:"confirm"`
	Quantity int  `json:"quantity"`
}

// Quantity confirms or declines the multi-reward quantity offer.
func (h *Handler) Quantity(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Arbiter.Quantity")
	defer scope.Finish()

	var req quantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var (
		snap cascade.Snapshot
		err  error
	)
	if req.Confirm {
		snap, err = h.cascade.ConfirmQuantity(scope.Ctx, req.Quantity)
	} else {
		snap, err = h.cascade.DeclineQuantity()
	}
	if err != nil {
		scope.Log.WithError(err).Error("quantity resolution failed")
		scope.TraceError(err)
		writeError(w, err)
		return
	}

	view, verr := h.sessionView(scope.Ctx, snap)
	if verr != nil {
		writeError(w, verr)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Reset returns the session to idle.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Arbiter.Reset")
	defer scope.Finish()

	view, err := h.sessionView(scope.Ctx, h.cascade.Reset())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ClearLog empties the session action log.
func (h *Handler) ClearLog(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Arbiter.ClearLog")
	defer scope.Finish()

	h.cascade.ClearLog()
	view, err := h.sessionView(scope.Ctx, h.cascade.Snapshot())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
