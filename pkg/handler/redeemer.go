// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"net/http"

	"github.com/nocturnelabs/arbiter-service/pkg/common"
	"github.com/nocturnelabs/arbiter-service/pkg/redemption"
)

type challengeResponse struct {
	Question string `json:"question"`
}

// SummonChallenge asks the oracle for a fresh challenge question.
func (h *Handler) SummonChallenge(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Redeemer.SummonChallenge")
	defer scope.Finish()

	question, err := h.redeemer.Summon(scope.Ctx)
	if err != nil {
		scope.Log.WithError(err).Error("challenge generation failed")
		scope.TraceError(err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	scope.TraceEvent("challenge summoned")
	scope.Log.Info("challenge summoned")
	writeJSON(w, http.StatusOK, challengeResponse{Question: question})
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type answerResponse struct {
	Result  string                     `json:"result"`
	Week    interface{}                `json:"week,omitempty"`
	Archive []redemption.FailureRecord `json:"archive"`
}

// SubmitAnswer verifies the user's answer against the pending challenge.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Redeemer.SubmitAnswer")
	defer scope.Finish()

	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	status, err := h.redeemer.Submit(scope.Ctx, req.Answer)
	if err != nil {
		scope.Log.WithError(err).Error("answer verification failed")
		scope.TraceError(err)
		writeError(w, err)
		return
	}
	scope.AddBaggage("result", status.String())
	scope.Log.WithField("result", status.String()).Info("answer resolved")

	resp := answerResponse{Result: status.String(), Archive: h.redeemer.Archive()}
	if week, werr := h.weekStore.Load(scope.Ctx); werr == nil {
		resp.Week = week
	}
	writeJSON(w, http.StatusOK, resp)
}

// Archive returns the failed redemption attempts of this session.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Redeemer.Archive")
	defer scope.Finish()

	writeJSON(w, http.StatusOK, map[string][]redemption.FailureRecord{
		"archive": h.redeemer.Archive(),
	})
}

// ClearArchive empties the in-session failure archive. The persistent
// question blocklist is left untouched.
func (h *Handler) ClearArchive(w http.ResponseWriter, r *http.Request) {
	scope := common.GetScopeFromContext(r.Context(), "Redeemer.ClearArchive")
	defer scope.Finish()

	h.redeemer.ClearArchive()
	writeJSON(w, http.StatusOK, map[string][]redemption.FailureRecord{
		"archive": h.redeemer.Archive(),
	})
}
