// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/utils"
	"github.com/MKhiriev/go-lend-keeper/models"
)

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	records, err := h.services.RecordService.List(ctx, userID)
	if err != nil {
		writeError(w, r, "Handler.listRecords", err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	var draft models.RecordDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, r, "Handler.createRecord", err)
		return
	}

	rec, err := h.services.RecordService.Create(ctx, userID, draft)
	if err != nil {
		writeError(w, r, "Handler.createRecord", err)
		return
	}

	logger.FromRequest(r).Debug().Str("func", "Handler.createRecord").Str("record_id", rec.ID).Msg("record created")
	utils.WriteJSON(w, rec, http.StatusCreated)
}

// updateRecord merges the fields present in the body into the record named
// by the URL.
func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	var patch models.RecordPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, "Handler.updateRecord", err)
		return
	}
	if patch.ID != "" && patch.ID != id {
		writeError(w, r, "Handler.updateRecord", ErrIDMismatch)
		return
	}
	patch.ID = id

	rec, err := h.services.RecordService.Update(ctx, userID, patch)
	if err != nil {
		writeError(w, r, "Handler.updateRecord", err)
		return
	}

	utils.WriteJSON(w, rec, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	if err := h.services.RecordService.Delete(ctx, userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "Handler.deleteRecord", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) commitBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	var req models.BatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "Handler.commitBatch", err)
		return
	}

	resp, err := h.services.RecordService.ApplyBatch(ctx, userID, req.Ops)
	if err != nil {
		writeError(w, r, "Handler.commitBatch", err)
		return
	}

	logger.FromRequest(r).Info().
		Str("func", "Handler.commitBatch").
		Int("ops", len(req.Ops)).
		Int("committed", resp.Committed).
		Msg("batch committed")
	utils.WriteJSON(w, resp, http.StatusOK)
}

