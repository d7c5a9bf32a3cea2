// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	sse "github.com/tmaxmax/go-sse"

	"github.com/MKhiriev/go-lend-keeper/internal/app"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/utils"
	"github.com/MKhiriev/go-lend-keeper/models"
)

var (
	snapshotEvent = sse.Type(models.EventSnapshot)
	errorEvent    = sse.Type(models.EventError)
)

// streamRecords pushes the caller's whole collection as a "snapshot" event
// on connect and again after every committed change. A burst of changes
// results in one snapshot of the latest state.
func (h *Handler) streamRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "Handler.streamRecords").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	session, err := sse.Upgrade(w, r)
	if err != nil {
		log.Err(err).Str("func", "Handler.streamRecords").Msg("response writer cannot stream")
		http.Error(w, app.MsgStreamingUnsupported, http.StatusInternalServerError)
		return
	}

	// subscribe before the first read so no change falls in between
	changes, cancel := h.services.SnapshotHub.Subscribe(userID)
	defer cancel()

	// the session adds Content-Type when it writes the status line
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	if err = session.Flush(); err != nil {
		return
	}

	var heartbeat <-chan time.Time
	if h.heartbeat > 0 {
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		heartbeat = ticker.C
	}
	ping := &sse.Message{}
	ping.AppendComment("ping")

	push := func() bool {
		records, err := h.services.RecordService.List(ctx, userID)
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			log.Err(err).Str("func", "Handler.streamRecords").Msg("could not read records")
			_ = sendEvent(session, errorEvent, models.StreamError{Message: app.MsgInternalServerError})
			return false
		}
		if records == nil {
			records = []models.Record{}
		}

		if err = sendEvent(session, snapshotEvent, models.Snapshot{Records: records, SentAt: time.Now().UTC()}); err != nil {
			log.Debug().Err(err).Str("func", "Handler.streamRecords").Msg("client went away")
			return false
		}
		return true
	}

	log.Info().Str("func", "Handler.streamRecords").Str("user_id", userID).Msg("stream opened")
	defer log.Info().Str("func", "Handler.streamRecords").Str("user_id", userID).Msg("stream closed")

	if !push() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			if !push() {
				return
			}
		case <-heartbeat:
			if session.Send(ping) != nil || session.Flush() != nil {
				return
			}
		}
	}
}

// newEvent frames payload as one event. json.Marshal never emits a raw
// newline, so the data fits on a single line.
func newEvent(typ sse.EventType, payload any) (*sse.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", typ.String(), err)
	}

	msg := &sse.Message{Type: typ}
	msg.AppendData(string(data))
	return msg, nil
}

func sendEvent(session *sse.Session, typ sse.EventType, payload any) error {
	msg, err := newEvent(typ, payload)
	if err != nil {
		return err
	}
	if err = session.Send(msg); err != nil {
		return err
	}
	return session.Flush()
}
