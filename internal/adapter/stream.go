// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	sse "github.com/tmaxmax/go-sse"

	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// maxEventSize bounds one event; a snapshot of a large collection is a
// single data line.
const maxEventSize = 16 << 20

var readConfig = &sse.ReadConfig{MaxEventSize: maxEventSize}

// Subscribe opens GET /api/records/stream and starts reading it.
func (h *httpServerAdapter) Subscribe(ctx context.Context) (Subscription, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	req := h.stream.R().
		SetContext(streamCtx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "text/event-stream")
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	resp, err := req.Get(pathStream)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe request: %w", err)
	}

	body := resp.RawBody()
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(body, 4096))
		body.Close()
		cancel()
		return nil, mapStatus(code, string(msg))
	}

	sub := &sseSubscription{
		body:      body,
		cancel:    cancel,
		ctx:       streamCtx,
		snapshots: make(chan models.Snapshot, 1),
		done:      make(chan struct{}),
		logger:    h.logger,
	}
	go sub.run()

	return sub, nil
}

type sseSubscription struct {
	body   io.ReadCloser
	ctx    context.Context
	cancel context.CancelFunc

	snapshots chan models.Snapshot
	done      chan struct{}

	mu  sync.Mutex
	err error

	closeOnce sync.Once
	logger    *logger.Logger
}

func (s *sseSubscription) Snapshots() <-chan models.Snapshot {
	return s.snapshots
}

func (s *sseSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *sseSubscription) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.body.Close()
	})
	<-s.done
}

func (s *sseSubscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *sseSubscription) run() {
	defer close(s.done)
	defer close(s.snapshots)

	err := s.consume(s.body)

	switch {
	case s.ctx.Err() != nil:
		// closed by the caller
		s.setErr(nil)
	case err == nil:
		s.setErr(ErrStreamClosed)
	default:
		s.setErr(err)
	}
}

// consume reads events until the body ends, the context is done or the
// server reports an error. A clean end of stream returns nil.
func (s *sseSubscription) consume(r io.Reader) error {
	for ev, err := range sse.Read(r, readConfig) {
		if err != nil {
			return fmt.Errorf("read stream: %w", err)
		}
		if err = s.handle(ev); err != nil {
			return err
		}
	}
	return nil
}

func (s *sseSubscription) handle(ev sse.Event) error {
	switch ev.Type {
	case models.EventSnapshot:
		var snap models.Snapshot
		if err := json.Unmarshal([]byte(ev.Data), &snap); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		select {
		case s.snapshots <- snap:
		case <-s.ctx.Done():
			return s.ctx.Err()
		}
	case models.EventError:
		var streamErr models.StreamError
		if err := json.Unmarshal([]byte(ev.Data), &streamErr); err != nil || streamErr.Message == "" {
			streamErr.Message = ev.Data
		}
		return fmt.Errorf("%w: %s", ErrStreamFailed, streamErr.Message)
	default:
		s.logger.Debug().Str("func", "sseSubscription.handle").Str("event", ev.Type).Msg("ignoring unknown event")
	}
	return nil
}
