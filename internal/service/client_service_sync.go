// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

const syncErrorsBuffer = 8

type clientSyncService struct {
	adapter adapter.ServerAdapter
	store   *ledger.RecordStore
	errs    chan error

	// mu serializes Start and Stop; cancel, sub and wg belong to the
	// running subscription.
	mu     sync.Mutex
	cancel context.CancelFunc
	sub    adapter.Subscription
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewClientSyncService(serverAdapter adapter.ServerAdapter, store *ledger.RecordStore, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		adapter: serverAdapter,
		store:   store,
		errs:    make(chan error, syncErrorsBuffer),
		logger:  logger,
	}
}

func (s *clientSyncService) Start(ctx context.Context, identity models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	if identity.IsZero() {
		return ErrNotSignedIn
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub, err := s.adapter.Subscribe(subCtx)
	if err != nil {
		cancel()
		err = mapAdapterError(err)
		s.report(err)
		return err
	}

	s.cancel = cancel
	s.sub = sub
	s.wg.Add(1)
	go s.pump(subCtx, sub, identity.UserID)

	s.logger.Info().Str("func", "clientSyncService.Start").Str("user_id", identity.UserID).Msg("subscribed to records")
	return nil
}

func (s *clientSyncService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *clientSyncService) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.sub.Close()
		s.wg.Wait()
		s.cancel = nil
		s.sub = nil
	}
	s.store.ReplaceAll(nil)
}

func (s *clientSyncService) Follow(ctx context.Context, auth *AuthState) {
	identities, unsubscribe := auth.Subscribe()
	defer unsubscribe()
	defer s.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case id := <-identities:
			if id.IsZero() {
				s.Stop()
				continue
			}
			if err := s.Start(ctx, id); err != nil {
				s.logger.Err(err).Str("func", "clientSyncService.Follow").Msg("could not subscribe")
			}
		}
	}
}

func (s *clientSyncService) Errors() <-chan error {
	return s.errs
}

func (s *clientSyncService) Store() *ledger.RecordStore {
	return s.store
}

// pump mirrors every pushed snapshot into the store until the stream ends.
func (s *clientSyncService) pump(ctx context.Context, sub adapter.Subscription, userID string) {
	defer s.wg.Done()
	log := s.logger.With().Str("func", "clientSyncService.pump").Str("user_id", userID).Logger()

	for snap := range sub.Snapshots() {
		if ctx.Err() != nil {
			return
		}
		rev := s.store.ReplaceAll(snap.Records)
		log.Debug().Int("records", len(snap.Records)).Uint64("revision", rev).Msg("snapshot applied")
	}

	if ctx.Err() != nil {
		return
	}
	if err := sub.Err(); err != nil {
		log.Err(err).Msg("record stream ended")
		s.report(fmt.Errorf("%w: %w", ErrSubscriptionEnded, mapAdapterError(err)))
	}
}

// report never blocks; when nobody drains the channel old errors are kept
// and the new one is dropped.
func (s *clientSyncService) report(err error) {
	select {
	case s.errs <- err:
	default:
	}
}
