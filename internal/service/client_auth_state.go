// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/go-lend-keeper/models"
)

// AuthState holds the identity the client is signed in as and notifies
// listeners when it changes. Listeners only ever see the latest identity.
type AuthState struct {
	mu        sync.Mutex
	current   models.Identity
	listeners map[chan models.Identity]struct{}
}

func NewAuthState() *AuthState {
	return &AuthState{listeners: make(map[chan models.Identity]struct{})}
}

// Current returns the signed-in identity, zero when signed out.
func (a *AuthState) Current() models.Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Set publishes id. Setting the same identity again is a no-op.
func (a *AuthState) Set(id models.Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id == a.current {
		return
	}
	a.current = id
	for ch := range a.listeners {
		publishLatest(ch, id)
	}
}

// Subscribe returns a channel that first yields the current identity and
// then every change.
func (a *AuthState) Subscribe() (<-chan models.Identity, func()) {
	ch := make(chan models.Identity, 1)

	a.mu.Lock()
	a.listeners[ch] = struct{}{}
	ch <- a.current
	a.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.listeners, ch)
			a.mu.Unlock()
		})
	}
}

// publishLatest replaces an unread value so a slow reader skips straight to
// the newest one. Callers hold the lock, so there is a single sender.
func publishLatest(ch chan models.Identity, id models.Identity) {
	select {
	case <-ch:
	default:
	}
	ch <- id
}
