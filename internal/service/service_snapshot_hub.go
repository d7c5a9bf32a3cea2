// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "sync"

// snapshotHub keeps one signal channel per open stream. Each channel has a
// buffer of one, so a burst of writes wakes a slow stream once and it then
// reads the latest collection.
type snapshotHub struct {
	mu        sync.Mutex
	listeners map[string]map[chan struct{}]struct{}
}

// NewSnapshotHub returns an empty in-process hub.
func NewSnapshotHub() SnapshotHub {
	return &snapshotHub{listeners: make(map[string]map[chan struct{}]struct{})}
}

func (h *snapshotHub) Subscribe(userID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	set, ok := h.listeners[userID]
	if !ok {
		set = make(map[chan struct{}]struct{})
		h.listeners[userID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.listeners[userID], ch)
			if len(h.listeners[userID]) == 0 {
				delete(h.listeners, userID)
			}
		})
	}
	return ch, cancel
}

func (h *snapshotHub) Notify(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.listeners[userID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// listenerCount is used by tests.
func (h *snapshotHub) listenerCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[userID])
}
