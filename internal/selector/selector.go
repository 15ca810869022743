// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selector holds the active provider selection, restored from a
// persisted key at startup and persisted on every change.
//
// A Selector is constructed once by main and passed to the chat controller
// and the front-ends; there is no package-level instance.
package selector

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/teyvat-chat/internal/provider"
)

// Key is the persisted key recording the selected provider.
const Key = "apiProvider"

// ErrInvalidProvider is returned by Set for an unknown provider ID.
var ErrInvalidProvider = errors.New("invalid provider")

// Store is the durable key/value backend.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
}

// =============================================================================
// SELECTOR
// =============================================================================

// Selector is the process-wide provider selection. It is safe for concurrent
// use.
type Selector struct {
	mu      sync.RWMutex
	current provider.ID
	store   Store
	log     *logrus.Entry

	subMu  sync.Mutex
	subs   map[int]func(provider.ID)
	nextID int
}

// New restores the selection from store. An absent, unreadable or invalid
// persisted value falls back to provider.Default; startup never fails here.
func New(store Store, log *logrus.Entry) *Selector {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Selector{
		current: provider.Default,
		store:   store,
		log:     log.WithField("component", "selector"),
		subs:    make(map[int]func(provider.ID)),
	}

	if store == nil {
		return s
	}

	raw, ok, err := store.Get(Key)
	switch {
	case err != nil:
		s.log.WithError(err).Warn("could not read persisted provider, using default")
	case !ok:
		s.log.Debug("no persisted provider, using default")
	default:
		id, perr := provider.ParseID(raw)
		if perr != nil {
			s.log.WithField("value", raw).Warn("persisted provider is invalid, using default")
			break
		}
		s.current = id
	}
	return s
}

// Get returns the active provider.
func (s *Selector) Get() provider.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set validates id, persists it and makes it active before returning.
// On any error the previous selection stays in effect.
func (s *Selector) Set(id provider.ID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidProvider, id)
	}

	s.mu.Lock()
	if s.store != nil {
		if err := s.store.Put(Key, id.String()); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to persist provider selection: %w", err)
		}
	}
	changed := s.current != id
	s.current = id
	s.mu.Unlock()

	s.log.WithField("provider", id.String()).Info("provider selected")

	if changed {
		s.notify(id)
	}
	return nil
}

// Cycle selects the provider after the current one and returns it.
func (s *Selector) Cycle() (provider.ID, error) {
	next := s.Get().Next()
	if err := s.Set(next); err != nil {
		return s.Get(), err
	}
	return next, nil
}

// Subscribe registers fn to be called after every change of selection.
// The returned function removes the subscription.
func (s *Selector) Subscribe(fn func(provider.ID)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// notify calls subscribers in registration order, outside every lock.
func (s *Selector) notify(id provider.ID) {
	s.subMu.Lock()
	keys := make([]int, 0, len(s.subs))
	for k := range s.subs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	fns := make([]func(provider.ID), 0, len(keys))
	for _, k := range keys {
		fns = append(fns, s.subs[k])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}
