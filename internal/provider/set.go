// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"sync"
)

// =============================================================================
// PROVIDER SET
// =============================================================================

// Set maps each provider ID to its client. It is safe for concurrent use so
// front-ends can swap clients after a config reload while a send is running.
type Set struct {
	mu      sync.RWMutex
	clients map[ID]Client
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{clients: make(map[ID]Client)}
}

// Register installs c for id, replacing any previous client.
func (s *Set) Register(id ID, c Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[id] = c
}

// RegisterResult installs c, or an unavailable client reporting err when the
// concrete client could not be constructed.
func (s *Set) RegisterResult(id ID, c Client, err error) {
	if err != nil {
		s.Register(id, Unavailable(err))
		return
	}
	s.Register(id, c)
}

// Client returns the client for id. A missing registration yields a client
// that fails with ErrNoClient.
func (s *Set) Client(id ID) Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return c
	}
	return Unavailable(ErrNoClient)
}

// Unavailable returns a client whose every Send fails with err without
// touching the network.
func Unavailable(err error) Client {
	return ClientFunc(func(context.Context, string) (string, error) {
		return "", err
	})
}
