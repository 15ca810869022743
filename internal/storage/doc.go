// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists small pieces of client state, such as the selected
// provider, in a bbolt key/value file.
//
// Conversation history is deliberately not stored; only settings survive a
// restart.
//
// # Usage
//
//	store, err := storage.Open(filepath.Join(dir, "state.db"))
//	if err != nil { ... }
//	defer store.Close()
//	err = store.Put("apiProvider", "openai")
//	v, ok, err := store.Get("apiProvider")
//
// # Storage Location
//
// ~/.teyvat/state.db by default.
package storage
