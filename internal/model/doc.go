// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcripts and messages.
//
// # Key Types
//
//   - Message: Single transcript entry with role, content and timestamp
//   - Transcript: Append-only ordered sequence of messages
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
//	t := model.NewTranscript()
//	q := t.Append(model.RoleUser, "Build Hu Tao for main DPS")
//	a := t.Append(model.RoleAssistant, "Crimson Witch of Flames, 4pc...")
//	fmt.Println(q.ID != a.ID) // always true
//
// Messages are handed out by value; nothing in this package mutates an entry
// after it has been appended.
package model
