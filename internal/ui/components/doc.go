// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the teyvat TUI.
//
//   - Header: persona, provider badge, persona-context toggle
//   - MessageBubble: one transcript entry
//   - Markdown: glamour renderer for assistant answers
//   - StatusBar: shortcuts or a transient notice
//
// Components are plain structs with a View method; the chat model owns their
// state.
package components
