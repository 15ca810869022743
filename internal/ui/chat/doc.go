// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen chat view.

The view is a thin Bubble Tea front-end over the message-flow controller in
internal/chat. It never edits the transcript itself: it submits input, waits
for the exchange to settle, and re-renders the controller's copy.

# Layout

  - Header: persona title, active provider badge, persona-context badge
  - Viewport: the transcript, user entries plain and replies as markdown
  - Input: a single-line text input, replaced by a spinner while busy
  - Status bar: keyboard shortcuts, or the latest notice

# Keys

	Enter    send, or run a local /command
	Tab      cycle provider (persisted)
	Ctrl+P   cycle persona
	Ctrl+T   toggle persona context
	F1-F4    quick prompts
	PgUp/Dn  scroll
	Esc      quit

Provider changes made anywhere, including the /provider command or another
front-end sharing the selector, reach the view through Selector.Subscribe.
*/
package chat
