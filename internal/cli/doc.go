// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the line-mode front-ends.
//
// Session is an interactive REPL with line editing, history and tab
// completion of slash commands. Ask sends one prompt and prints one reply,
// for scripts and pipes. Both drive the same chat controller as the
// full-screen view and share its local commands.
//
// Replies are rendered as markdown only when stdout is a terminal; NO_COLOR
// and FORCE_COLOR are honored.
package cli
