// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for line-mode output.
//
// Colors are disabled for non-TTY output and when NO_COLOR is set.

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teyvat-chat/internal/ui/styles"
)

// init configures lipgloss color profile based on terminal capabilities.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// PromptStyle is the REPL prompt.
	PromptStyle = lipgloss.NewStyle().
			Foreground(styles.Anemo).
			Bold(true)

	// TitleStyle is used for the banner and section headers.
	TitleStyle = lipgloss.NewStyle().
			Foreground(styles.Electro).
			Bold(true)

	// LabelStyle prefixes each transcript entry.
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.Geo).
			Bold(true)

	// InfoStyle is used for local command output and hints.
	InfoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// ErrorStyle is used for error messages and failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Pyro).
			Bold(true)
)
