// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the teyvat TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Anemo - Brand color, user highlights, prompts
var Anemo = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#5EEAD4"}

// Electro - Assistant accent, persona title
var Electro = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Geo - Warnings, busy indicator, OpenAI badge
var Geo = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}

// Hydro - Gemini badge, info
var Hydro = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Pyro - Errors
var Pyro = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// Dendro - Success, persona context enabled
var Dendro = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#86EFAC"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// SurfaceDim - Headers and footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#134E4A", Dark: "#CCFBF1"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#14B8A6", Dark: "#14B8A6"}

var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#A78BFA"}

var NoticeFg = lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#FEF3C7"}
var NoticeBorder = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicators are ASCII markers shown next to colored state so state is
// readable without color.
var StatusIndicators = struct {
	On      string
	Off     string
	Error   string
	Pending string
}{
	On:      "[*]",
	Off:     "[ ]",
	Error:   "[X]",
	Pending: "[~]",
}
