// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
	"github.com/jeranaias/teyvat-chat/internal/ui/styles"
	"github.com/jeranaias/teyvat-chat/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: persona, active provider, persona-context toggle.
type Header struct {
	Persona  persona.Persona
	Provider provider.ID
	Context  bool
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Persona:  persona.MustLookup(persona.DefaultID),
		Provider: provider.Default,
		Width:    80,
		theme:    theme,
	}
}

// View renders the header. It is always exactly four lines tall.
func (h *Header) View() string {
	width := h.Width
	if width < 30 {
		width = 30
	}
	// Border and padding take four columns
	inner := width - 4

	badge := h.providerBadge()
	ctx := h.contextBadge()
	right := badge + "  " + ctx
	rightWidth := lipgloss.Width(right)

	titleWidth := inner - rightWidth - 2
	title := h.theme.HeaderTitle.Render(util.TruncateWidth(h.Persona.Title, titleWidth))
	gap := inner - lipgloss.Width(title) - rightWidth
	if gap < 1 {
		gap = 1
	}
	line1 := title + strings.Repeat(" ", gap) + right

	line2 := h.theme.HeaderSubtitle.Render(util.TruncateWidth(h.Persona.Description, inner))

	return h.theme.Header.Width(width - 2).Render(line1 + "\n" + line2)
}

func (h *Header) providerBadge() string {
	label := "[" + h.Provider.DisplayName() + "]"
	if h.Provider == provider.OpenAI {
		return h.theme.OpenAIBadge.Render(label)
	}
	return h.theme.GeminiBadge.Render(label)
}

func (h *Header) contextBadge() string {
	if h.Context {
		return h.theme.ContextOn.Render(styles.StatusIndicators.On + " context")
	}
	return h.theme.ContextOff.Render(styles.StatusIndicators.Off + " context")
}
