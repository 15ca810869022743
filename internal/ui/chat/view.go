// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teyvat-chat/internal/model"
	"github.com/jeranaias/teyvat-chat/internal/ui/components"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete chat view.
// Layout: header (4 lines) + messages (viewport) + input (2 lines) + status (1 line).
// handleResize sizes the viewport from the same constants.
func (m Model) renderChat() string {
	if !m.ready {
		return "Loading..."
	}

	m.syncHeader()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		m.renderInput(),
		m.status.View(),
	)
}

// renderInput shows the text input, or the spinner while a reply is pending.
func (m Model) renderInput() string {
	var line string
	if m.busy {
		name := m.sending.DisplayName()
		line = m.spinner.View() + " " + m.theme.ThinkingText.Render("Composing a reply via "+name+"...")
	} else {
		line = m.input.View()
	}
	return m.theme.InputContainer.Width(m.viewport.Width).Render(line)
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderMessages renders the transcript, reusing cached bubbles at the
// current width.
func (m *Model) renderMessages(msgs []model.Message) string {
	width := m.viewport.Width
	if width != m.renderWidth {
		m.rendered = make(map[string]string, len(msgs))
		m.renderWidth = width
	}

	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		view, ok := m.rendered[msg.ID]
		if !ok {
			bubble := components.NewMessageBubble(msg, m.theme, m.md)
			bubble.Width = width
			view = bubble.View()
			m.rendered[msg.ID] = view
		}
		parts = append(parts, view)
	}
	return strings.Join(parts, "\n\n")
}
