// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teyvat-chat/internal/model"
	"github.com/jeranaias/teyvat-chat/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript entry: a label line, then the content.
// Assistant content is markdown; user content is shown as typed.
type MessageBubble struct {
	Message model.Message
	Width   int
	theme   *styles.Theme
	md      *Markdown
}

// NewMessageBubble creates a bubble. md may be nil, in which case assistant
// content is shown raw.
func NewMessageBubble(msg model.Message, theme *styles.Theme, md *Markdown) *MessageBubble {
	return &MessageBubble{Message: msg, Width: 80, theme: theme, md: md}
}

// View renders the bubble.
func (b *MessageBubble) View() string {
	stamp := b.theme.Timestamp.Render(b.Message.Timestamp.Format("15:04"))

	// Border plus padding
	contentWidth := b.Width - 3
	if contentWidth < 10 {
		contentWidth = 10
	}

	if b.Message.Role == model.RoleUser {
		label := b.theme.UserLabel.Render(b.Message.Role.DisplayName()) + " " + stamp
		body := b.theme.UserBubble.Width(contentWidth).Render(b.Message.Content)
		return lipgloss.JoinVertical(lipgloss.Left, label, body)
	}

	label := b.theme.AssistantLabel.Render(b.Message.Role.DisplayName()) + " " + stamp
	content := b.Message.Content
	if b.md != nil {
		content = b.md.Render(content, contentWidth)
	}
	body := b.theme.AssistantBubble.Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}
