// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/teyvat-chat/internal/model"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// Renderer formats transcript entries for line-mode output.
type Renderer struct {
	md *glamour.TermRenderer
}

// NewRenderer creates a renderer. With markdown false, or when glamour
// cannot be initialized, replies are written verbatim.
func NewRenderer(markdown bool, width int) *Renderer {
	r := &Renderer{}
	if !markdown {
		return r
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		r.md = md
	}
	return r
}

// Markdown reports whether replies are rendered as markdown.
func (r *Renderer) Markdown() bool {
	return r != nil && r.md != nil
}

// Reply renders assistant content. Returns the original content if
// rendering fails.
func (r *Renderer) Reply(content string) string {
	if !r.Markdown() {
		return content
	}
	out, err := r.md.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// Message renders one transcript entry with its role label.
func (r *Renderer) Message(msg model.Message) string {
	label := LabelStyle.Render(msg.Role.DisplayName() + ":")
	if msg.Role == model.RoleAssistant {
		body := r.Reply(msg.Content)
		if r.Markdown() {
			return label + "\n" + body
		}
		return label + " " + body
	}
	return label + " " + msg.Content
}
