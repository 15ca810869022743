// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/teyvat-chat/internal/ui/styles"
	"github.com/jeranaias/teyvat-chat/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar shows keyboard shortcuts, or a transient notice in their place.
type StatusBar struct {
	Width     int
	Notice    string
	IsError   bool
	Shortcuts []key.Binding
	theme     *styles.Theme
}

// NewStatusBar creates a status bar listing the given bindings.
func NewStatusBar(theme *styles.Theme, shortcuts ...key.Binding) *StatusBar {
	return &StatusBar{Width: 80, Shortcuts: shortcuts, theme: theme}
}

// View renders a single line no wider than Width.
func (s *StatusBar) View() string {
	if s.Notice != "" {
		notice := util.TruncateWidth(util.FirstLine(s.Notice), s.Width)
		if s.IsError {
			return s.theme.ErrorText.Render(notice)
		}
		return s.theme.StatusBar.Render(notice)
	}

	var parts []string
	used := 0
	for _, b := range s.Shortcuts {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		w := util.StringWidth(h.Key) + util.StringWidth(h.Desc) + 3
		if used+w > s.Width {
			break
		}
		used += w
		parts = append(parts, s.theme.ShortcutKey.Render(h.Key)+" "+s.theme.ShortcutDesc.Render(h.Desc))
	}
	return s.theme.StatusBar.Render(strings.Join(parts, "  "))
}
