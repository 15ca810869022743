// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/teyvat-chat/internal/persona"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Submit        key.Binding
	CycleProvider key.Binding
	CyclePersona  key.Binding
	ToggleContext key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Quit          key.Binding

	// Quick holds one binding per quick prompt, in display order.
	Quick []key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		CycleProvider: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "provider"),
		),
		CyclePersona: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("^p", "persona"),
		),
		ToggleContext: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("^t", "context"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}

	for i := range persona.QuickPrompts() {
		if i >= 12 {
			break
		}
		fkey := fmt.Sprintf("f%d", i+1)
		help := ""
		if i == 0 {
			help = "quick prompts"
		}
		km.Quick = append(km.Quick, key.NewBinding(
			key.WithKeys(fkey),
			key.WithHelp("F1-F4", help),
		))
	}
	return km
}

// ShortHelp returns the bindings shown in the status bar, most useful first.
func (k KeyMap) ShortHelp() []key.Binding {
	out := []key.Binding{k.Submit, k.CycleProvider, k.CyclePersona, k.ToggleContext}
	if len(k.Quick) > 0 {
		out = append(out, k.Quick[0])
	}
	return append(out, k.Quit)
}
