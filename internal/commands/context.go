// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
)

// =============================================================================
// COMMAND CONTEXT
// =============================================================================

// ProviderSwitch reads and changes the active provider.
// *selector.Selector satisfies it.
type ProviderSwitch interface {
	Get() provider.ID
	Set(id provider.ID) error
}

// PersonaSwitch reads and changes persona state. *chat.Controller satisfies
// it.
type PersonaSwitch interface {
	Persona() persona.Persona
	SetPersona(p persona.Persona)
	PersonaEnabled() bool
	SetPersonaEnabled(enabled bool)
}

// Context provides the dependencies command handlers act on. Both fields are
// optional; a handler whose dependency is missing reports it instead of
// panicking.
type Context struct {
	Providers ProviderSwitch
	Chat      PersonaSwitch
}

// NewContext creates a new command context.
func NewContext(providers ProviderSwitch, chat PersonaSwitch) *Context {
	return &Context{Providers: providers, Chat: chat}
}
