// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
	"github.com/jeranaias/teyvat-chat/internal/util"
)

var (
	errNoProviders = errors.New("provider switching is not available here")
	errNoChat      = errors.New("persona settings are not available here")
)

// =============================================================================
// HANDLERS
// =============================================================================

// HandleQuit asks the front-end to exit.
func HandleQuit(ctx *Context, args []string) (Result, error) {
	return Result{Quit: true}, nil
}

// HandleProvider shows the active provider or switches to the named one.
func HandleProvider(ctx *Context, args []string) (Result, error) {
	if ctx.Providers == nil {
		return Result{}, errNoProviders
	}

	current := ctx.Providers.Get()
	if len(args) == 0 {
		var sb strings.Builder
		sb.WriteString("Providers:\n")
		for _, id := range provider.All() {
			marker := "  "
			if id == current {
				marker = "* "
			}
			sb.WriteString(fmt.Sprintf("  %s%-8s %s\n", marker, id, id.DisplayName()))
		}
		return Result{Output: sb.String()}, nil
	}

	var next provider.ID
	if strings.EqualFold(args[0], "next") {
		next = current.Next()
	} else {
		id, err := provider.ParseID(args[0])
		if err != nil {
			return Result{}, err
		}
		next = id
	}

	if err := ctx.Providers.Set(next); err != nil {
		return Result{}, fmt.Errorf("switch provider: %w", err)
	}
	return Result{Output: "Provider: " + next.DisplayName()}, nil
}

// HandlePersona lists personas or activates the named one.
func HandlePersona(ctx *Context, args []string) (Result, error) {
	if ctx.Chat == nil {
		return Result{}, errNoChat
	}

	if len(args) == 0 {
		active := ctx.Chat.Persona()
		var sb strings.Builder
		sb.WriteString("Personas:\n")
		for _, p := range persona.All() {
			marker := "  "
			if p.ID == active.ID {
				marker = "* "
			}
			sb.WriteString("  " + marker + util.PadRight(p.ID, 14) + " " + p.Description + "\n")
		}
		return Result{Output: sb.String()}, nil
	}

	p, ok := persona.Lookup(args[0])
	if !ok {
		return Result{}, fmt.Errorf("unknown persona %q (want one of: %s)", args[0], strings.Join(persona.IDs(), ", "))
	}
	ctx.Chat.SetPersona(p)
	return Result{Output: "Persona: " + p.Title}, nil
}

// HandleContext toggles persona prompt injection, or sets it explicitly.
func HandleContext(ctx *Context, args []string) (Result, error) {
	if ctx.Chat == nil {
		return Result{}, errNoChat
	}

	enabled := !ctx.Chat.PersonaEnabled()
	if len(args) > 0 {
		enabled = strings.EqualFold(args[0], "on")
	}
	ctx.Chat.SetPersonaEnabled(enabled)

	state := "off"
	if enabled {
		state = "on"
	}
	return Result{Output: "Persona context: " + state}, nil
}

// HandleQuick resolves a quick prompt; the rest of the arguments name the
// character.
func HandleQuick(ctx *Context, args []string) (Result, error) {
	q, ok := persona.LookupQuick(args[0])
	if !ok {
		return Result{}, fmt.Errorf("unknown quick prompt %q (want one of: %s)", args[0], strings.Join(quickIDs(), ", "))
	}
	return Result{Quick: q.Fill(strings.Join(args[1:], " "))}, nil
}

// =============================================================================
// HELP TEXT GENERATION
// =============================================================================

// GenerateHelpText lists local commands, prompt commands, quick prompts and
// keyboard shortcuts.
func GenerateHelpText(r *Registry) string {
	var sb strings.Builder

	sb.WriteString("Available Commands\n")
	sb.WriteString("==================\n\n")

	categories := r.ByCategory()
	for _, category := range []string{"Chat", "Navigation"} {
		cmds := categories[category]
		if len(cmds) == 0 {
			continue
		}
		sb.WriteString(category + "\n")
		for _, cmd := range cmds {
			name := cmd.Name
			if cmd.Usage != "" {
				name = cmd.Usage
			}
			sb.WriteString("  " + util.PadRight(name, 32) + " " + cmd.Description + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Prompt Commands\n")
	for _, c := range persona.Commands() {
		sb.WriteString("  " + util.PadRight(c.Usage, 32) + " " + c.Description + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Quick Prompts\n")
	for i, q := range persona.QuickPrompts() {
		sb.WriteString(fmt.Sprintf("  F%d  %s %s\n", i+1, util.PadRight("/quick "+q.ID, 27), q.Label))
	}
	sb.WriteString("\n")

	sb.WriteString("Keyboard Shortcuts\n")
	sb.WriteString("  Enter             Send message\n")
	sb.WriteString("  Tab               Cycle provider\n")
	sb.WriteString("  Ctrl+P            Cycle persona\n")
	sb.WriteString("  Ctrl+T            Toggle persona context\n")
	sb.WriteString("  Esc / Ctrl+C      Quit\n")

	return sb.String()
}
