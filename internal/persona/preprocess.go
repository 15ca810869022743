// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package persona

import (
	"fmt"
	"strings"
)

// =============================================================================
// PROMPT COMMANDS
// =============================================================================

// Command rewrites a slash command into a full prompt.
type Command struct {
	Name        string
	Usage       string
	Description string
	// Template has a single %s verb for the argument.
	Template string
}

// Expand renders the template with arg, or the placeholder token when arg is
// empty.
func (c Command) Expand(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		arg = CharacterPlaceholder
	}
	return fmt.Sprintf(c.Template, arg)
}

var commands = map[string]Command{
	"build": {
		Name:        "build",
		Usage:       "/build <character>",
		Description: "Full build guide for a character",
		Template:    "Give a detailed build for %s including artifacts, weapon, main stats, substat priority, and a short rotation.",
	},
	"team": {
		Name:        "team",
		Usage:       "/team <character>",
		Description: "4-person team around a character for Spiral Abyss",
		Template:    "Create a 4-person team around %s for high-floor Spiral Abyss play and explain each role.",
	},
}

// LookupCommand returns the prompt command with the given name, with or
// without the leading slash, case-insensitively.
func LookupCommand(name string) (Command, bool) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
	c, ok := commands[name]
	return c, ok
}

// Commands returns every prompt command sorted by name.
func Commands() []Command {
	return []Command{commands["build"], commands["team"]}
}

// =============================================================================
// PREPROCESS
// =============================================================================

// Prompt is the preprocessed form of one user submission.
type Prompt struct {
	// Display is recorded as the user's message in the transcript.
	Display string
	// Send is passed to the provider.
	Send string
}

// Expand trims raw and rewrites a recognized prompt command. Anything else,
// including unknown commands, comes back trimmed but otherwise unchanged.
func Expand(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "/") {
		return text
	}

	fields := strings.Fields(text)
	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	cmd, ok := commands[name]
	if !ok {
		return text
	}
	return cmd.Expand(strings.Join(fields[1:], " "))
}

// Preprocess produces the display and send text for raw. When enabled and
// the active persona carries a system prompt, the send text is prefixed with
// it.
func Preprocess(raw string, enabled bool, active Persona) Prompt {
	display := Expand(raw)
	send := display
	if enabled && active.SystemPrompt != "" {
		send = active.SystemPrompt + "\n\nUser: " + display
	}
	return Prompt{Display: display, Send: send}
}
