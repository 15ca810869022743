// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"

	"github.com/jeranaias/teyvat-chat/internal/persona"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer handles tab completion for commands and their arguments.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns candidate replacements for the whole input line, best
// match first. It has the shape liner.Completer expects.
func (c *Completer) Complete(line string) []string {
	if !IsCommand(line) {
		return nil
	}

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	// Still typing the command name?
	if len(parts) == 1 && !strings.HasSuffix(line, " ") {
		return c.completeCommands(parts[0])
	}

	name := strings.ToLower(parts[0])
	cmd := c.registry.Get(name)
	if cmd == nil || len(cmd.Args) == 0 {
		return nil
	}

	// Only the first argument is completed.
	argIndex := len(parts) - 2
	partial := ""
	if strings.HasSuffix(line, " ") {
		argIndex++
	} else {
		partial = parts[len(parts)-1]
	}
	if argIndex != 0 {
		return nil
	}

	var out []string
	for _, v := range cmd.Args[0].Choices() {
		if strings.HasPrefix(strings.ToLower(v), strings.ToLower(partial)) {
			out = append(out, cmd.Name+" "+v)
		}
	}
	return out
}

// completeCommands returns command names, local and prompt, that start with
// partial.
func (c *Completer) completeCommands(partial string) []string {
	partial = strings.ToLower(partial)

	type scored struct {
		value string
		score int
	}
	var matches []scored

	add := func(value string, bonus int) {
		if strings.HasPrefix(strings.ToLower(value), partial) {
			matches = append(matches, scored{value, calculateScore(value, partial) + bonus})
		}
	}

	for _, cmd := range c.registry.All() {
		if cmd.Hidden {
			continue
		}
		add(cmd.Name, 0)
		for _, alias := range cmd.Aliases {
			add(alias, -10) // Slightly lower score for aliases
		}
	}
	for _, pc := range persona.Commands() {
		add("/"+pc.Name, 0)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].value < matches[j].value
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.value
	}
	return out
}

// calculateScore calculates a match score for completion ranking.
// Higher score = better match.
func calculateScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100

	// Exact match
	if value == partial {
		return score + 100
	}

	// Prefix match bonus, shorter completions first
	if strings.HasPrefix(value, partial) {
		score += 50
		score += 20 - len(value)
	}

	return score
}
