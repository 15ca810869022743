// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"
)

// =============================================================================
// INVOCATION
// =============================================================================

// Invocation is one slash-command line split into its parts.
type Invocation struct {
	// Name is the lower-cased command token, e.g. "/persona".
	Name string

	// Args are the whitespace-separated words after the name. Local
	// arguments (provider, persona and quick prompt ids, on/off) never
	// contain spaces, so no quoting is supported.
	Args []string

	// Command is the local command for Name. Nil means the line belongs to
	// the controller: /build, /team and unknown names.
	Command *Command
}

// IsCommand reports whether input starts with a slash.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Parse splits input into an Invocation. ok is false for plain text.
func (r *Registry) Parse(input string) (inv Invocation, ok bool) {
	if !IsCommand(input) {
		return Invocation{}, false
	}

	fields := strings.Fields(input)
	inv.Name = strings.ToLower(fields[0])
	inv.Args = fields[1:]
	if r != nil {
		inv.Command = r.Get(inv.Name)
	}
	return inv, true
}

// =============================================================================
// ARGUMENT CHECKS
// =============================================================================

// ArgError reports a missing or out-of-range argument to a local command.
type ArgError struct {
	Command string
	Arg     string
	Allowed []string

	// Got is empty when the argument is missing.
	Got string
}

func (e *ArgError) Error() string {
	allowed := ""
	if len(e.Allowed) > 0 {
		allowed = " (one of " + strings.Join(e.Allowed, ", ") + ")"
	}
	if e.Got == "" {
		return fmt.Sprintf("%s: missing %s%s", e.Command, e.Arg, allowed)
	}
	return fmt.Sprintf("%s: %q is not a valid %s%s", e.Command, e.Got, e.Arg, allowed)
}

// checkArgs enforces required arguments and, for arguments with a fixed set
// of choices, that the given value is one of them.
func checkArgs(cmd *Command, args []string) error {
	for i, def := range cmd.Args {
		choices := def.Choices()
		if i >= len(args) {
			if def.Required {
				return &ArgError{Command: cmd.Name, Arg: def.Name, Allowed: choices}
			}
			continue
		}
		if len(choices) > 0 && !containsFold(choices, args[i]) {
			return &ArgError{Command: cmd.Name, Arg: def.Name, Got: args[i], Allowed: choices}
		}
	}
	return nil
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
