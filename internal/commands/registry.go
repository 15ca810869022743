// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"

	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command handled on the client side.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/provider [gemini|openai]")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Handler is the function that executes the command
	Handler func(ctx *Context, args []string) (Result, error)

	// Hidden commands don't appear in help
	Hidden bool

	// Category for grouping in help display
	Category string
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	Name        string
	Required    bool
	Type        ArgType
	Description string

	// Values for enum types
	Values []string
}

// Choices returns the values the argument accepts, or nil for free text.
// Completion offers the same list.
func (a ArgDef) Choices() []string {
	switch a.Type {
	case ArgTypeEnum:
		return a.Values
	case ArgTypeProvider:
		return providerArgs()
	case ArgTypePersona:
		return persona.IDs()
	case ArgTypeQuick:
		return quickIDs()
	default:
		return nil
	}
}

// ArgType indicates what kind of completion to provide.
type ArgType int

const (
	ArgTypeString   ArgType = iota // Free-form string
	ArgTypeEnum                    // One of predefined values
	ArgTypeProvider                // Provider ID
	ArgTypePersona                 // Persona ID
	ArgTypeQuick                   // Quick prompt ID
)

// Result is what a local command asks its front-end to do.
type Result struct {
	// Output is shown to the user verbatim. It is never added to the
	// transcript.
	Output string

	// Quick, when set, is submitted to the controller as if typed.
	Quick string

	// Quit asks the front-end to exit.
	Quit bool
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// ByCategory returns visible commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.All() {
		if cmd.Hidden {
			continue
		}
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// Execute runs input if it names a local command. handled is false for plain
// text and for slash commands the registry does not own (such as /build),
// which belong to the controller.
func (r *Registry) Execute(ctx *Context, input string) (res Result, handled bool, err error) {
	inv, ok := r.Parse(input)
	if !ok || inv.Command == nil {
		return Result{}, false, nil
	}
	if err := checkArgs(inv.Command, inv.Args); err != nil {
		return Result{}, true, err
	}
	if ctx == nil {
		ctx = &Context{}
	}
	res, err = inv.Command.Handler(ctx, inv.Args)
	return res, true, err
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show commands, quick prompts and shortcuts",
		Category:    "Navigation",
		Handler: func(ctx *Context, args []string) (Result, error) {
			return Result{Output: GenerateHelpText(r)}, nil
		},
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Exit teyvat",
		Category:    "Navigation",
		Handler:     HandleQuit,
	})

	r.Register(&Command{
		Name:        "/provider",
		Aliases:     []string{"/p"},
		Description: "Show or switch the AI provider",
		Usage:       "/provider [gemini|openai|next]",
		Args: []ArgDef{
			{Name: "provider", Type: ArgTypeProvider, Description: "gemini, openai or next"},
		},
		Category: "Chat",
		Handler:  HandleProvider,
	})

	r.Register(&Command{
		Name:        "/persona",
		Description: "Show or switch the assistant persona",
		Usage:       "/persona [id]",
		Args: []ArgDef{
			{Name: "persona", Type: ArgTypePersona, Description: "persona id"},
		},
		Category: "Chat",
		Handler:  HandlePersona,
	})

	r.Register(&Command{
		Name:        "/context",
		Description: "Toggle persona context injection",
		Usage:       "/context [on|off]",
		Args: []ArgDef{
			{Name: "state", Type: ArgTypeEnum, Values: []string{"on", "off"}, Description: "on or off"},
		},
		Category: "Chat",
		Handler:  HandleContext,
	})

	r.Register(&Command{
		Name:        "/quick",
		Description: "Send a quick prompt",
		Usage:       "/quick <id> [character]",
		Args: []ArgDef{
			{Name: "id", Required: true, Type: ArgTypeQuick, Description: "quick prompt id"},
			{Name: "character", Type: ArgTypeString, Description: "character name"},
		},
		Category: "Chat",
		Handler:  HandleQuick,
	})
}

func quickIDs() []string {
	var ids []string
	for _, q := range persona.QuickPrompts() {
		ids = append(ids, q.ID)
	}
	return ids
}

func providerArgs() []string {
	var ids []string
	for _, id := range provider.All() {
		ids = append(ids, id.String())
	}
	return append(ids, "next")
}
