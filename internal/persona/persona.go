// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package persona turns raw user text into the prompt that is shown in the
// transcript and the prompt that is sent to the provider.
//
// It owns three static catalogs: personas (system prompts), quick prompts
// (one-click templates) and prompt commands (/build, /team). Everything in
// this package is pure; no I/O and no shared mutable state.
package persona

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// PERSONA CATALOG
// =============================================================================

// Persona is a named system-prompt profile.
type Persona struct {
	ID           string
	Title        string
	Description  string
	SystemPrompt string
	// Welcome seeds the transcript when the controller starts.
	Welcome string
}

const (
	// DefaultPersonaID is the general-purpose assistant.
	DefaultPersonaID = "default"

	// GenshinExpertID is the game-focused expert persona.
	GenshinExpertID = "genshin_expert"

	// DefaultID is the persona selected at startup.
	DefaultID = GenshinExpertID
)

var catalog = map[string]Persona{
	DefaultPersonaID: {
		ID:           DefaultPersonaID,
		Title:        "General Assistant",
		Description:  "Helpful assistant for general questions.",
		SystemPrompt: "You are a helpful assistant.",
		Welcome:      "Hello! Ask me anything.",
	},
	GenshinExpertID: {
		ID:    GenshinExpertID,
		Title: "Genshin Impact Expert",
		Description: "Specializes in character builds, team comps, artifact recommendations, and event tips for Genshin Impact. " +
			"When possible, cite game mechanics and offer practical rotation suggestions.",
		SystemPrompt: "You are a friendly and highly knowledgeable Genshin Impact expert. " +
			"Answer the user with clear, game-focused advice: character roles, artifact sets and stats, weapon choices, " +
			"constellations impact, team synergy and suggested rotations. Prefer concise bullets for build recommendations " +
			"and always ask a follow-up question when the user’s request is ambiguous.",
		Welcome: "Hey Traveler! I'm your Genshin Impact expert — I can help with builds, teams, artifact farming, and strategy. " +
			`Try: "Build Hu Tao for main DPS" or use the quick prompt buttons below.`,
	},
}

// Lookup returns the persona with the given id.
func Lookup(id string) (Persona, bool) {
	p, ok := catalog[strings.ToLower(strings.TrimSpace(id))]
	return p, ok
}

// MustLookup returns the persona with the given id, or the default persona.
func MustLookup(id string) Persona {
	if p, ok := Lookup(id); ok {
		return p
	}
	return catalog[DefaultID]
}

// All returns every persona sorted by ID.
func All() []Persona {
	out := make([]Persona, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns every persona ID sorted.
func IDs() []string {
	all := All()
	ids := make([]string, len(all))
	for i, p := range all {
		ids[i] = p.ID
	}
	return ids
}

// Next returns the persona after id in sorted order, wrapping around.
func Next(id string) Persona {
	all := All()
	for i, p := range all {
		if p.ID == id {
			return all[(i+1)%len(all)]
		}
	}
	return catalog[DefaultID]
}

// String implements fmt.Stringer.
func (p Persona) String() string {
	return fmt.Sprintf("%s (%s)", p.Title, p.ID)
}
