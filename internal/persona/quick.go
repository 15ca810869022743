// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package persona

import "strings"

const (
	// CharacterPlaceholder marks where a character name goes in a template.
	CharacterPlaceholder = "<character>"

	// DefaultCharacter is substituted when a quick prompt is used without a name.
	DefaultCharacter = "Kazuha"
)

// QuickPrompt is a predefined template a user can trigger without typing.
type QuickPrompt struct {
	ID    string
	Label string
	Text  string
}

var quickPrompts = []QuickPrompt{
	{
		ID:    "build",
		Label: "Character Build",
		Text:  "How should I build <character> for main DPS/support? Include artifacts, weapon, stats priority, and rotation.",
	},
	{
		ID:    "team",
		Label: "Team Composer",
		Text:  "Recommend a 4-person team around <character> for Spiral Abyss and explain roles.",
	},
	{
		ID:    "artifacts",
		Label: "Artifact Tips",
		Text:  "Best artifact set and stat priority for <character> with an emphasis on endgame play.",
	},
	{
		ID:    "domains",
		Label: "Daily Domains",
		Text:  "What domains should I run this week for artifacts and talent books?",
	},
}

// QuickPrompts returns the quick prompts in display order.
func QuickPrompts() []QuickPrompt {
	out := make([]QuickPrompt, len(quickPrompts))
	copy(out, quickPrompts)
	return out
}

// LookupQuick returns the quick prompt with the given id.
func LookupQuick(id string) (QuickPrompt, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, q := range quickPrompts {
		if q.ID == id {
			return q, true
		}
	}
	return QuickPrompt{}, false
}

// Fill substitutes name for every placeholder. An empty name uses
// DefaultCharacter.
func (q QuickPrompt) Fill(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultCharacter
	}
	return strings.ReplaceAll(q.Text, CharacterPlaceholder, name)
}

// HasPlaceholder reports whether the template takes a character name.
func (q QuickPrompt) HasPlaceholder() bool {
	return strings.Contains(q.Text, CharacterPlaceholder)
}
