// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"fmt"
	"strings"
)

// =============================================================================
// PROVIDER IDENTITY
// =============================================================================

// ID identifies one of the interchangeable remote backends.
type ID string

const (
	// Gemini is the generative-content endpoint.
	Gemini ID = "gemini"

	// OpenAI is the chat-completion endpoint.
	OpenAI ID = "openai"

	// Default is used when no valid selection has been persisted.
	Default = Gemini
)

// All returns every known provider in display order.
func All() []ID {
	return []ID{Gemini, OpenAI}
}

// Valid reports whether id is a known provider.
func (id ID) Valid() bool {
	return id == Gemini || id == OpenAI
}

// String returns the string representation of the provider.
func (id ID) String() string {
	return string(id)
}

// DisplayName returns a human-readable vendor name.
func (id ID) DisplayName() string {
	switch id {
	case Gemini:
		return "Gemini"
	case OpenAI:
		return "OpenAI"
	default:
		return string(id)
	}
}

// Next returns the provider after id, wrapping around. Used by front-ends to
// cycle the selection.
func (id ID) Next() ID {
	all := All()
	for i, p := range all {
		if p == id {
			return all[(i+1)%len(all)]
		}
	}
	return Default
}

// ParseID parses a provider name, case-insensitively.
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", fmt.Errorf("unknown provider %q (want one of: gemini, openai)", s)
	}
	return id, nil
}

// =============================================================================
// CLIENT CAPABILITY
// =============================================================================

// Client sends a single prompt to a remote model and returns the answer text.
//
// Implementations perform exactly one outbound call per invocation and never
// retry or cache.
type Client interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// ClientFunc adapts an ordinary function to the Client interface.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

// Send calls f(ctx, prompt).
func (f ClientFunc) Send(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// =============================================================================
// RESULT
// =============================================================================

// Result is the settled outcome of one Send: exactly one of Answer or Err is
// meaningful.
type Result struct {
	Answer string
	Err    error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Do invokes c and packs the outcome into a Result. A panic inside the client
// is converted into an error so the caller always receives a value, and a
// blank answer is reported as ErrEmptyAnswer.
func Do(ctx context.Context, c Client, prompt string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: fmt.Errorf("provider panicked: %v", p)}
		}
	}()

	if c == nil {
		return Result{Err: ErrNoClient}
	}
	answer, err := c.Send(ctx, prompt)
	if err != nil {
		return Result{Err: err}
	}
	if strings.TrimSpace(answer) == "" {
		return Result{Err: ErrEmptyAnswer}
	}
	return Result{Answer: answer}
}
