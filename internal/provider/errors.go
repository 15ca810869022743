// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Error variables for conditions that carry no extra detail.
var (
	// ErrNoClient indicates no client is registered for the selected provider.
	ErrNoClient = errors.New("no client registered for provider")

	// ErrEmptyAnswer indicates the envelope was well formed but the answer is empty.
	ErrEmptyAnswer = errors.New("the provider returned an empty answer")
)

// ConfigError reports a missing or placeholder credential. It is raised
// before any network call is made.
type ConfigError struct {
	Provider ID
	Env      string // environment variable that supplies the credential
	Key      string // config file key that supplies the credential
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("Please add your %s API key: set %s or %s in config.toml",
		e.Provider.DisplayName(), e.Env, e.Key)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Provider   ID
	StatusCode int
	StatusText string
	// Message is the error message embedded in the response body, if any.
	Message string
}

// Error implements the error interface. The embedded body message wins over
// the transport status text.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	text := e.StatusText
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	if text == "" {
		text = "HTTP " + strconv.Itoa(e.StatusCode)
	}
	return "API request failed: " + text
}

// NewStatusError builds a StatusError from an HTTP status line such as
// "401 Unauthorized".
func NewStatusError(id ID, statusCode int, status, message string) *StatusError {
	return &StatusError{
		Provider:   id,
		StatusCode: statusCode,
		StatusText: StatusText(statusCode, status),
		Message:    strings.TrimSpace(message),
	}
}

// StatusText strips the numeric code from an HTTP status line, falling back
// to the canonical text for the code.
func StatusText(statusCode int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(statusCode)))
	if text == "" {
		text = http.StatusText(statusCode)
	}
	return text
}

// EnvelopeError reports a successful response whose body lacks the expected
// answer fields.
type EnvelopeError struct {
	Provider ID
	Reason   string
	Err      error
}

// Error implements the error interface.
func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %s", e.Provider.DisplayName(), e.Reason)
}

// Unwrap returns the sentinel behind the failure, if any.
func (e *EnvelopeError) Unwrap() error {
	return e.Err
}

// EmptyAnswer reports a well-formed envelope whose answer text is blank.
func EmptyAnswer(id ID) *EnvelopeError {
	return &EnvelopeError{Provider: id, Reason: "the answer was empty", Err: ErrEmptyAnswer}
}

// TransportError reports a request that never produced an HTTP response.
type TransportError struct {
	Provider ID
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider.DisplayName(), e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
