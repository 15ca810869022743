// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider defines the capability shared by every answer-generation
// backend and the error taxonomy they report.
//
// # Key Types
//
//   - ID: Provider identity (gemini, openai)
//   - Client: Send(ctx, prompt) (answer, error) - one outbound call, no retries
//   - Result: Answer-or-error value delivered across the async boundary
//   - Set: ID to Client mapping built once at startup
//
// # Errors
//
//   - ConfigError: missing or placeholder credential, raised before any I/O
//   - StatusError: non-2xx response from the remote service
//   - EnvelopeError: 2xx response missing the expected fields
//   - TransportError: the request never produced a response
//
// Concrete clients live in the gemini and openai subpackages.
package provider
