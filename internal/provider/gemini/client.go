// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini implements the generative-content provider.
//
// Wire contract:
//
//	POST <endpoint>?key=<credential>
//	{"contents":[{"parts":[{"text":"<prompt>"}]}]}
//
// The answer is candidates[0].content.parts[0].text.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/teyvat-chat/internal/provider"
)

// Configuration constants for the generative-content API.
const (
	// DefaultEndpoint is the generateContent URL for the default model.
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024

	// EnvAPIKey is the environment variable holding the credential.
	EnvAPIKey = "GEMINI_API_KEY"
)

// Config holds everything needed to build a Client.
type Config struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
	Logger     *logrus.Entry
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

// answerPart keeps Text as a pointer so a missing field is told apart from
// an empty one.
type answerPart struct {
	Text *string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []answerPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the generative-content endpoint.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	log        *logrus.Entry
}

// New creates a client. It fails with a *provider.ConfigError when the key is
// absent or a placeholder, before any network activity.
func New(cfg Config) (*Client, error) {
	if provider.IsPlaceholder(cfg.APIKey) {
		return nil, &provider.ConfigError{
			Provider: provider.Gemini,
			Env:      EnvAPIKey,
			Key:      "gemini.api_key",
		}
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid gemini endpoint: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		httpClient: httpClient,
		log: log.WithFields(logrus.Fields{
			"provider": provider.Gemini.String(),
			"key_fp":   provider.KeyFingerprint(cfg.APIKey),
		}),
	}, nil
}

// Send posts prompt and returns the first candidate's text.
func (c *Client) Send(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("request failed")
		return "", &provider.TransportError{Provider: provider.Gemini, Err: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("response received")

	data, err := readResponse(resp)
	if err != nil {
		return "", &provider.TransportError{Provider: provider.Gemini, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", provider.NewStatusError(provider.Gemini, resp.StatusCode, resp.Status, "")
	}

	return extractAnswer(data)
}

// requestURL appends the credential as the key query parameter.
func (c *Client) requestURL() string {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return c.endpoint
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String()
}

// extractAnswer pulls candidates[0].content.parts[0].text out of the envelope.
func extractAnswer(data []byte) (string, error) {
	var env generateResponse
	if err := json.Unmarshal(data, &env); err != nil {
		return "", &provider.EnvelopeError{Provider: provider.Gemini, Reason: "malformed JSON: " + err.Error()}
	}
	if len(env.Candidates) == 0 {
		return "", &provider.EnvelopeError{Provider: provider.Gemini, Reason: "no candidates"}
	}
	first := env.Candidates[0].Content
	if first == nil || len(first.Parts) == 0 {
		return "", &provider.EnvelopeError{Provider: provider.Gemini, Reason: "candidate has no content parts"}
	}
	text := first.Parts[0].Text
	if text == nil {
		return "", &provider.EnvelopeError{Provider: provider.Gemini, Reason: "content part has no text"}
	}
	if strings.TrimSpace(*text) == "" {
		return "", provider.EmptyAnswer(provider.Gemini)
	}
	return *text, nil
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return data, nil
}

var _ provider.Client = (*Client)(nil)
