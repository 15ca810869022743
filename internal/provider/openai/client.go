// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package openai implements the chat-completion provider on top of
// github.com/sashabaranov/go-openai.
//
// Wire contract:
//
//	POST <base>/chat/completions
//	Authorization: Bearer <credential>
//	{"model":"gpt-3.5-turbo","messages":[{"role":"user","content":"<prompt>"}],
//	 "temperature":0.7,"max_tokens":1000}
//
// The answer is choices[0].message.content.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	gpt "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/teyvat-chat/internal/provider"
)

// Request parameters fixed by the chat-completion contract.
const (
	// DefaultBaseURL is the API root; the client appends /chat/completions.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the fixed model id sent with every request.
	DefaultModel = gpt.GPT3Dot5Turbo

	// Temperature is the sampling temperature sent with every request.
	Temperature float32 = 0.7

	// MaxTokens caps the completion length.
	MaxTokens = 1000

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// EnvAPIKey is the environment variable holding the credential.
	EnvAPIKey = "OPENAI_API_KEY"
)

// Config holds everything needed to build a Client.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *logrus.Entry
}

// Client talks to the chat-completion endpoint.
type Client struct {
	api   *gpt.Client
	model string
	log   *logrus.Entry
}

// New creates a client. It fails with a *provider.ConfigError when the key is
// absent or a placeholder, before any network activity.
func New(cfg Config) (*Client, error) {
	if provider.IsPlaceholder(cfg.APIKey) {
		return nil, &provider.ConfigError{
			Provider: provider.OpenAI,
			Env:      EnvAPIKey,
			Key:      "openai.api_key",
		}
	}

	apiCfg := gpt.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	} else {
		apiCfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient != nil {
		apiCfg.HTTPClient = cfg.HTTPClient
	} else {
		apiCfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Client{
		api:   gpt.NewClientWithConfig(apiCfg),
		model: model,
		log: log.WithFields(logrus.Fields{
			"provider": provider.OpenAI.String(),
			"key_fp":   provider.KeyFingerprint(cfg.APIKey),
		}),
	}, nil
}

// Send issues one chat completion with prompt as the only user message.
func (c *Client) Send(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, gpt.ChatCompletionRequest{
		Model: c.model,
		Messages: []gpt.ChatCompletionMessage{
			{Role: gpt.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		mapped := mapError(err)
		c.log.WithError(mapped).WithField("duration", time.Since(start).String()).Warn("chat completion failed")
		return "", mapped
	}

	c.log.WithFields(logrus.Fields{
		"model":    resp.Model,
		"tokens":   resp.Usage.TotalTokens,
		"duration": time.Since(start).String(),
	}).Debug("chat completion received")

	if len(resp.Choices) == 0 {
		return "", &provider.EnvelopeError{Provider: provider.OpenAI, Reason: "no choices"}
	}
	answer := resp.Choices[0].Message.Content
	if strings.TrimSpace(answer) == "" {
		return "", provider.EmptyAnswer(provider.OpenAI)
	}
	return answer, nil
}

// mapError converts go-openai errors into the provider taxonomy. The message
// embedded in the error body wins; otherwise the status text is used.
func mapError(err error) error {
	var apiErr *gpt.APIError
	if errors.As(err, &apiErr) {
		return provider.NewStatusError(provider.OpenAI, apiErr.HTTPStatusCode, "", apiErr.Message)
	}

	var reqErr *gpt.RequestError
	if errors.As(err, &reqErr) {
		return provider.NewStatusError(provider.OpenAI, reqErr.HTTPStatusCode, "", "")
	}

	var synErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &synErr) || errors.As(err, &typeErr) {
		return &provider.EnvelopeError{Provider: provider.OpenAI, Reason: "malformed JSON: " + err.Error()}
	}

	return &provider.TransportError{Provider: provider.OpenAI, Err: err}
}

var _ provider.Client = (*Client)(nil)
