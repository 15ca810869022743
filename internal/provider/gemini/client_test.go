// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/teyvat-chat/internal/provider"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c, err := New(Config{APIKey: "AIza-test-key", Endpoint: endpoint, Logger: quietLogger()})
	require.NoError(t, err)
	return c
}

// =============================================================================
// CONSTRUCTION TESTS
// =============================================================================

func TestNew_RejectsPlaceholderKeys(t *testing.T) {
	for _, key := range []string{"", "   ", "your_gemini_api_key_here", "<gemini-key>"} {
		_, err := New(Config{APIKey: key})
		require.Error(t, err, "key %q", key)

		var ce *provider.ConfigError
		require.True(t, errors.As(err, &ce), "key %q: want ConfigError, got %T", key, err)
		assert.Equal(t, provider.Gemini, ce.Provider)
		assert.Contains(t, err.Error(), EnvAPIKey)
	}
}

func TestNew_DefaultsEndpoint(t *testing.T) {
	c, err := New(Config{APIKey: "real-key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, c.endpoint)
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_WireContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "AIza-test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		require.Len(t, body.Contents[0].Parts, 1)
		assert.Equal(t, "Build Xiao", body.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Use Vermillion Hereafter."}]}}]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL+"/generate")
	answer, err := c.Send(context.Background(), "Build Xiao")
	require.NoError(t, err)
	assert.Equal(t, "Use Vermillion Hereafter.", answer)
}

func TestSend_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Send(context.Background(), "hi")
	require.Error(t, err)

	var se *provider.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, "API request failed: Forbidden", err.Error())
}

func TestSend_MalformedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates":[]}`},
		{"missing content", `{"candidates":[{}]}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"not json", `<html>oops</html>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c := newTestClient(t, server.URL)
			_, err := c.Send(context.Background(), "hi")

			var ee *provider.EnvelopeError
			require.True(t, errors.As(err, &ee), "want EnvelopeError, got %v", err)
		})
	}
}

func TestSend_MissingAnswerIsEnvelopeError(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		empty bool
	}{
		{"part without text", `{"candidates":[{"content":{"parts":[{}]}}]}`, false},
		{"null text", `{"candidates":[{"content":{"parts":[{"text":null}]}}]}`, false},
		{"empty text", `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`, true},
		{"blank text", `{"candidates":[{"content":{"parts":[{"text":"  \n"}]}}]}`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c := newTestClient(t, server.URL)
			answer, err := c.Send(context.Background(), "hi")
			assert.Empty(t, answer)

			var ee *provider.EnvelopeError
			require.True(t, errors.As(err, &ee), "want EnvelopeError, got %v", err)
			assert.Equal(t, tc.empty, errors.Is(err, provider.ErrEmptyAnswer))
		})
	}
}

func TestSend_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := newTestClient(t, url)
	_, err := c.Send(context.Background(), "hi")

	var te *provider.TransportError
	require.True(t, errors.As(err, &te), "want TransportError, got %v", err)
}

func TestSend_SingleCallNoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Send(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
