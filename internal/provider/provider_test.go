// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ID TESTS
// =============================================================================

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    ID
		wantErr bool
	}{
		{"gemini", Gemini, false},
		{"OpenAI", OpenAI, false},
		{"  openai ", OpenAI, false},
		{"anthropic", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := ParseID(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "ParseID(%q)", tc.input)
			continue
		}
		require.NoError(t, err, "ParseID(%q)", tc.input)
		assert.Equal(t, tc.want, got)
	}
}

func TestID_Next(t *testing.T) {
	assert.Equal(t, OpenAI, Gemini.Next())
	assert.Equal(t, Gemini, OpenAI.Next())
	assert.Equal(t, Default, ID("bogus").Next())
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestStatusError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *StatusError
		want string
	}{
		{"body message wins", NewStatusError(OpenAI, 429, "429 Too Many Requests", "Rate limit reached"), "Rate limit reached"},
		{"status line text", NewStatusError(Gemini, 400, "400 Bad Request", ""), "API request failed: Bad Request"},
		{"canonical text", NewStatusError(Gemini, 503, "", ""), "API request failed: Service Unavailable"},
		{"unknown code", &StatusError{StatusCode: 599}, "API request failed: HTTP 599"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestConfigError_IsActionable(t *testing.T) {
	err := &ConfigError{Provider: Gemini, Env: "GEMINI_API_KEY", Key: "gemini.api_key"}
	assert.Contains(t, err.Error(), "Gemini")
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.True(t, IsConfigError(err))
	assert.False(t, IsConfigError(errors.New("other")))
}

func TestIsPlaceholder(t *testing.T) {
	placeholders := []string{"", "  ", "your_gemini_api_key_here", "YOUR_OPENAI_API_KEY_HERE", "<key>", "${GEMINI_API_KEY}", "changeme"}
	for _, k := range placeholders {
		assert.True(t, IsPlaceholder(k), "IsPlaceholder(%q)", k)
	}

	real := []string{"AIzaSyA-real-looking", "sk-proj-abc123"}
	for _, k := range real {
		assert.False(t, IsPlaceholder(k), "IsPlaceholder(%q)", k)
	}
}

func TestKeyFingerprint_DoesNotLeakKey(t *testing.T) {
	fp := KeyFingerprint("sk-secret-value")
	assert.Len(t, fp, 8)
	assert.NotContains(t, "sk-secret-value", fp)
	assert.Equal(t, "none", KeyFingerprint(""))
}

// =============================================================================
// RESULT AND SET TESTS
// =============================================================================

func TestDo_PacksOutcome(t *testing.T) {
	ok := Do(context.Background(), ClientFunc(func(context.Context, string) (string, error) {
		return "42", nil
	}), "q")
	assert.True(t, ok.OK())
	assert.Equal(t, "42", ok.Answer)

	failed := Do(context.Background(), Unavailable(ErrEmptyAnswer), "q")
	assert.False(t, failed.OK())
	assert.ErrorIs(t, failed.Err, ErrEmptyAnswer)
}

func TestDo_BlankAnswerIsFailure(t *testing.T) {
	res := Do(context.Background(), ClientFunc(func(context.Context, string) (string, error) {
		return " ", nil
	}), "q")
	assert.False(t, res.OK())
	assert.Empty(t, res.Answer)
	assert.ErrorIs(t, res.Err, ErrEmptyAnswer)
}

func TestDo_RecoversPanic(t *testing.T) {
	res := Do(context.Background(), ClientFunc(func(context.Context, string) (string, error) {
		var m map[string]string
		m["boom"] = "x"
		return "", nil
	}), "q")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "panicked")
}

func TestDo_NilClient(t *testing.T) {
	res := Do(context.Background(), nil, "q")
	assert.ErrorIs(t, res.Err, ErrNoClient)
}

func TestSet_RegisterResult(t *testing.T) {
	s := NewSet()
	cfgErr := &ConfigError{Provider: OpenAI, Env: "OPENAI_API_KEY", Key: "openai.api_key"}
	s.RegisterResult(OpenAI, nil, cfgErr)
	s.RegisterResult(Gemini, ClientFunc(func(context.Context, string) (string, error) {
		return "hi", nil
	}), nil)

	_, err := s.Client(OpenAI).Send(context.Background(), "x")
	assert.True(t, IsConfigError(err))

	answer, err := s.Client(Gemini).Send(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "hi", answer)
}

func TestSet_MissingClient(t *testing.T) {
	_, err := NewSet().Client(Gemini).Send(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoClient)
}
