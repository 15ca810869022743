// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/teyvat-chat/internal/config"
	"github.com/jeranaias/teyvat-chat/internal/model"
	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY",
		config.EnvPersona, config.EnvLogLevel, config.EnvTheme,
	} {
		t.Setenv(key, "")
	}
}

func newApp(t *testing.T, opts Options) *App {
	t.Helper()
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), config.FileName)
	}
	opts.LogOutput = io.Discard
	a, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func geminiServer(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"`+answer+`"}]}}]}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	a := newApp(t, Options{Ephemeral: true})

	assert.Equal(t, provider.Default, a.Selector.Get())
	assert.Equal(t, persona.DefaultID, a.Controller.Persona().ID)
	assert.True(t, a.Controller.PersonaEnabled())

	msgs := a.Controller.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleAssistant, msgs[0].Role)
}

func TestNew_FlagOverrides(t *testing.T) {
	clearEnv(t)
	a := newApp(t, Options{
		Ephemeral: true,
		Persona:   persona.DefaultPersonaID,
		NoContext: true,
		NoWelcome: true,
	})

	assert.Equal(t, persona.DefaultPersonaID, a.Controller.Persona().ID)
	assert.False(t, a.Controller.PersonaEnabled())
	assert.Empty(t, a.Controller.Messages())
}

func TestNew_UnknownPersona(t *testing.T) {
	clearEnv(t)
	_, err := New(Options{
		ConfigPath: filepath.Join(t.TempDir(), config.FileName),
		Persona:    "paimon",
		Ephemeral:  true,
		LogOutput:  io.Discard,
	})
	assert.ErrorIs(t, err, ErrUnknownPersona)
}

func TestNew_InvalidConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"neon\"\n"), 0600))

	_, err := New(Options{ConfigPath: path, Ephemeral: true, LogOutput: io.Discard})
	assert.Error(t, err)
}

func TestNew_MissingKeyBecomesReply(t *testing.T) {
	clearEnv(t)
	a := newApp(t, Options{Ephemeral: true, NoWelcome: true})

	reply, err := a.Controller.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "GEMINI_API_KEY")
}

func TestNew_SelectionPersistsAcrossRestarts(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), config.FileName)

	first, err := New(Options{ConfigPath: path, LogOutput: io.Discard})
	require.NoError(t, err)
	require.NoError(t, first.Selector.Set(provider.OpenAI))
	require.NoError(t, first.Close())

	second := newApp(t, Options{ConfigPath: path})
	assert.Equal(t, provider.OpenAI, second.Selector.Get())
	assert.FileExists(t, filepath.Join(second.Dir, "state.db"))
}

func TestReload_SwapsClients(t *testing.T) {
	clearEnv(t)
	srv := geminiServer(t, "Reloaded answer")
	a := newApp(t, Options{Ephemeral: true, NoWelcome: true})

	cfg := config.Default()
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.Endpoint = srv.URL
	a.Reload(cfg)

	reply, err := a.Controller.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Reloaded answer", reply.Content)
	assert.Same(t, cfg, a.Config())
}

func TestWatch_AppliesFileChanges(t *testing.T) {
	clearEnv(t)
	srv := geminiServer(t, "From the watcher")
	path := filepath.Join(t.TempDir(), config.FileName)
	a := newApp(t, Options{ConfigPath: path, Ephemeral: true, NoWelcome: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notices := make(chan string, 4)
	require.NoError(t, a.Watch(ctx, func(text string, isError bool) {
		select {
		case notices <- text:
		default:
		}
	}))

	cfg := config.Default()
	cfg.Gemini.APIKey = "watched-key"
	cfg.Gemini.Endpoint = srv.URL
	require.NoError(t, config.Save(cfg, path))

	select {
	case text := <-notices:
		assert.Equal(t, "Config reloaded", text)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload notice")
	}

	reply, err := a.Controller.Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "From the watcher", reply.Content)
}
