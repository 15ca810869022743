// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/teyvat-chat/internal/config"
	"github.com/jeranaias/teyvat-chat/internal/persona"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", config.EnvPersona, config.EnvLogLevel, config.EnvTheme} {
		t.Setenv(key, "")
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	out, err := runCmd(t, "", "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	out, err := runCmd(t, "", "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.FileExists(t, path)

	_, err = runCmd(t, "", "--config", path, "config", "init")
	assert.Error(t, err, "second init without --force must fail")

	_, err = runCmd(t, "", "--config", path, "config", "init", "--force")
	assert.NoError(t, err)

	out, err = runCmd(t, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "[chat]")
}

func TestConfigShowRedactsKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("[gemini]\napi_key = \"AIza-secret-value\"\n"), 0600))

	out, err := runCmd(t, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "AIza-secret-value")
	assert.Contains(t, out, "sha256:")
}

func TestProviderSetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	out, err := runCmd(t, "", "--config", path, "provider", "set", "OpenAI")
	require.NoError(t, err)
	assert.Equal(t, "Provider: OpenAI\n", out)

	out, err = runCmd(t, "", "--config", path, "provider")
	require.NoError(t, err)
	assert.Contains(t, out, "* openai")

	out, err = runCmd(t, "", "--config", path, "provider", "next")
	require.NoError(t, err)
	assert.Equal(t, "Provider: Gemini\n", out)
}

func TestProviderSetRejectsUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	_, err := runCmd(t, "", "--config", path, "provider", "set", "claude")
	assert.Error(t, err)
}

func TestPersonas(t *testing.T) {
	out, err := runCmd(t, "", "personas")
	require.NoError(t, err)
	for _, id := range persona.IDs() {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "/build <character>")
	assert.Contains(t, out, "artifacts")
}

func TestAsk_MissingKeyExitsWithFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	out, err := runCmd(t, "", "--config", path, "--ephemeral", "ask", "Build", "Kazuha")
	require.Error(t, err)
	assert.Contains(t, out, "GEMINI_API_KEY")
}

func TestAsk_ReadsStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	out, err := runCmd(t, "Best weapon for Xiao?\n", "--config", path, "--ephemeral", "ask", "--json")
	require.Error(t, err)
	assert.Contains(t, out, `"prompt": "Best weapon for Xiao?"`)
	assert.Contains(t, out, `"provider": "gemini"`)
}

func TestUnknownPersonaFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	_, err := runCmd(t, "", "--config", path, "--persona", "paimon", "provider")
	assert.Error(t, err)
}
