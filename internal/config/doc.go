// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for teyvat.
//
// Configuration is read from ~/.teyvat/config.toml ($TEYVAT_HOME overrides
// the directory). Precedence, lowest first: built-in defaults, the TOML file,
// environment variables.
//
// # Environment Variables
//
//   - GEMINI_API_KEY: Gemini credential
//   - OPENAI_API_KEY: OpenAI credential
//   - TEYVAT_PERSONA: startup persona
//   - TEYVAT_LOG_LEVEL: log level
//   - TEYVAT_THEME: auto, dark or light
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//
//	// Rebuild provider clients when the file is edited
//	config.Watch(ctx, path, func(cfg *config.Config, err error) { ... })
package config
