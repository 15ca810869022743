// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
	"github.com/jeranaias/teyvat-chat/internal/provider/gemini"
	"github.com/jeranaias/teyvat-chat/internal/provider/openai"
	"github.com/jeranaias/teyvat-chat/internal/util"
)

const (
	// EnvHome overrides the configuration directory.
	EnvHome = "TEYVAT_HOME"

	EnvPersona  = "TEYVAT_PERSONA"
	EnvLogLevel = "TEYVAT_LOG_LEVEL"
	EnvTheme    = "TEYVAT_THEME"

	// FileName is the config file inside the configuration directory.
	FileName = "config.toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete teyvat configuration.
type Config struct {
	Gemini GeminiConfig `toml:"gemini"`
	OpenAI OpenAIConfig `toml:"openai"`
	Chat   ChatConfig   `toml:"chat"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// GeminiConfig configures the generative-content provider.
type GeminiConfig struct {
	// APIKey is sent as the key query parameter. GEMINI_API_KEY overrides it.
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"`
}

// OpenAIConfig configures the chat-completion provider.
type OpenAIConfig struct {
	// APIKey is sent as a bearer token. OPENAI_API_KEY overrides it.
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// ChatConfig contains conversation defaults.
type ChatConfig struct {
	// Persona is the persona active at startup.
	Persona string `toml:"persona"`
	// PersonaContext prefixes prompts with the persona's system prompt.
	PersonaContext bool `toml:"persona_context"`
	// Welcome seeds the transcript with the persona's greeting.
	Welcome bool `toml:"welcome"`
}

// UIConfig contains front-end settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme"`
	// Mode is "auto" (TUI on a terminal, line mode otherwise), "tui" or "line".
	Mode string `toml:"mode"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level string `toml:"level"`
	// File defaults to teyvat.log in the configuration directory.
	File string `toml:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Endpoint: gemini.DefaultEndpoint,
		},
		OpenAI: OpenAIConfig{
			BaseURL: openai.DefaultBaseURL,
			Model:   openai.DefaultModel,
		},
		Chat: ChatConfig{
			Persona:        persona.DefaultID,
			PersonaContext: true,
			Welcome:        true,
		},
		UI: UIConfig{
			Theme: "auto",
			Mode:  "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the configuration directory: $TEYVAT_HOME, or ~/.teyvat.
func Dir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".teyvat"), nil
}

// Path returns the path to the default config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// ensureSecurePermissions tightens a config file to 0600; it holds API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the default config file. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from path over the defaults, applies
// environment overrides and validates. A missing file is not an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		// Not fixable on every filesystem.
		_ = ensureSecurePermissions(path)

		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv(gemini.EnvAPIKey); key != "" {
		c.Gemini.APIKey = key
	}
	if key := os.Getenv(openai.EnvAPIKey); key != "" {
		c.OpenAI.APIKey = key
	}
	if p := os.Getenv(EnvPersona); p != "" {
		c.Chat.Persona = p
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	if theme := os.Getenv(EnvTheme); theme != "" {
		c.UI.Theme = theme
	}
}

func (c *Config) normalize() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	c.Chat.Persona = strings.ToLower(strings.TrimSpace(c.Chat.Persona))
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	c.UI.Mode = strings.ToLower(strings.TrimSpace(c.UI.Mode))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))

	d := Default()
	if c.Gemini.Endpoint == "" {
		c.Gemini.Endpoint = d.Gemini.Endpoint
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = d.OpenAI.BaseURL
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = d.OpenAI.Model
	}
	if c.Chat.Persona == "" {
		c.Chat.Persona = d.Chat.Persona
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.Mode == "" {
		c.UI.Mode = d.UI.Mode
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

const fileHeader = `# teyvat configuration file
#
# API keys may also come from GEMINI_API_KEY and OPENAI_API_KEY, which take
# precedence over the values below.

`

// Save writes cfg to path as TOML. The write is atomic and the file is
// created 0600.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks field values. Missing or placeholder API keys are not
// errors here: they surface as a reply when that provider is used.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := validateURL(c.Gemini.Endpoint); err != nil {
		errs = append(errs, ValidationError{Field: "gemini.endpoint", Message: err.Error()})
	}
	if err := validateURL(c.OpenAI.BaseURL); err != nil {
		errs = append(errs, ValidationError{Field: "openai.base_url", Message: err.Error()})
	}
	if strings.TrimSpace(c.OpenAI.Model) == "" {
		errs = append(errs, ValidationError{Field: "openai.model", Message: "must not be empty"})
	}

	if _, ok := persona.Lookup(c.Chat.Persona); !ok {
		errs = append(errs, ValidationError{
			Field:   "chat.persona",
			Message: fmt.Sprintf("unknown persona '%s', must be one of: %s", c.Chat.Persona, strings.Join(persona.IDs(), ", ")),
		})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	validModes := map[string]bool{"auto": true, "tui": true, "line": true}
	if !validModes[strings.ToLower(c.UI.Mode)] {
		errs = append(errs, ValidationError{
			Field:   "ui.mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: auto, tui, line", c.UI.Mode),
		})
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL '%s', scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL '%s', missing host", raw)
	}
	return nil
}

// =============================================================================
// DISPLAY
// =============================================================================

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the configuration as TOML with API keys replaced by their
// fingerprints.
func (c *Config) String() string {
	redacted := c.Clone()
	redacted.Gemini.APIKey = maskKey(c.Gemini.APIKey)
	redacted.OpenAI.APIKey = maskKey(c.OpenAI.APIKey)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(redacted); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

func maskKey(key string) string {
	if provider.IsPlaceholder(key) {
		return "(not set)"
	}
	return "sha256:" + provider.KeyFingerprint(key)
}
