// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app assembles the long-lived pieces every front-end shares:
// configuration, the log file, the persisted provider selection, the
// provider clients and the chat controller.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/teyvat-chat/internal/chat"
	"github.com/jeranaias/teyvat-chat/internal/config"
	"github.com/jeranaias/teyvat-chat/internal/logging"
	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
	"github.com/jeranaias/teyvat-chat/internal/provider/gemini"
	"github.com/jeranaias/teyvat-chat/internal/provider/openai"
	"github.com/jeranaias/teyvat-chat/internal/selector"
	"github.com/jeranaias/teyvat-chat/internal/storage"
)

// ErrUnknownPersona is returned by New for a persona ID not in the catalog.
var ErrUnknownPersona = errors.New("unknown persona")

// Options are the command-line overrides applied on top of the config file.
type Options struct {
	// ConfigPath is the config file; empty uses config.Path().
	ConfigPath string

	Persona   string
	NoContext bool
	NoWelcome bool

	// Ephemeral keeps the provider selection in memory only.
	Ephemeral bool

	// LogOutput overrides the log file, mainly for tests.
	LogOutput io.Writer
}

// =============================================================================
// APP
// =============================================================================

// App owns the shared state of one process.
type App struct {
	ConfigPath string
	Dir        string

	Log        *logging.Logger
	Providers  *provider.Set
	Selector   *selector.Selector
	Controller *chat.Controller

	mu    sync.RWMutex
	cfg   *config.Config
	store *storage.BoltStore
	log   *logrus.Entry
}

// New loads configuration and builds everything. A missing API key is not an
// error here: the affected provider answers every prompt with a message
// asking for the key.
func New(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	personaID := cfg.Chat.Persona
	if opts.Persona != "" {
		personaID = opts.Persona
	}
	active, ok := persona.Lookup(personaID)
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownPersona, personaID, persona.IDs())
	}

	a := &App{
		ConfigPath: path,
		Dir:        filepath.Dir(path),
		cfg:        cfg,
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(a.Dir, logging.DefaultFileName)
	}
	a.Log, err = logging.New(logging.Options{Level: cfg.Log.Level, File: logFile, Output: opts.LogOutput})
	if err != nil {
		return nil, err
	}
	a.log = a.Log.Component("app")

	var store selector.Store
	if opts.Ephemeral {
		store = selector.NewMemoryStore()
	} else {
		a.store, err = storage.Open(filepath.Join(a.Dir, storage.DefaultFileName))
		if err != nil {
			a.Log.Close()
			return nil, err
		}
		store = a.store
	}
	a.Selector = selector.New(store, a.Log.Component("selector"))

	a.Providers = provider.NewSet()
	RegisterProviders(a.Providers, cfg, a.Log)

	a.Controller = chat.New(chat.Options{
		Providers:      a.Providers,
		Selector:       a.Selector,
		Persona:        active,
		PersonaEnabled: cfg.Chat.PersonaContext && !opts.NoContext,
		Welcome:        cfg.Chat.Welcome && !opts.NoWelcome,
		Logger:         a.Log.Component("chat"),
	})

	a.log.WithFields(logrus.Fields{
		"config":   path,
		"provider": a.Selector.Get().String(),
		"persona":  active.ID,
	}).Info("started")
	return a, nil
}

// RegisterProviders builds one client per provider from cfg and installs it
// in set. A client that cannot be built is replaced by one reporting why.
func RegisterProviders(set *provider.Set, cfg *config.Config, log *logging.Logger) {
	gc, err := clientOrNil(gemini.New(gemini.Config{
		APIKey:   cfg.Gemini.APIKey,
		Endpoint: cfg.Gemini.Endpoint,
		Logger:   log.Component("gemini"),
	}))
	set.RegisterResult(provider.Gemini, gc, err)
	oc, err := clientOrNil(openai.New(openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Logger:  log.Component("openai"),
	}))
	set.RegisterResult(provider.OpenAI, oc, err)
}

// clientOrNil keeps a typed nil pointer from becoming a non-nil Client.
func clientOrNil[C provider.Client](c C, err error) (provider.Client, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// =============================================================================
// RELOAD
// =============================================================================

// Reload applies a new configuration: provider clients and the log level.
// The active persona and provider are left alone; they belong to the user's
// session now.
func (a *App) Reload(cfg *config.Config) {
	RegisterProviders(a.Providers, cfg, a.Log)
	if err := a.Log.SetLevelName(cfg.Log.Level); err != nil {
		a.log.WithError(err).Warn("keeping previous log level")
	}

	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
	a.log.Info("configuration reloaded")
}

// Watch reloads the config file whenever it changes until ctx is done.
// notify, if non-nil, receives a one-line outcome for each reload.
func (a *App) Watch(ctx context.Context, notify func(text string, isError bool)) error {
	if notify == nil {
		notify = func(string, bool) {}
	}
	return config.Watch(ctx, a.ConfigPath, func(cfg *config.Config, err error) {
		if err != nil {
			a.log.WithError(err).Warn("config reload failed")
			notify("Config reload failed: "+err.Error(), true)
			return
		}
		a.Reload(cfg)
		notify("Config reloaded", false)
	})
}

// Close releases the state file and the log file.
func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.Log.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
