// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// Watch reloads the config file at path whenever it changes and passes the
// result to onChange. A reload that fails (bad TOML, invalid values) is
// passed as an error; the caller keeps its previous config.
//
// The parent directory is watched rather than the file, so atomic
// replace-by-rename saves are seen. Watch returns once the watcher is
// running; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	return WatchDebounced(ctx, path, DefaultDebounce, onChange)
}

// WatchDebounced is Watch with an explicit debounce interval.
func WatchDebounced(ctx context.Context, path string, debounce time.Duration, onChange func(*Config, error)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go processEvents(ctx, watcher, absPath, debounce, onChange)
	return nil
}

// processEvents runs until ctx is done or the watcher closes.
func processEvents(ctx context.Context, watcher *fsnotify.Watcher, path string, debounce time.Duration, onChange func(*Config, error)) {
	defer watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				pending = time.After(debounce)
			}

		case <-pending:
			pending = nil
			onChange(LoadFromPath(path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			onChange(nil, fmt.Errorf("config watcher: %w", err))
		}
	}
}
