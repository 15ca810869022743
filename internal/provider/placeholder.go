// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// knownPlaceholders are literal values shipped in example env files.
var knownPlaceholders = map[string]bool{
	"changeme":                 true,
	"your_api_key_here":        true,
	"your_gemini_api_key_here": true,
	"your_openai_api_key_here": true,
	"sk-...":                   true,
	"xxx":                      true,
}

// IsPlaceholder reports whether key is absent or an unfilled template value.
// Placeholders are treated exactly like a missing credential.
func IsPlaceholder(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" || knownPlaceholders[k] {
		return true
	}
	if strings.HasPrefix(k, "your_") && strings.HasSuffix(k, "_here") {
		return true
	}
	if strings.HasPrefix(k, "<") && strings.HasSuffix(k, ">") {
		return true
	}
	if strings.HasPrefix(k, "${") && strings.HasSuffix(k, "}") {
		return true
	}
	return false
}

// KeyFingerprint returns a short SHA-256 fingerprint of key for logging.
// The key itself is never logged.
func KeyFingerprint(key string) string {
	if key == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:4])
}
