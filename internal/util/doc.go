// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across teyvat.
//
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - TruncateWidth, StringWidth, PadRight: display-width aware layout
package util
