// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"time"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered, append-only sequence of messages composing one
// conversation. Entries are never reordered or removed.
//
// A Transcript is not safe for concurrent use; the owner serializes access.
type Transcript struct {
	messages []Message
	seq      uint64

	// now is replaceable in tests to force same-tick appends.
	now func() time.Time
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{
		messages: make([]Message, 0, 16),
		now:      time.Now,
	}
}

// Append creates a message with a fresh ID and timestamp and adds it to the
// end of the transcript.
func (t *Transcript) Append(role Role, content string) Message {
	ts := t.now()
	msg := Message{
		ID:        t.nextID(ts),
		Role:      role,
		Content:   content,
		Timestamp: ts,
	}
	t.messages = append(t.messages, msg)
	return msg
}

// Messages returns a copy of all messages, oldest first.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Since returns the messages appended after the first n entries.
func (t *Transcript) Since(n int) []Message {
	if n < 0 {
		n = 0
	}
	if n >= len(t.messages) {
		return nil
	}
	out := make([]Message, len(t.messages)-n)
	copy(out, t.messages[n:])
	return out
}

// nextID combines the clock tick with a per-transcript sequence number so two
// messages created within the same millisecond still get distinct IDs.
func (t *Transcript) nextID(ts time.Time) string {
	t.seq++
	return "msg_" + strconv.FormatInt(ts.UnixMilli(), 10) + "_" + strconv.FormatUint(t.seq, 10)
}
