// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/jeranaias/teyvat-chat/internal/model"
	"github.com/jeranaias/teyvat-chat/internal/provider"
)

// Exchange tracks one submission from the user entry to its assistant entry.
type Exchange struct {
	// User is the appended user entry.
	User model.Message
	// Provider is the backend the prompt was sent to.
	Provider provider.ID

	done  chan struct{}
	reply model.Message
	err   error
}

func newExchange(user model.Message, id provider.ID) *Exchange {
	return &Exchange{User: user, Provider: id, done: make(chan struct{})}
}

func (e *Exchange) finish(reply model.Message, err error) {
	e.reply = reply
	e.err = err
	close(e.done)
}

// Done is closed once the assistant entry has been appended.
func (e *Exchange) Done() <-chan struct{} {
	return e.done
}

// Reply returns the assistant entry. Valid after Done is closed.
func (e *Exchange) Reply() model.Message {
	<-e.done
	return e.reply
}

// Err returns the provider failure that produced the reply, if any. The
// failure has already been recorded in the transcript; this is for callers
// that want an exit status.
func (e *Exchange) Err() error {
	<-e.done
	return e.err
}

// Wait blocks until the exchange settles or ctx is done. Cancelling ctx stops
// the wait, not the exchange.
func (e *Exchange) Wait(ctx context.Context) (model.Message, error) {
	select {
	case <-e.done:
		return e.reply, nil
	case <-ctx.Done():
		return model.Message{}, ctx.Err()
	}
}
