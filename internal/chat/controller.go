// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the message-flow controller: it owns the
// transcript, preprocesses user input, dispatches it to the selected provider
// and reconciles the answer (or failure) back into the transcript.
//
// Each submission moves the controller IDLE -> BUSY -> IDLE and appends
// exactly two messages: the user entry synchronously, the assistant entry
// when the provider call settles.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/teyvat-chat/internal/model"
	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
)

// FallbackError is shown when a failure carries no descriptive text.
const FallbackError = "Sorry, something went wrong. Please try again."

var (
	// ErrBusy is returned by Submit while a previous submission is in flight.
	ErrBusy = errors.New("a response is still being composed")

	// ErrEmptyInput is returned by Submit for blank input.
	ErrEmptyInput = errors.New("message is empty")
)

// ProviderSource reports the active provider. *selector.Selector satisfies it.
type ProviderSource interface {
	Get() provider.ID
}

// ClientSource resolves a provider ID to its client. *provider.Set satisfies it.
type ClientSource interface {
	Client(id provider.ID) provider.Client
}

// Options configures a Controller.
type Options struct {
	Providers ClientSource
	Selector  ProviderSource

	// Persona is the initially active persona; zero value uses persona.DefaultID.
	Persona        persona.Persona
	PersonaEnabled bool

	// Welcome seeds the transcript with the persona's welcome message.
	Welcome bool

	Logger *logrus.Entry
}

// State is a point-in-time copy of the conversation, for renderers.
type State struct {
	Messages []model.Message
	Busy     bool
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns one conversation. It is safe for concurrent use; at most
// one provider call is in flight at a time.
type Controller struct {
	mu             sync.Mutex
	transcript     *model.Transcript
	busy           bool
	persona        persona.Persona
	personaEnabled bool

	providers ClientSource
	selector  ProviderSource
	log       *logrus.Entry
}

// New creates a controller, seeding zero or one welcome message.
func New(opts Options) *Controller {
	p := opts.Persona
	if p.ID == "" {
		p = persona.MustLookup(persona.DefaultID)
	}

	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	c := &Controller{
		transcript:     model.NewTranscript(),
		persona:        p,
		personaEnabled: opts.PersonaEnabled,
		providers:      opts.Providers,
		selector:       opts.Selector,
		log: log.WithFields(logrus.Fields{
			"component":  "chat",
			"session_id": uuid.NewString(),
		}),
	}

	if opts.Welcome && p.Welcome != "" {
		c.transcript.Append(model.RoleAssistant, p.Welcome)
	}
	return c
}

// Submit records raw as a user message and starts the provider call. It
// returns once the user entry is appended; the Exchange settles when the
// assistant entry is appended. Provider failures never surface here: they
// become the assistant entry's content.
func (c *Controller) Submit(ctx context.Context, raw string) (*Exchange, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}

	prompt := persona.Preprocess(raw, c.personaEnabled, c.persona)
	userMsg := c.transcript.Append(model.RoleUser, prompt.Display)
	c.busy = true

	// The provider is fixed at the moment the send begins.
	id := provider.Default
	if c.selector != nil {
		id = c.selector.Get()
	}
	var client provider.Client
	if c.providers != nil {
		client = c.providers.Client(id)
	}
	c.mu.Unlock()

	ex := newExchange(userMsg, id)
	log := c.log.WithFields(logrus.Fields{
		"provider":   id.String(),
		"message_id": userMsg.ID,
	})
	log.Debug("submitting prompt")

	go func() {
		start := time.Now()
		res := provider.Do(ctx, client, prompt.Send)
		reply := c.settle(res)

		entry := log.WithField("duration", time.Since(start).String())
		if res.Err != nil {
			entry.WithError(res.Err).Warn("exchange failed")
		} else {
			entry.Info("exchange completed")
		}
		ex.finish(reply, res.Err)
	}()

	return ex, nil
}

// settle appends the assistant entry for res and returns to IDLE.
func (c *Controller) settle(res provider.Result) model.Message {
	content := res.Answer
	if !res.OK() {
		content = ErrorText(res.Err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	msg := c.transcript.Append(model.RoleAssistant, content)
	c.busy = false
	return msg
}

// ErrorText converts a provider failure into the text shown as the
// assistant's reply.
func ErrorText(err error) string {
	if err == nil {
		return FallbackError
	}
	text := strings.TrimSpace(err.Error())
	if text == "" {
		return FallbackError
	}
	return text
}

// Ask submits raw and waits for the assistant reply.
func (c *Controller) Ask(ctx context.Context, raw string) (model.Message, error) {
	ex, err := c.Submit(ctx, raw)
	if err != nil {
		return model.Message{}, err
	}
	return ex.Wait(ctx)
}

// SubmitQuick fills the quick prompt's placeholder with the default character
// and submits it as if typed.
func (c *Controller) SubmitQuick(ctx context.Context, q persona.QuickPrompt) (*Exchange, error) {
	return c.Submit(ctx, q.Fill(""))
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns a copy of the transcript and the busy flag, read atomically.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Messages: c.transcript.Messages(), Busy: c.busy}
}

// Messages returns a copy of the transcript, oldest first.
func (c *Controller) Messages() []model.Message {
	return c.State().Messages
}

// MessagesSince returns the entries after the first n, plus the transcript
// length they bring it to. Front-ends that print incrementally pass the
// returned length back on the next call.
func (c *Controller) MessagesSince(n int) ([]model.Message, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.Since(n), c.transcript.Len()
}

// Busy reports whether a provider call is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Provider returns the provider the next submission would use.
func (c *Controller) Provider() provider.ID {
	if c.selector == nil {
		return provider.Default
	}
	return c.selector.Get()
}

// Persona returns the active persona.
func (c *Controller) Persona() persona.Persona {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persona
}

// SetPersona changes the active persona. Takes effect on the next Submit.
func (c *Controller) SetPersona(p persona.Persona) {
	c.mu.Lock()
	c.persona = p
	c.mu.Unlock()
	c.log.WithField("persona", p.ID).Info("persona selected")
}

// PersonaEnabled reports whether the persona prompt is injected.
func (c *Controller) PersonaEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.personaEnabled
}

// SetPersonaEnabled toggles persona prompt injection.
func (c *Controller) SetPersonaEnabled(enabled bool) {
	c.mu.Lock()
	c.personaEnabled = enabled
	c.mu.Unlock()
}
