// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatcore "github.com/jeranaias/teyvat-chat/internal/chat"
	"github.com/jeranaias/teyvat-chat/internal/model"
	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
	"github.com/jeranaias/teyvat-chat/internal/selector"
	"github.com/jeranaias/teyvat-chat/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type harness struct {
	model Model
	ctrl  *chatcore.Controller
	sel   *selector.Selector
	store *selector.MemoryStore
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newHarness(t *testing.T, client provider.Client) *harness {
	t.Helper()

	store := selector.NewMemoryStore()
	sel := selector.New(store, quietLogger())
	set := provider.NewSet()
	set.Register(provider.Gemini, client)
	set.Register(provider.OpenAI, client)

	ctrl := chatcore.New(chatcore.Options{
		Providers:      set,
		Selector:       sel,
		PersonaEnabled: true,
		Logger:         quietLogger(),
	})

	m := New(Options{
		Controller: ctrl,
		Selector:   sel,
		Theme:      styles.NewTheme("dark"),
		Logger:     quietLogger(),
	})
	t.Cleanup(m.Close)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return &harness{model: updated.(Model), ctrl: ctrl, sel: sel, store: store}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

func (h *harness) typeAndEnter(text string) tea.Cmd {
	h.model.input.SetValue(text)
	return h.send(tea.KeyMsg{Type: tea.KeyEnter})
}

// settle runs cmd, expanding batches, and feeds any ExchangeDoneMsg back
// into the model.
func (h *harness) settle(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		if done, ok := msg.(ExchangeDoneMsg); ok {
			h.send(done)
			return
		}
	}
	t.Fatal("command produced no ExchangeDoneMsg")
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func answering(answer string) provider.Client {
	return provider.ClientFunc(func(context.Context, string) (string, error) {
		return answer, nil
	})
}

// =============================================================================
// TESTS
// =============================================================================

func TestModel_ViewBeforeResize(t *testing.T) {
	m := New(Options{Theme: styles.NewTheme("dark"), Logger: quietLogger()})
	defer m.Close()
	assert.Equal(t, "Loading...", m.View())
}

func TestModel_ResizeSizesViewport(t *testing.T) {
	h := newHarness(t, answering("ok"))
	assert.Equal(t, 80, h.model.viewport.Width)
	assert.Equal(t, 24-headerHeight-inputHeight-statusHeight, h.model.viewport.Height)
	assert.Contains(t, h.model.View(), persona.MustLookup(persona.DefaultID).Title)
}

func TestModel_SubmitAppendsUserThenReply(t *testing.T) {
	h := newHarness(t, answering("Use Viridescent Venerer."))

	cmd := h.typeAndEnter("Build Kazuha")
	require.NotNil(t, cmd)

	msgs := h.ctrl.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "Build Kazuha", msgs[0].Content)
	assert.Empty(t, h.model.input.Value())

	h.settle(t, cmd)

	msgs = h.ctrl.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Use Viridescent Venerer.", msgs[1].Content)
	assert.False(t, h.model.Busy())
}

func TestModel_BusyRejectsSecondSubmit(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, provider.ClientFunc(func(context.Context, string) (string, error) {
		<-release
		return "done", nil
	}))

	cmd := h.typeAndEnter("first")
	assert.True(t, h.model.Busy())
	assert.Contains(t, h.model.View(), "Composing a reply via Gemini")

	h.typeAndEnter("second")
	assert.Contains(t, h.model.Notice(), "Still composing")
	assert.Len(t, h.ctrl.Messages(), 1)

	close(release)
	h.settle(t, cmd)
	assert.Len(t, h.ctrl.Messages(), 2)
	assert.False(t, h.model.Busy())
}

func TestModel_TabWhileBusyKeepsSendingProvider(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, provider.ClientFunc(func(context.Context, string) (string, error) {
		<-release
		return "done", nil
	}))

	cmd := h.typeAndEnter("Team for Neuvillette")
	require.True(t, h.model.Busy())

	h.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, provider.OpenAI, h.sel.Get())

	view := h.model.View()
	assert.Contains(t, view, "Composing a reply via Gemini")
	assert.NotContains(t, view, "Composing a reply via OpenAI")

	close(release)
	h.settle(t, cmd)
	assert.False(t, h.model.Busy())
}

func TestModel_FailureBecomesReply(t *testing.T) {
	h := newHarness(t, provider.Unavailable(&provider.ConfigError{
		Provider: provider.OpenAI,
		Env:      "OPENAI_API_KEY",
	}))

	h.settle(t, h.typeAndEnter("hello"))

	msgs := h.ctrl.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "OPENAI_API_KEY")

	assert.True(t, h.model.status.IsError)
	assert.True(t, strings.HasPrefix(h.model.Notice(), "Gemini: "), h.model.Notice())
	assert.LessOrEqual(t, len([]rune(h.model.Notice())), len("Gemini: ")+noticePreviewLen)
}

func TestModel_PromptCommandIsSent(t *testing.T) {
	h := newHarness(t, answering("ok"))

	h.settle(t, h.typeAndEnter("/build Hu Tao"))

	msgs := h.ctrl.Messages()
	require.Len(t, msgs, 2)
	assert.True(t, strings.HasPrefix(msgs[0].Content, "Give a detailed build for Hu Tao"))
}

func TestModel_LocalCommandStaysLocal(t *testing.T) {
	h := newHarness(t, answering("ok"))

	cmd := h.typeAndEnter("/provider openai")
	assert.Nil(t, cmd)
	assert.Equal(t, provider.OpenAI, h.sel.Get())
	assert.Empty(t, h.ctrl.Messages())
	assert.Equal(t, "Provider: OpenAI", h.model.Notice())

	// The subscription delivers the change back to the view.
	msg := waitForProvider(h.model.providerEvents)()
	assert.Equal(t, ProviderChangedMsg{Provider: provider.OpenAI}, msg)
}

func TestModel_UnknownLocalArgumentShowsError(t *testing.T) {
	h := newHarness(t, answering("ok"))

	h.typeAndEnter("/provider claude")
	assert.True(t, h.model.status.IsError)
	assert.Empty(t, h.ctrl.Messages())
	assert.Equal(t, provider.Gemini, h.sel.Get())
}

func TestModel_TabCyclesAndPersistsProvider(t *testing.T) {
	h := newHarness(t, answering("ok"))

	h.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, provider.OpenAI, h.sel.Get())
	assert.Equal(t, 1, h.store.Writes)

	select {
	case id := <-h.model.providerEvents:
		h.send(ProviderChangedMsg{Provider: id})
	case <-time.After(time.Second):
		t.Fatal("no provider event")
	}
	assert.Equal(t, provider.OpenAI, h.model.header.Provider)
}

func TestModel_CtrlTTogglesContext(t *testing.T) {
	h := newHarness(t, answering("ok"))
	require.True(t, h.ctrl.PersonaEnabled())

	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, h.ctrl.PersonaEnabled())
	assert.False(t, h.model.header.Context)
	assert.Equal(t, "Persona context: off", h.model.Notice())
}

func TestModel_CtrlPCyclesPersona(t *testing.T) {
	h := newHarness(t, answering("ok"))
	before := h.ctrl.Persona()

	h.send(tea.KeyMsg{Type: tea.KeyCtrlP})
	after := h.ctrl.Persona()
	assert.Equal(t, persona.Next(before.ID).ID, after.ID)
	assert.Equal(t, after.ID, h.model.header.Persona.ID)
}

func TestModel_QuickKeyUsesDefaultCharacter(t *testing.T) {
	h := newHarness(t, answering("ok"))

	cmd := h.send(tea.KeyMsg{Type: tea.KeyF1})
	require.NotNil(t, cmd)

	msgs := h.ctrl.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, persona.DefaultCharacter)
	assert.NotContains(t, msgs[0].Content, persona.CharacterPlaceholder)
	h.settle(t, cmd)
}

func TestModel_QuitKey(t *testing.T) {
	h := newHarness(t, answering("ok"))

	cmd := h.send(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_QuitCommand(t *testing.T) {
	h := newHarness(t, answering("ok"))

	cmd := h.typeAndEnter("/quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_NoticeFromChannel(t *testing.T) {
	notices := make(chan NoticeMsg, 1)
	m := New(Options{Theme: styles.NewTheme("dark"), Notices: notices, Logger: quietLogger()})
	defer m.Close()

	notices <- NoticeMsg{Text: "Config reloaded"}
	msg := waitForNotice(notices)()
	updated, cmd := m.Update(msg)
	assert.Equal(t, "Config reloaded", updated.(Model).Notice())
	assert.NotNil(t, cmd)
}

func TestModel_RenderCacheInvalidatedOnResize(t *testing.T) {
	h := newHarness(t, answering("ok"))
	h.settle(t, h.typeAndEnter("hello"))
	require.Len(t, h.model.rendered, 2)

	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, h.model.renderWidth)
	assert.Len(t, h.model.rendered, 2)
}
