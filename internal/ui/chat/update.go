// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	chatcore "github.com/jeranaias/teyvat-chat/internal/chat"
	"github.com/jeranaias/teyvat-chat/internal/commands"
	"github.com/jeranaias/teyvat-chat/internal/persona"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ExchangeDoneMsg:
		m.setBusy(false)
		if msg.Err != nil {
			m.log.WithError(msg.Err).Debug("reply carries a provider failure")
			m.setNotice(m.sending.DisplayName()+": "+msg.Reply.Preview(noticePreviewLen), true)
		}
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case ProviderChangedMsg:
		m.syncHeader()
		m.setNotice("Provider: "+msg.Provider.DisplayName(), false)
		return m, waitForProvider(m.providerEvents)

	case NoticeMsg:
		m.syncHeader()
		m.setNotice(msg.Text, msg.IsError)
		return m, waitForNotice(m.notices)

	case spinner.TickMsg:
		// Stop ticking once idle; the next submit restarts it.
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize lays out the fixed-height regions and gives the rest to the
// viewport.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	width := m.width
	if width < minWidth {
		width = minWidth
	}
	vpHeight := m.height - headerHeight - inputHeight - statusHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.header.Width = width
	m.status.Width = width
	m.input.Width = width - 4

	m.ready = true
	m.refreshViewport()
	return m, nil
}

// handleKey routes a keypress. Shortcuts win over the text input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keys.CycleProvider):
		m.clearNotice()
		if m.sel == nil {
			return m, nil
		}
		// The header updates through the subscription.
		if _, err := m.sel.Cycle(); err != nil {
			m.setNotice("switch provider: "+err.Error(), true)
		}
		return m, nil

	case key.Matches(msg, m.keys.CyclePersona):
		if m.ctrl == nil {
			return m, nil
		}
		next := persona.Next(m.ctrl.Persona().ID)
		m.ctrl.SetPersona(next)
		m.syncHeader()
		m.setNotice("Persona: "+next.Title, false)
		return m, nil

	case key.Matches(msg, m.keys.ToggleContext):
		if m.ctrl == nil {
			return m, nil
		}
		enabled := !m.ctrl.PersonaEnabled()
		m.ctrl.SetPersonaEnabled(enabled)
		m.syncHeader()
		state := "off"
		if enabled {
			state = "on"
		}
		m.setNotice("Persona context: "+state, false)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	for i, b := range m.keys.Quick {
		if key.Matches(msg, b) {
			quick := persona.QuickPrompts()
			if i < len(quick) {
				return m.submit(quick[i].Fill(""))
			}
		}
	}

	m.clearNotice()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit runs a local command or sends the input to the controller.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}

	res, handled, err := m.registry.Execute(commands.NewContext(m.sel, m.ctrl), raw)
	if handled {
		m.input.Reset()
		m.syncHeader()
		switch {
		case err != nil:
			m.setNotice(err.Error(), true)
			return m, nil
		case res.Quit:
			return m, tea.Quit
		case res.Quick != "":
			return m.submit(res.Quick)
		}
		m.showOutput(res.Output)
		return m, nil
	}

	return m.submit(raw)
}

// showOutput puts single-line command output in the status bar and longer
// output, like help, below the transcript until the next refresh.
func (m *Model) showOutput(out string) {
	if out == "" || m.ctrl == nil {
		m.clearNotice()
		return
	}
	if !strings.Contains(out, "\n") {
		m.setNotice(out, false)
		return
	}
	m.clearNotice()
	m.viewport.SetContent(m.renderMessages(m.ctrl.Messages()) + "\n" + m.theme.Notice.Render(out))
	m.viewport.GotoBottom()
}

// submit hands text to the controller. The user entry is appended before
// this returns; the reply arrives as ExchangeDoneMsg.
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	if m.ctrl == nil {
		return m, nil
	}
	ex, err := m.ctrl.Submit(context.Background(), text)
	switch {
	case errors.Is(err, chatcore.ErrBusy):
		m.setNotice("Still composing the previous reply...", false)
		return m, nil
	case errors.Is(err, chatcore.ErrEmptyInput):
		return m, nil
	case err != nil:
		m.setNotice(err.Error(), true)
		return m, nil
	}

	m.input.Reset()
	m.clearNotice()
	m.sending = ex.Provider
	m.setBusy(true)
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(m.spinner.Tick, waitForExchange(ex))
}
