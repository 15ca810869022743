// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	chatcore "github.com/jeranaias/teyvat-chat/internal/chat"
	"github.com/jeranaias/teyvat-chat/internal/commands"
	"github.com/jeranaias/teyvat-chat/internal/provider"
	"github.com/jeranaias/teyvat-chat/internal/ui/components"
	"github.com/jeranaias/teyvat-chat/internal/ui/styles"
)

// Layout constants. The viewport gets whatever is left.
const (
	headerHeight = 4
	inputHeight  = 2
	statusHeight = 1

	minWidth = 30

	// noticePreviewLen bounds failure text echoed into the status bar.
	noticePreviewLen = 60
)

// ProviderSelector is the provider selection as seen by the view.
// *selector.Selector satisfies it.
type ProviderSelector interface {
	commands.ProviderSwitch
	Cycle() (provider.ID, error)
	Subscribe(fn func(provider.ID)) (unsubscribe func())
}

// Options configures a Model.
type Options struct {
	Controller *chatcore.Controller
	Selector   ProviderSelector
	Registry   *commands.Registry
	Theme      *styles.Theme

	// Notices delivers status-bar lines produced outside the view, such as
	// config reloads. May be nil.
	Notices <-chan NoticeMsg

	Logger *logrus.Entry
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl     *chatcore.Controller
	sel      ProviderSelector
	registry *commands.Registry
	theme    *styles.Theme
	keys     KeyMap
	log      *logrus.Entry

	// Dimensions
	width  int
	height int
	ready  bool

	// Widgets
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	header   *components.Header
	status   *components.StatusBar
	md       *components.Markdown

	// rendered caches message views by ID. Entries are immutable once
	// appended, so only a width change invalidates them.
	rendered    map[string]string
	renderWidth int

	// busy mirrors the controller while an exchange is pending. sending is
	// the provider that exchange went to; later selection changes don't move it.
	busy    bool
	sending provider.ID

	// Subscriptions
	providerEvents chan provider.ID
	unsubscribe    func()
	notices        <-chan NoticeMsg
}

// New creates the chat view. It subscribes to provider changes immediately;
// call Close when the program exits.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	registry := opts.Registry
	if registry == nil {
		registry = commands.NewRegistry()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about a character, team or artifact... (/help)"
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	keys := DefaultKeyMap()

	m := Model{
		ctrl:           opts.Controller,
		sel:            opts.Selector,
		registry:       registry,
		theme:          theme,
		keys:           keys,
		log:            log.WithField("component", "tui"),
		input:          ti,
		spinner:        sp,
		viewport:       viewport.New(80, 10),
		header:         components.NewHeader(theme),
		status:         components.NewStatusBar(theme, keys.ShortHelp()...),
		md:             components.NewMarkdown(theme.GlamourStyle()),
		rendered:       make(map[string]string),
		providerEvents: make(chan provider.ID, 8),
		notices:        opts.Notices,
	}

	if m.sel != nil {
		events := m.providerEvents
		m.unsubscribe = m.sel.Subscribe(func(id provider.ID) {
			// Never block the selector; the header re-reads on every render.
			select {
			case events <- id:
			default:
			}
		})
	}

	m.syncHeader()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForProvider(m.providerEvents),
		waitForNotice(m.notices),
	)
}

// Close releases the provider subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// STATE HELPERS
// =============================================================================

// syncHeader copies controller state into the header.
func (m *Model) syncHeader() {
	if m.ctrl == nil {
		return
	}
	m.header.Persona = m.ctrl.Persona()
	m.header.Context = m.ctrl.PersonaEnabled()
	m.header.Provider = m.ctrl.Provider()
}

// setNotice shows text in the status bar until the next keypress.
func (m *Model) setNotice(text string, isError bool) {
	m.status.Notice = text
	m.status.IsError = isError
}

func (m *Model) clearNotice() {
	m.status.Notice = ""
	m.status.IsError = false
}

// setBusy switches the input between editable and locked.
func (m *Model) setBusy(busy bool) {
	m.busy = busy
	if busy {
		m.input.Blur()
		return
	}
	m.input.Focus()
}

// refreshViewport re-renders the transcript into the viewport, keeping the
// view pinned to the bottom if it was there.
func (m *Model) refreshViewport() {
	if m.ctrl == nil {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderMessages(m.ctrl.Messages()))
	if atBottom || m.busy {
		m.viewport.GotoBottom()
	}
}

// Busy reports whether an exchange is pending.
func (m Model) Busy() bool {
	return m.busy
}

// Notice returns the current status-bar notice.
func (m Model) Notice() string {
	return m.status.Notice
}
