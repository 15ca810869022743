// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive line-mode chat.
//
// Used when the full-screen view is unavailable (stdin is not a terminal) or
// disabled with ui.mode = "line".
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /provider [name]    Show or switch provider
//   /persona [id]       Show or switch persona
//   /context [on|off]   Toggle persona context
//   /quick <id> [name]  Send a quick prompt
//   /quit, /q           Exit chat
//   Ctrl+C, Ctrl+D      Exit chat

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	chatcore "github.com/jeranaias/teyvat-chat/internal/chat"
	"github.com/jeranaias/teyvat-chat/internal/commands"
	"github.com/jeranaias/teyvat-chat/internal/model"
)

// HistoryFileName is the line-editing history kept in the config directory.
const HistoryFileName = "chat_history"

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader reads one line of input. *LineEditor satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// LineEditor provides input history, line editing and tab completion.
type LineEditor struct {
	line        *liner.State
	historyFile string
}

// NewLineEditor creates a LineEditor. History is loaded from dir and saved
// back on Close; an empty dir disables history persistence.
func NewLineEditor(dir string, completer *commands.Completer) *LineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	if completer != nil {
		line.SetCompleter(completer.Complete)
	}

	e := &LineEditor{line: line}
	if dir != "" {
		e.historyFile = filepath.Join(dir, HistoryFileName)
		e.LoadHistory()
	}
	return e
}

// LoadHistory loads command history from file.
func (e *LineEditor) LoadHistory() {
	if e.historyFile == "" {
		return
	}
	if f, err := os.Open(e.historyFile); err == nil {
		e.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line of input with the given prompt.
func (e *LineEditor) Prompt(prompt string) (string, error) {
	return e.line.Prompt(prompt)
}

// AppendHistory records a non-empty line.
func (e *LineEditor) AppendHistory(item string) {
	e.line.AppendHistory(item)
}

// SaveHistory persists command history with owner-only permissions.
func (e *LineEditor) SaveHistory() {
	if e.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	e.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (e *LineEditor) Close() error {
	e.SaveHistory()
	return e.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// Session is one interactive line-mode conversation.
type Session struct {
	Controller *chatcore.Controller
	Providers  commands.ProviderSwitch
	Registry   *commands.Registry
	Input      LineReader
	Renderer   *Renderer

	// Out receives the transcript; Status receives progress and errors.
	Out    io.Writer
	Status io.Writer

	Logger *logrus.Entry

	// shown counts transcript entries already printed.
	shown int
}

// Run reads input until /quit, Ctrl+C, Ctrl+D or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.defaults()
	s.printBanner()
	s.printNew("")

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := s.Input.Prompt("teyvat> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(s.Out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		s.Input.AppendHistory(input)

		if quit := s.handle(ctx, input); quit {
			return nil
		}
	}
}

// handle runs one line of input and reports whether the session should end.
func (s *Session) handle(ctx context.Context, input string) (quit bool) {
	res, handled, err := s.Registry.Execute(commands.NewContext(s.Providers, s.Controller), input)
	if !handled {
		s.send(ctx, input)
		return false
	}

	switch {
	case err != nil:
		fmt.Fprintln(s.Status, ErrorStyle.Render("[Error]")+" "+err.Error())
	case res.Quit:
		return true
	case res.Quick != "":
		s.send(ctx, res.Quick)
	case res.Output != "":
		fmt.Fprintln(s.Out, InfoStyle.Render(res.Output))
	}
	return false
}

// send submits text and prints the new transcript entries once the reply
// has been appended. ctx only bounds the wait: the provider call itself is
// never cancelled, so an interrupt cannot turn into a reply.
func (s *Session) send(ctx context.Context, text string) {
	ex, err := s.Controller.Submit(context.Background(), text)
	if err != nil {
		fmt.Fprintln(s.Status, ErrorStyle.Render("[Error]")+" "+err.Error())
		return
	}

	fmt.Fprintln(s.Status, InfoStyle.Render("Composing a reply via "+ex.Provider.DisplayName()+"..."))
	if _, err := ex.Wait(ctx); err != nil {
		s.Logger.WithError(err).Debug("stopped waiting for reply")
		return
	}
	s.printNew(text)
}

// printNew prints entries appended since the last call. A user entry that
// repeats typed verbatim is skipped since it is already on screen.
func (s *Session) printNew(typed string) {
	delta, total := s.Controller.MessagesSince(s.shown)
	for _, msg := range delta {
		if msg.Role == model.RoleUser && msg.Content == typed {
			continue
		}
		fmt.Fprintln(s.Out, s.Renderer.Message(msg))
	}
	s.shown = total
}

func (s *Session) printBanner() {
	p := s.Controller.Persona()
	name := s.Controller.Provider().DisplayName()
	fmt.Fprintln(s.Out, TitleStyle.Render(p.Title)+InfoStyle.Render(" via "+name+"  (/help for commands)"))
}

func (s *Session) defaults() {
	if s.Registry == nil {
		s.Registry = commands.NewRegistry()
	}
	if s.Renderer == nil {
		s.Renderer = NewRenderer(false, DefaultTerminalWidth)
	}
	if s.Out == nil {
		s.Out = os.Stdout
	}
	if s.Status == nil {
		s.Status = os.Stderr
	}
	if s.Logger == nil {
		s.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
}
