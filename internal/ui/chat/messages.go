// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	chatcore "github.com/jeranaias/teyvat-chat/internal/chat"
	"github.com/jeranaias/teyvat-chat/internal/model"
	"github.com/jeranaias/teyvat-chat/internal/provider"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ExchangeDoneMsg is sent when the assistant entry for a submission has been
// appended.
type ExchangeDoneMsg struct {
	Reply model.Message
	Err   error
}

// ProviderChangedMsg is sent when the provider selection changes, from this
// view or elsewhere.
type ProviderChangedMsg struct {
	Provider provider.ID
}

// NoticeMsg shows a transient line in the status bar.
type NoticeMsg struct {
	Text    string
	IsError bool
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// waitForExchange blocks until ex settles.
func waitForExchange(ex *chatcore.Exchange) tea.Cmd {
	return func() tea.Msg {
		<-ex.Done()
		return ExchangeDoneMsg{Reply: ex.Reply(), Err: ex.Err()}
	}
}

// waitForProvider delivers the next selection change.
func waitForProvider(ch <-chan provider.ID) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return ProviderChangedMsg{Provider: id}
	}
}

// waitForNotice delivers the next externally produced notice.
func waitForNotice(ch <-chan NoticeMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return n
	}
}
