// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question, single answer.
//
// Examples:
//   teyvat ask "Build Hu Tao for main DPS"
//   teyvat ask /team Nahida
//   teyvat ask /quick artifacts Furina
//   teyvat ask --json "Best weapon for Xiao?"

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	chatcore "github.com/jeranaias/teyvat-chat/internal/chat"
	"github.com/jeranaias/teyvat-chat/internal/commands"
)

// ErrProviderFailed marks an ask whose reply is a provider failure. The reply
// text has still been written.
var ErrProviderFailed = errors.New("provider request failed")

// AskOptions configures Ask.
type AskOptions struct {
	// JSON writes an AskResponse instead of the rendered reply.
	JSON bool

	Providers commands.ProviderSwitch
	Registry  *commands.Registry
	Renderer  *Renderer
}

// AskResponse is the --json output.
type AskResponse struct {
	Provider string `json:"provider"`
	Prompt   string `json:"prompt"`
	Reply    string `json:"reply"`
	Error    string `json:"error,omitempty"`
}

// Ask sends a single prompt and writes the reply to out. Local commands run
// as they would in chat; a quick prompt is sent. When the provider fails the
// failure text is written as the reply and ErrProviderFailed is returned.
func Ask(ctx context.Context, ctrl *chatcore.Controller, prompt string, out io.Writer, opts AskOptions) error {
	registry := opts.Registry
	if registry == nil {
		registry = commands.NewRegistry()
	}

	res, handled, err := registry.Execute(commands.NewContext(opts.Providers, ctrl), prompt)
	if handled {
		switch {
		case err != nil:
			return err
		case res.Quick == "":
			if res.Output != "" {
				fmt.Fprintln(out, res.Output)
			}
			return nil
		}
		prompt = res.Quick
	}

	ex, err := ctrl.Submit(context.Background(), prompt)
	if err != nil {
		return err
	}
	reply, err := ex.Wait(ctx)
	if err != nil {
		return err
	}
	failure := ex.Err()

	if opts.JSON {
		resp := AskResponse{
			Provider: ex.Provider.String(),
			Prompt:   ex.User.Content,
			Reply:    reply.Content,
		}
		if failure != nil {
			resp.Error = failure.Error()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	} else {
		fmt.Fprintln(out, opts.Renderer.Reply(reply.Content))
	}

	if failure != nil {
		return fmt.Errorf("%w: %s", ErrProviderFailed, ex.Provider.DisplayName())
	}
	return nil
}
