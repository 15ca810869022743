// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the local slash command system.
//
// Local commands change client state (provider, persona, context toggle) or
// trigger a quick prompt. They are never sent to a provider and never enter
// the transcript. Prompt commands such as /build and /team are not local:
// the registry passes them through and the chat controller expands them.
//
// # Built-in Commands
//
//   - /help: Show available commands
//   - /provider: Show or switch the provider
//   - /persona: Show or switch the persona
//   - /context: Toggle persona context injection
//   - /quick: Send a quick prompt
//   - /quit: Exit
//
// # Usage
//
//	res, handled, err := registry.Execute(ctx, input)
//	if !handled {
//	    controller.Submit(context.Background(), input)
//	}
package commands
