// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the teyvat TUI.

Colors are Lip Gloss AdaptiveColor values named after the seven elements.
NewTheme resolves the configured theme ("auto", "dark", "light") once; "auto"
uses termenv to query the terminal background.

	theme := styles.NewTheme(cfg.UI.Theme)
	fmt.Println(theme.HeaderTitle.Render("Genshin Expert"))
*/
package styles
