// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/teyvat-chat/internal/app"
	"github.com/jeranaias/teyvat-chat/internal/cli"
	"github.com/jeranaias/teyvat-chat/internal/commands"
	"github.com/jeranaias/teyvat-chat/internal/config"
	"github.com/jeranaias/teyvat-chat/internal/persona"
	"github.com/jeranaias/teyvat-chat/internal/provider"
	uichat "github.com/jeranaias/teyvat-chat/internal/ui/chat"
	"github.com/jeranaias/teyvat-chat/internal/ui/styles"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	persona    string
	noContext  bool
	noWelcome  bool
	ephemeral  bool
}

func (f *globalFlags) open() (*app.App, error) {
	return app.New(app.Options{
		ConfigPath: f.configPath,
		Persona:    f.persona,
		NoContext:  f.noContext,
		NoWelcome:  f.noWelcome,
		Ephemeral:  f.ephemeral,
	})
}

func (f *globalFlags) path() (string, error) {
	if f.configPath != "" {
		return f.configPath, nil
	}
	return config.Path()
}

// =============================================================================
// ROOT
// =============================================================================

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "teyvat",
		Short: "Chat with Gemini or OpenAI about Genshin Impact builds and teams",
		Long: `teyvat is a terminal chat client for Genshin Impact advice.

Without a subcommand it opens the full-screen chat on a terminal, or the
line-mode chat when input is piped or ui.mode is "line".

API keys are read from GEMINI_API_KEY and OPENAI_API_KEY, or from the
config file (see "teyvat config init").`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			switch a.Config().UI.Mode {
			case "line":
				return runLine(cmd.Context(), a, cmd.OutOrStdout())
			case "tui":
				return runTUI(cmd.Context(), a)
			}
			if cli.IsTTY() && cli.IsStdoutTTY() {
				return runTUI(cmd.Context(), a)
			}
			return runLine(cmd.Context(), a, cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default $TEYVAT_HOME/config.toml, else ~/.teyvat/config.toml)")
	pf.StringVarP(&flags.persona, "persona", "p", "", "persona to start with (see \"teyvat personas\")")
	pf.BoolVar(&flags.noContext, "no-context", false, "do not prefix prompts with the persona's system prompt")
	pf.BoolVar(&flags.noWelcome, "no-welcome", false, "do not show the persona's welcome message")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "do not persist the provider selection")

	root.AddCommand(
		newChatCmd(flags),
		newAskCmd(flags),
		newProviderCmd(flags),
		newPersonasCmd(),
		newConfigCmd(flags),
	)
	return root
}

// runTUI runs the full-screen chat until the user quits.
func runTUI(ctx context.Context, a *app.App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notices := make(chan uichat.NoticeMsg, 4)
	err := a.Watch(ctx, func(text string, isError bool) {
		select {
		case notices <- uichat.NoticeMsg{Text: text, IsError: isError}:
		default:
		}
	})
	if err != nil {
		a.Log.Component("main").WithError(err).Warn("config hot reload disabled")
	}

	m := uichat.New(uichat.Options{
		Controller: a.Controller,
		Selector:   a.Selector,
		Registry:   commands.NewRegistry(),
		Theme:      styles.NewTheme(a.Config().UI.Theme),
		Notices:    notices,
		Logger:     a.Log.Component("tui"),
	})
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("chat view: %w", err)
	}
	return nil
}

// runLine runs the line-mode chat until /quit or end of input.
func runLine(ctx context.Context, a *app.App, out io.Writer) error {
	if err := a.Watch(ctx, nil); err != nil {
		a.Log.Component("main").WithError(err).Warn("config hot reload disabled")
	}

	registry := commands.NewRegistry()
	editor := cli.NewLineEditor(a.Dir, commands.NewCompleter(registry))
	defer editor.Close()

	s := &cli.Session{
		Controller: a.Controller,
		Providers:  a.Selector,
		Registry:   registry,
		Input:      editor,
		Renderer:   cli.NewRenderer(cli.IsStdoutTTY(), cli.GetTerminalWidth()),
		Out:        out,
		Status:     os.Stderr,
		Logger:     a.Log.Component("repl"),
	}
	return s.Run(ctx)
}

// =============================================================================
// CHAT / ASK
// =============================================================================

func newChatCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-mode chat session",
		Long: `Start an interactive line-mode chat with history and tab completion.

Type /help inside the session for commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()
			return runLine(cmd.Context(), a, cmd.OutOrStdout())
		},
	}
}

func newAskCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Ask a single question and print the answer",
		Long: `Send one prompt and print one answer. With no arguments the prompt is
read from standard input.

Exits with status 1 when the provider request fails; the failure text is
still printed as the answer.

Examples:
  teyvat ask "Build Hu Tao for main DPS"
  teyvat ask /team Nahida
  teyvat ask /quick artifacts Furina
  echo "Best weapon for Xiao?" | teyvat ask --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read prompt: %w", err)
				}
				prompt = string(data)
			}

			// The welcome message is never printed here.
			flags.noWelcome = true
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			return cli.Ask(cmd.Context(), a.Controller, prompt, cmd.OutOrStdout(), cli.AskOptions{
				JSON:      asJSON,
				Providers: a.Selector,
				Renderer:  cli.NewRenderer(!asJSON && cli.IsStdoutTTY(), cli.GetTerminalWidth()),
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the answer as JSON")
	return cmd
}

// =============================================================================
// PROVIDER
// =============================================================================

func newProviderCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Show or change the persisted provider selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			current := a.Selector.Get()
			for _, id := range provider.All() {
				marker := "  "
				if id == current {
					marker = "* "
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%-8s %s\n", marker, id, id.DisplayName())
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "set <gemini|openai>",
		Short:     "Select a provider",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{provider.Gemini.String(), provider.OpenAI.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := provider.ParseID(args[0])
			if err != nil {
				return err
			}
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Selector.Set(id); err != nil {
				return fmt.Errorf("set provider: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Provider: %s\n", id.DisplayName())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Select the next provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Selector.Cycle()
			if err != nil {
				return fmt.Errorf("set provider: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Provider: %s\n", id.DisplayName())
			return nil
		},
	})
	return cmd
}

// =============================================================================
// PERSONAS
// =============================================================================

func newPersonasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List personas, prompt commands and quick prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PERSONA\tTITLE")
			for _, p := range persona.All() {
				fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Title)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "COMMAND\tDESCRIPTION")
			for _, c := range persona.Commands() {
				fmt.Fprintf(w, "%s\t%s\n", c.Usage, c.Description)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "QUICK\tLABEL")
			for _, q := range persona.QuickPrompts() {
				fmt.Fprintf(w, "%s\t%s\n", q.ID, q.Label)
			}
			return w.Flush()
		},
	}
}

// =============================================================================
// CONFIG
// =============================================================================

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.path()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with keys redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.path()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFromPath(path)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	})
	return cmd
}
