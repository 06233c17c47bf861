// Package cli wires configuration, storage and logging into the cobra
// commands behind the jaskcalc binary.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/jaskcalc/internal/logger"
	"github.com/jask/jaskcalc/internal/theme"
	"github.com/jask/jaskcalc/internal/tui"
)

type rootOptions struct {
	configPath string
	debug      bool
	stderr     io.Writer
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "jaskcalc",
		Short:        "jaskcalc: a keypad calculator for the terminal",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.stderr = cmd.ErrOrStderr()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $JASKCALC_CONFIG or ~/.config/jaskcalc/config.toml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging")
	cmd.AddCommand(
		newEvalCmd(),
		newThemeCmd(opts),
		newHistoryCmd(opts),
		newConfigCmd(opts),
		newKeysCmd(opts),
	)
	return cmd
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := openEnv(ctx, opts, true)
	if err != nil {
		return err
	}
	defer env.Close()

	keys, err := loadKeys(env.cfg.UI.Keybindings)
	if err != nil {
		return err
	}

	pos, err := theme.Load(ctx, env.themes)
	if err != nil {
		logger.L().Warn("theme.load.failed", "err", err)
	}

	app := tui.New(ctx, tui.Repos{Themes: env.themes, History: env.history}, tui.Options{
		Theme:       pos,
		HistorySize: env.cfg.UI.HistorySize,
		Keys:        keys,
		Logger:      logger.L(),
	})

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if env.cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	logger.L().Info("tui.start", "theme", pos.String(), "backend", env.cfg.Storage.Backend)
	if _, err := tea.NewProgram(app, progOpts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
