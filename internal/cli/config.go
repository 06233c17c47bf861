package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/jaskcalc/internal/config"
	"github.com/jask/jaskcalc/internal/database/repository"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the config file",
	}
	cmd.AddCommand(newConfigInitCmd(opts), newConfigShowCmd(opts))
	return cmd
}

// configPath resolves the file --config, JASKCALC_CONFIG or the default
// location points at.
func configPath(opts *rootOptions) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	if p := os.Getenv("JASKCALC_CONFIG"); p != "" {
		return p
	}
	return config.DefaultPath()
}

// refuseOverwrite fails when path exists and force is unset.
func refuseOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return err
	}
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath(opts)
			if err := refuseOverwrite(path, force); err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env, err := openEnv(ctx, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			c := env.cfg
			fmt.Fprintf(out, "storage.backend = %s\n", c.Storage.Backend)
			if c.Storage.Backend == config.BackendFile {
				fmt.Fprintf(out, "storage.dir = %s\n", c.Storage.Dir)
			} else {
				fmt.Fprintf(out, "database.path = %s\n", c.Database.Path)
			}
			fmt.Fprintf(out, "ui.mouse = %t\n", c.UI.Mouse)
			fmt.Fprintf(out, "ui.history_size = %d\n", c.UI.HistorySize)
			fmt.Fprintf(out, "ui.keybindings = %s\n", c.UI.Keybindings)
			fmt.Fprintf(out, "log.dir = %s\n", c.Log.Dir)
			fmt.Fprintf(out, "log.debug = %t\n", c.Log.Debug)

			if env.db == nil {
				return nil
			}
			prefs, err := repository.NewPrefsRepo(env.db).List(ctx)
			if err != nil {
				return fmt.Errorf("list preferences: %w", err)
			}
			for _, p := range prefs {
				fmt.Fprintf(out, "pref.%s = %s\n", p.Key, p.Value)
			}
			return nil
		},
	}
}
