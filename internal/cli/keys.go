package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/jaskcalc/internal/config"
	"github.com/jask/jaskcalc/internal/tui"
)

func newKeysCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage keybinding overrides",
	}
	cmd.AddCommand(newKeysExportCmd(opts))
	return cmd
}

// loadKeys builds the registry with the overrides at path applied.
func loadKeys(path string) (*tui.KeyRegistry, error) {
	keys := tui.NewKeyRegistry()
	overrides, err := config.LoadKeybindings(path)
	if err != nil {
		return nil, err
	}
	if err := keys.ApplyKeybindingConfig(overrides); err != nil {
		return nil, fmt.Errorf("apply keybindings: %w", err)
	}
	return keys, nil
}

func newKeysExportCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write every current keybinding to a TOML file",
		Long: `Writes the full keybinding table, overrides included, so it can be edited
and pointed at by ui.keybindings. Defaults to the ui.keybindings path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			keys, err := loadKeys(cfg.UI.Keybindings)
			if err != nil {
				return err
			}
			path := cfg.UI.Keybindings
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no keybindings path configured; pass one")
			}
			if err := refuseOverwrite(path, force); err != nil {
				return err
			}
			if err := config.SaveKeybindings(path, keys.ExportKeybindingConfig()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
