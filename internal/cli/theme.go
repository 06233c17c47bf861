package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/jaskcalc/internal/theme"
)

func newThemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [1|2|3|next]",
		Short:     "Print or set the persisted theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"1", "2", "3", "next"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnv(ctx, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			current, err := theme.Load(ctx, env.themes)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), current.String())
				return nil
			}

			next := current.Next()
			if !strings.EqualFold(args[0], "next") {
				if next, err = theme.ParsePosition(args[0]); err != nil {
					return err
				}
			}
			if err := theme.Save(ctx, env.themes, next); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next.String())
			return nil
		},
	}
}
