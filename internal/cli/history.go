package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/database/repository"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the calculation tape, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHistory(cmd, opts, func(repo *repository.HistoryRepo) error {
				ctx := cmd.Context()
				n, err := repo.Count(ctx)
				if err != nil {
					return fmt.Errorf("count history: %w", err)
				}
				entries, err := repo.Recent(ctx, limit)
				if err != nil {
					return fmt.Errorf("load history: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%d entries\n", n)
				for _, e := range entries {
					fmt.Fprintf(out, "%s = %s\n", calc.Format(e.Expression), calc.Format(e.Result))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "entries to print (0 for all)")
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every tape entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHistory(cmd, opts, func(repo *repository.HistoryRepo) error {
				if err := repo.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			})
		},
	})
	return cmd
}

func withHistory(cmd *cobra.Command, opts *rootOptions, fn func(*repository.HistoryRepo) error) error {
	env, err := openEnv(cmd.Context(), opts, false)
	if err != nil {
		return err
	}
	defer env.Close()
	if env.db == nil {
		return fmt.Errorf("history requires the %q storage backend", "sqlite")
	}
	return fn(repository.NewHistoryRepo(env.db))
}
