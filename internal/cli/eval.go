package cli

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/jask/jaskcalc/internal/calc"
)

func newEvalCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "eval <keys>",
		Short: "Feed keypad presses through the calculator and print the display",
		Long: `Each character of <keys> is one key press: digits, ".", "+", "-", "/",
"x" or "*", and "=" to evaluate. Whitespace is ignored. Keys starting with
"-" must follow "--" so they are not read as flags.`,
		Example: `  jaskcalc eval '1234*2='
  jaskcalc eval --raw '10/4='
  jaskcalc eval -- -5+3=`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := calc.NewBuffer(nil)
			if err := press(b, strings.Join(args, " ")); err != nil {
				return err
			}
			out := b.Rendered()
			if raw && !b.InError() {
				out = b.Text()
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the unformatted buffer")
	return cmd
}

// press applies every key in keys to b.
func press(b *calc.Buffer, keys string) error {
	for _, r := range keys {
		if unicode.IsSpace(r) {
			continue
		}
		tok, ok := calc.ParseToken(string(r))
		if !ok {
			return fmt.Errorf("unrecognised key %q", r)
		}
		b.Apply(tok)
	}
	return nil
}
