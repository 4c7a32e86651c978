package main

import (
	"fmt"

	"bizdash/internal/core/period"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newChangeCmd(_ *app) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "change CURRENT PREVIOUS",
		Short: "Print the percentage change from PREVIOUS to CURRENT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("current %q: %w", args[0], err)
			}
			prev, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("previous %q: %w", args[1], err)
			}
			tag, err := language.Parse(lang)
			if err != nil {
				return fmt.Errorf("--lang: %w", err)
			}
			p := message.NewPrinter(tag)
			pct := period.ChangeDecimal(cur, prev)
			_, err = p.Fprintf(cmd.OutOrStdout(), "current %.2f previous %.2f change %s%%\n",
				cur.InexactFloat64(), prev.InexactFloat64(), pct.StringFixed(2))
			return err
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "BCP 47 tag used to group digits")
	return cmd
}
