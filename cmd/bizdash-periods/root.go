package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"bizdash/internal/core/period"
	"bizdash/internal/platform/config"

	"github.com/spf13/cobra"
)

// app carries the flags shared by every subcommand
type app struct {
	cfg config.Conf
	tz  string
}

func newRootCmd(cfg config.Conf) *cobra.Command {
	a := &app{cfg: cfg}
	root := &cobra.Command{
		Use:           "bizdash-periods",
		Short:         "Resolve reporting periods into current and comparison windows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.tz, "tz", "", "business time zone (default $BIZ_TIMEZONE or Asia/Manila)")

	root.AddCommand(newResolveCmd(a), newListCmd(a), newChangeCmd(a))
	return root
}

// location prefers --tz, then BIZ_TIMEZONE
func (a *app) location() (*time.Location, error) {
	if a.tz != "" {
		loc, err := time.LoadLocation(a.tz)
		if err != nil {
			return nil, fmt.Errorf("--tz: %w", err)
		}
		return loc, nil
	}
	return a.cfg.Prefix("BIZ_").MayLocation("TIMEZONE", "Asia/Manila"), nil
}

func (a *app) resolver() (period.Resolver, error) {
	loc, err := a.location()
	if err != nil {
		return period.Resolver{}, err
	}
	return period.NewResolver(loc, period.WithSelfCheck(a.cfg.Prefix("BIZ_").MayBool("PERIOD_SELFCHECK", true))), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
