package main

import (
	"fmt"
	"text/tabwriter"

	modkit "bizdash/internal/modkit"
	ptime "bizdash/internal/platform/time"
	periodssvc "bizdash/internal/services/api/periods/service"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List period identifiers with labels and families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.resolver()
			if err != nil {
				return err
			}
			def := modkit.Deps{Cfg: a.cfg}.DefaultPeriod()
			list := periodssvc.New(res, ptime.System(res.Location()), def).List(cmd.Context())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tFAMILY\tTO DATE\tDEFAULT")
			for _, p := range list.Periods {
				mark := ""
				if p.ID == list.Default {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", p.ID, p.Label, p.Family, p.ToDate, mark)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
