package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/nvram"
	"github.com/spf13/cobra"
)

func newRunCmd(g *globalFlags) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Restore the counters, update them and save on exit",
		Long: `Restore the counters, print them and save them back.

count is incremented every time a stored block is restored cleanly. Fields
given with --set are assigned before saving. A block written by an
incompatible build is left untouched and the command exits with status 1.`,
		Example: "  nvram run --set a=3 --set b=4 --set c=7",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			m, outcome, release, err := g.initialize(cmd)
			if err != nil {
				return err
			}
			defer release()

			return m.Hooks().Run(cmd.Context(), func(ctx context.Context) error {
				r := m.Region()
				if outcome == nvram.OutcomeSuccess {
					r.Count++
				}
				for _, a := range assignments {
					if err := setField(r, a.field, a.value); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restore: %s\n", outcome)
				printCounters(cmd.OutOrStdout(), r)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "assign a field (field=value), repeatable")
	return cmd
}
