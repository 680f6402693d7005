package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored block; the next run starts from defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, release, err := g.openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			if err := store.Delete(cmd.Context(), cfg.Name); err != nil {
				return fmt.Errorf("delete %s: %w", cfg.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", cfg.Name)
			return nil
		},
	}
}
