package main

import (
	"fmt"

	"github.com/hupe1980/nvram/persistence"
	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the byte layout of the stored block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := persistence.LayoutOf[Counters]()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, layout.String())
			fmt.Fprintf(out, "format tag 0x%016x, version %d, %s\n",
				persistence.FormatTag, regionVersion, persistence.PlatformInfo())
			return nil
		},
	}
}
