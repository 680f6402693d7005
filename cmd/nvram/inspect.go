package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/nvram/codec"
	"github.com/hupe1980/nvram/internal/block"
	"github.com/hupe1980/nvram/persistence"
	"github.com/spf13/cobra"
)

// inspectReport describes a stored block without modifying it.
type inspectReport struct {
	Store     string        `json:"store"`
	Backend   string        `json:"backend"`
	Size      int           `json:"size"`
	Format    string        `json:"format,omitempty"`
	Version   uint64        `json:"version"`
	ByteOrder string        `json:"byte_order"`
	Valid     bool          `json:"valid"`
	Problem   string        `json:"problem,omitempty"`
	Fields    *countersView `json:"fields,omitempty"`
}

func newInspectCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the stored block without changing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, release, err := g.openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			layout, err := persistence.LayoutOf[Counters]()
			if err != nil {
				return err
			}

			report := inspectReport{
				Store:     cfg.Name,
				Backend:   cfg.Backend,
				Size:      layout.Size,
				ByteOrder: persistence.ByteOrderName(),
			}

			buf := make([]byte, layout.Size)
			if err := block.Transfer(cmd.Context(), store, buf, layout.Size, cfg.Name, block.Read); err != nil {
				report.Problem = err.Error()
				return render(cmd.OutOrStdout(), format, report)
			}

			h, _ := persistence.DecodeHeader(buf)
			report.Format = fmt.Sprintf("0x%016x", h.Format)
			report.Version = h.Version

			if err := persistence.Validate(persistence.NewHeader(regionVersion), h); err != nil {
				report.Problem = err.Error()
				return render(cmd.OutOrStdout(), format, report)
			}

			var r Counters
			if _, err := persistence.Decode(buf, &r); err != nil {
				return err
			}
			v := r.view()
			report.Valid = true
			report.Fields = &v
			return render(cmd.OutOrStdout(), format, report)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text or json)")
	return cmd
}

func render(w io.Writer, format string, r inspectReport) error {
	switch format {
	case "json":
		b, err := codec.MarshalIndent(codec.Default, r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "text":
		fmt.Fprintf(w, "store:      %s (%s)\n", r.Store, r.Backend)
		fmt.Fprintf(w, "size:       %d bytes\n", r.Size)
		fmt.Fprintf(w, "byte order: %s\n", r.ByteOrder)
		if r.Format != "" {
			fmt.Fprintf(w, "format:     %s\n", r.Format)
			fmt.Fprintf(w, "version:    %d\n", r.Version)
		}
		if !r.Valid {
			fmt.Fprintf(w, "status:     invalid: %s\n", r.Problem)
			return nil
		}
		fmt.Fprintln(w, "status:     valid")
		fmt.Fprintf(w, "a: %d\nb: %d\nc: %d\ncount: %d\nbuffer: %q\n",
			r.Fields.A, r.Fields.B, r.Fields.C, r.Fields.Count, r.Fields.Buffer)
		return nil
	default:
		return errors.New("unknown format " + format + " (want text or json)")
	}
}
