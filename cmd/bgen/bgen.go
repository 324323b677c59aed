package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mewkiz/bgen"
	"github.com/mewkiz/bgen/internal/bgenlog"
	"github.com/mewkiz/bgen/internal/errs"
)

var flagNoSamples bool

func newBgenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bgen <OUT>",
		Short: "Rewrite matching variants into a fresh container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openFilteredStream(false)
			if err != nil {
				return err
			}
			defer st.Close()

			out, err := os.Create(args[0])
			if err != nil {
				return errs.WrapIO(err, "bgen: create %q", args[0])
			}
			defer out.Close()

			rw := bgen.NewRewriter(st)
			rw.SuppressSamples(flagNoSamples)
			survivors, err := rw.WriteTo(out)
			if err != nil {
				return err
			}
			bgenlog.L.Info().Uint32("survivors", survivors).Msg("rewrite complete")
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagNoSamples, "no-samples", false, "omit the embedded sample block from the output")
	return cmd
}
