package main

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mewkiz/bgen/internal/errs"
	"github.com/mewkiz/bgen/sink/vcf"
)

func newVCFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vcf <OUT>",
		Short: "Emit matching variants as VCF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openFilteredStream(true)
			if err != nil {
				return err
			}
			defer st.Close()

			out, err := os.Create(args[0])
			if err != nil {
				return errs.WrapIO(err, "vcf: create %q", args[0])
			}
			defer out.Close()

			return vcf.Write(out, st, runtime.GOMAXPROCS(0))
		},
	}
}
