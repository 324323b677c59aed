package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mewkiz/bgen/internal/errs"
	"github.com/mewkiz/bgen/sink/list"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [bgenix|rsid]",
		Short: "List variants as tab-delimited text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := list.ModeBgenix
			if len(args) == 1 {
				switch args[0] {
				case "bgenix":
					mode = list.ModeBgenix
				case "rsid":
					mode = list.ModeRSID
				default:
					return errs.Configf("list: unknown mode %q, expected bgenix or rsid", args[0])
				}
			}

			st, err := openFilteredStream(false)
			if err != nil {
				return err
			}
			defer st.Close()

			return list.Write(os.Stdout, st, mode)
		},
	}
}
