package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mewkiz/bgen/internal/errs"
	"github.com/mewkiz/bgen/sink/index"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Build a SQLite variant index alongside the container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openFilteredStream(false)
			if err != nil {
				return err
			}
			defer st.Close()

			fi, err := os.Stat(flagFilename)
			if err != nil {
				return errs.WrapIO(err, "index: stat %q", flagFilename)
			}

			f, err := os.Open(flagFilename)
			if err != nil {
				return errs.WrapIO(err, "index: open %q", flagFilename)
			}
			defer f.Close()
			head := make([]byte, 1000)
			n, _ := f.Read(head)

			info := index.FileInfo{
				Filename:      flagFilename,
				FileSize:      fi.Size(),
				LastWriteTime: fi.ModTime().UTC().Format(time.RFC3339),
				First1000:     head[:n],
			}
			return index.Build(flagFilename+".bgi_rust", st, info)
		},
	}
}
