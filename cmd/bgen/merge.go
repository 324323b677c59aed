package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mewkiz/bgen"
	"github.com/mewkiz/bgen/internal/errs"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <LIST-FILE> <OUT>",
		Short: "Byte-exact merge of homogeneous containers listed one per line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := readPathList(args[0])
			if err != nil {
				return err
			}

			out, err := os.Create(args[1])
			if err != nil {
				return errs.WrapIO(err, "merge: create %q", args[1])
			}
			defer out.Close()

			return bgen.NewMerger(paths).WriteTo(out)
		},
	}
}

func readPathList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.WrapIO(err, "merge: open list file %q", path)
	}
	defer f.Close()

	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.WrapIO(err, "merge: read list file %q", path)
	}
	if len(paths) == 0 {
		return nil, errs.Configf("merge: list file %q contains no paths", path)
	}
	return paths, nil
}
