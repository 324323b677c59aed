// Command bgen reads, filters, rewrites, merges, and indexes
// variant-call containers.
package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mewkiz/bgen/internal/bgenlog"
	"github.com/mewkiz/bgen/internal/errs"
)

var (
	flagFilename      string
	flagVerbose       bool
	flagUseSampleFile bool

	flagInclRange     []string
	flagInclRangeFile string
	flagExclRange     []string
	flagExclRangeFile string
	flagInclRSID      []string
	flagInclRSIDFile  string
	flagExclRSID      []string
	flagExclRSIDFile  string
)

func main() {
	root := &cobra.Command{
		Use:           "bgen",
		Short:         "Read, filter, rewrite, merge, and index variant-call containers",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&flagFilename, "filename", "f", "", "input container path (required)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&flagUseSampleFile, "use-sample-file", false, "load sample ids from the <filename>.sample sidecar")
	root.MarkPersistentFlagRequired("filename")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		bgenlog.SetVerbose(flagVerbose)
	}

	addFilterFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringSliceVar(&flagInclRange, "incl-range", nil, "include records in chr:start-end (repeatable)")
		cmd.Flags().StringVar(&flagInclRangeFile, "incl-range-file", "", "file of newline-separated chr:start-end ranges to include")
		cmd.Flags().StringSliceVar(&flagExclRange, "excl-range", nil, "exclude records in chr:start-end (repeatable)")
		cmd.Flags().StringVar(&flagExclRangeFile, "excl-range-file", "", "file of newline-separated chr:start-end ranges to exclude")
		cmd.Flags().StringSliceVar(&flagInclRSID, "incl-rsid", nil, "include records with this rsid (repeatable)")
		cmd.Flags().StringVar(&flagInclRSIDFile, "incl-rsid-file", "", "file of newline-separated rsids to include")
		cmd.Flags().StringSliceVar(&flagExclRSID, "excl-rsid", nil, "exclude records with this rsid (repeatable)")
		cmd.Flags().StringVar(&flagExclRSIDFile, "excl-rsid-file", "", "file of newline-separated rsids to exclude")
	}

	indexCmd := newIndexCmd()
	listCmd := newListCmd()
	vcfCmd := newVCFCmd()
	bgenCmd := newBgenCmd()
	mergeCmd := newMergeCmd()

	addFilterFlags(listCmd)
	addFilterFlags(vcfCmd)
	addFilterFlags(bgenCmd)

	root.AddCommand(indexCmd, listCmd, vcfCmd, bgenCmd, mergeCmd)

	// runStarted is set once a subcommand's RunE begins; any failure after
	// that point is a runtime failure, classified or not.
	var runStarted bool
	for _, c := range root.Commands() {
		runE := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			runStarted = true
			return runE(cmd, args)
		}
	}

	if err := root.Execute(); err != nil {
		var e *errs.Error
		if stderrors.As(err, &e) || runStarted {
			fmt.Fprintln(os.Stderr, "bgen:", err)
			os.Exit(1)
		}
		// No subcommand ran: cobra rejected the invocation itself.
		// Attach a stack trace at this boundary, the way the teacher's
		// wav2flac CLI does for unclassified errors.
		fmt.Fprintf(os.Stderr, "bgen: %+v\n", errors.WithStack(err))
		os.Exit(2)
	}
}
