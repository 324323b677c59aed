// Package list implements the tab-delimited variant list sink.
package list

import (
	"fmt"
	"io"

	"github.com/mewkiz/bgen"
)

// Mode selects the list sink's output columns.
type Mode int

const (
	// ModeBgenix emits the full fixed column set.
	ModeBgenix Mode = iota
	// ModeRSID emits only the rsid column.
	ModeRSID
)

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}

// Write streams st through the list sink.
func Write(w io.Writer, st *bgen.Stream, mode Mode) error {
	switch mode {
	case ModeRSID:
		fmt.Fprintln(w, "rsid")
	default:
		fmt.Fprintln(w, "alternate_ids\trsid\tchromosome\tposition\tnumber_of_alleles\tfirst_allele\talternative_alleles")
	}

	for {
		rec, err := st.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if mode == ModeRSID {
			fmt.Fprintln(w, orDot(rec.RSID))
			continue
		}
		first, second := "", ""
		if len(rec.Alleles) > 0 {
			first = rec.Alleles[0]
		}
		if len(rec.Alleles) > 1 {
			second = rec.Alleles[1]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			orDot(rec.VariantID), orDot(rec.RSID), rec.Chromosome, rec.Position,
			rec.AlleleCount(), orDot(first), orDot(second))
	}
}
