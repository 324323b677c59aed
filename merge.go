package bgen

import (
	"io"

	"github.com/mewkiz/bgen/header"
	"github.com/mewkiz/bgen/internal/errs"
	"github.com/mewkiz/bgen/internal/wire"
)

// Merger concatenates the bodies of several homogeneous containers
// (identical sample sets) into one, without decoding or re-encoding any
// record: each input's body is copied verbatim, preserving
// producer-specific probability encodings bit-exactly.
type Merger struct {
	Paths []string
}

// NewMerger returns a Merger over the given input paths, in the order
// records should appear in the output.
func NewMerger(paths []string) *Merger { return &Merger{Paths: paths} }

// WriteTo writes the merged container to w.
func (m *Merger) WriteTo(w io.Writer) error {
	if len(m.Paths) == 0 {
		return errs.Configf("merge: no input files given")
	}

	var total uint32
	var refSamples []string
	var refHeader header.Header
	for i, p := range m.Paths {
		st, err := OpenFile(p, nil, false)
		if err != nil {
			return err
		}
		if i == 0 {
			refSamples = st.Samples
			refHeader = st.Header
		} else if !sameSamples(refSamples, st.Samples) {
			st.Close()
			return errs.Corruptf("merge: sample sets differ between %s and %s", m.Paths[0], p)
		}
		total += st.Header.VariantNum
		st.Close()
	}

	refHeader.VariantNum = total
	ww := wire.NewWriter(w)
	if err := header.Write(ww, refHeader, refSamples); err != nil {
		return err
	}

	for _, p := range m.Paths {
		st, err := OpenFile(p, nil, false)
		if err != nil {
			return err
		}
		if _, err := st.CopyBodyTo(w); err != nil {
			st.Close()
			return err
		}
		st.Close()
	}
	return nil
}

func sameSamples(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
