// Package bgen implements a reader, writer, filter, merger, and indexer
// for a binary container format storing genetic variants and their
// per-sample genotype-probability data.
//
// The hard part, and the one this package owns directly, is the binary
// codec and streaming pipeline: header and sample-block decoding,
// per-variant record parsing (including the bit-packed probability
// payload), a streaming filter/iterator with a one-variant-in,
// one-variant-out contract, symmetric re-encoding, and byte-exact
// multi-file merging. Filter-expression parsing, the SQL index writer,
// and the VCF emitter live in the filter and sink packages, each
// consuming a Stream through its public interface.
package bgen

import (
	"bufio"
	"io"

	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/bgen/filter"
	"github.com/mewkiz/bgen/header"
	"github.com/mewkiz/bgen/internal/wire"
	"github.com/mewkiz/bgen/variant"
)

// Stream is a lazy, finite, single-threaded, pull-based sequence of
// decoded variant records. It is not restartable; call Clone to scan the
// same data again.
type Stream struct {
	spec          sourceSpec
	closer        io.Closer
	wr            *wire.Reader
	decodePayload bool
	filter        *filter.Set

	Header  header.Header
	Samples []string

	consumed uint32
	err      error
}

// Open opens a file source, decoding each record's probability payload as
// well as its metadata. Use OpenFile for full control.
func Open(path string) (*Stream, error) {
	return OpenFile(path, nil, true)
}

// OpenFile opens a file source. preSamples, if non-empty, must equal the
// embedded sample block exactly. decodePayload selects skip mode.
func OpenFile(path string, preSamples []string, decodePayload bool) (*Stream, error) {
	return newStream(fileSourceSpec(path), preSamples, decodePayload)
}

// OpenBytes opens an in-memory source.
func OpenBytes(data []byte, decodePayload bool) (*Stream, error) {
	return newStream(bytesSourceSpec(data), nil, decodePayload)
}

func newStream(spec sourceSpec, preSamples []string, decodePayload bool) (*Stream, error) {
	rc, err := spec.open()
	if err != nil {
		return nil, err
	}
	wr := wire.NewReader(bufio.NewReader(rc))
	hdr, samples, err := header.Read(wr, preSamples)
	if err != nil {
		rc.Close()
		return nil, err
	}
	return &Stream{
		spec:          spec,
		closer:        rc,
		wr:            wr,
		decodePayload: decodePayload,
		Header:        hdr,
		Samples:       samples,
	}, nil
}

// SetFilter installs a FilterSet. Next only yields records that match it.
func (s *Stream) SetFilter(f *filter.Set) { s.filter = f }

// Clone constructs a fresh Stream over the same underlying source
// (reopening the file, or re-reading the same in-memory bytes), carrying
// over the installed filter. Used by the Rewriter and Merger, which each
// need an independent pass over the same data.
func (s *Stream) Clone(decodePayload bool) (*Stream, error) {
	ns, err := newStream(s.spec, nil, decodePayload)
	if err != nil {
		return nil, err
	}
	ns.filter = s.filter
	return ns, nil
}

// Next returns the next record matching the installed filter, or
// (nil, io.EOF) once header.VariantNum records have been consumed from the
// source. Every record consumed (whether or not it is yielded) advances
// the cursor; a decode error terminates the sequence permanently.
func (s *Stream) Next() (*variant.Record, error) {
	if s.err != nil {
		return nil, io.EOF
	}
	for s.consumed < s.Header.VariantNum {
		rec, err := variant.Read(s.wr, s.Header.SampleNum, s.Header.Flags, s.decodePayload)
		s.consumed++
		if err != nil {
			s.err = err
			return nil, err
		}
		if s.filter == nil || s.filter.Matches(rec.Chromosome, rec.Position, rec.RSID) {
			return &rec, nil
		}
	}
	return nil, io.EOF
}

// CopyBodyTo copies every remaining byte of the underlying source
// (starting at the current cursor) verbatim to w, without decoding. Used
// by the Merger to concatenate record bodies without a decode/encode
// round trip.
func (s *Stream) CopyBodyTo(w io.Writer) (int64, error) {
	n, err := io.Copy(w, s.wr.Underlying())
	if err != nil {
		return n, errutil.Err(err)
	}
	return n, nil
}

// Close releases the underlying source.
func (s *Stream) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
