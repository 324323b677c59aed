package bgen

import (
	"io"

	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/bgen/header"
	"github.com/mewkiz/bgen/internal/wire"
	"github.com/mewkiz/bgen/variant"
)

// Rewriter re-encodes a stream's filtered records into a fresh container,
// as a two-pass operation (Design Note 2): the non-restartable stream
// asks its source for a second construction rather than rewinding.
type Rewriter struct {
	src             *Stream
	suppressSamples bool
}

// NewRewriter returns a Rewriter over src. src's installed filter (if any)
// determines which records survive into the output.
func NewRewriter(src *Stream) *Rewriter { return &Rewriter{src: src} }

// SuppressSamples controls whether the output embeds a sample block. When
// true, flags.samples_embedded is cleared so Write omits the sample block
// and recomputes StartDataOffset without its overhead.
func (rw *Rewriter) SuppressSamples(v bool) { rw.suppressSamples = v }

// WriteTo runs the count pass then the emit pass, writing the rewritten
// container to w and returning the number of surviving records.
func (rw *Rewriter) WriteTo(w io.Writer) (uint32, error) {
	countStream, err := rw.src.Clone(false)
	if err != nil {
		return 0, err
	}
	defer countStream.Close()
	var survivors uint32
	for {
		_, err := countStream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		survivors++
	}

	emitStream, err := rw.src.Clone(true)
	if err != nil {
		return 0, err
	}
	defer emitStream.Close()

	hdr := emitStream.Header
	hdr.VariantNum = survivors
	samples := emitStream.Samples
	if rw.suppressSamples {
		hdr.Flags.SamplesEmbedded = false
		samples = nil
	}

	ww := wire.NewWriter(w)
	if err := header.Write(ww, hdr, samples); err != nil {
		return 0, err
	}
	for {
		rec, err := emitStream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if err := variant.Write(ww, *rec, hdr.Flags.Compressed); err != nil {
			return 0, errutil.Err(err)
		}
	}
	return survivors, nil
}
