// Package header parses and emits the container's fixed-prefix header and
// optional sample-id block.
package header

import (
	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/bgen/internal/bgenlog"
	"github.com/mewkiz/bgen/internal/errs"
	"github.com/mewkiz/bgen/internal/wire"
)

// Magic is the four-byte format tag. A header may instead carry four zero
// bytes, in which case the magic check is skipped.
const Magic = "bgen"

// Flags is the decoded flag word.
type Flags struct {
	Compressed      bool
	Layout          uint8 // 1 or 2
	SamplesEmbedded bool
}

func flagsFromU32(v uint32) Flags {
	return Flags{
		Compressed:      v&1 == 1,
		Layout:          uint8((v>>2)&3) + 1,
		SamplesEmbedded: (v>>31)&1 == 1,
	}
}

func (f Flags) toU32() uint32 {
	var v uint32
	if f.Compressed {
		v |= 1
	}
	v |= (uint32(f.Layout-1) & 3) << 2
	if f.SamplesEmbedded {
		v |= 1 << 31
	}
	return v
}

// Header is the container's fixed-prefix header.
type Header struct {
	StartDataOffset uint32
	HeaderSize      uint32
	VariantNum      uint32
	SampleNum       uint32
	Flags           Flags
}

var zeroMagic = [4]byte{}

// Read parses the header and, if present, the sample block. preSamples, if
// non-empty, must equal the embedded sample ids exactly (sidecar-supplied
// samples take precedence as the source of truth to compare against).
//
// After a successful read the wire cursor lies exactly at
// StartDataOffset+4; a cursor that undershoots that offset is logged and
// skipped (many producers leave extra bytes), one that overshoots it is
// corrupt input.
func Read(r *wire.Reader, preSamples []string) (Header, []string, error) {
	startDataOffset, err := r.ReadU32()
	if err != nil {
		return Header{}, nil, errutil.Err(err)
	}
	headerSize, err := r.ReadU32()
	if err != nil {
		return Header{}, nil, errutil.Err(err)
	}
	if headerSize < 20 {
		return Header{}, nil, errs.Corruptf("header_size %d < 20", headerSize)
	}
	variantNum, err := r.ReadU32()
	if err != nil {
		return Header{}, nil, errutil.Err(err)
	}
	if variantNum == 0 {
		return Header{}, nil, errs.Corruptf("variant_num is 0")
	}
	sampleNum, err := r.ReadU32()
	if err != nil {
		return Header{}, nil, errutil.Err(err)
	}
	if sampleNum == 0 {
		return Header{}, nil, errs.Corruptf("sample_num is 0")
	}
	magic, err := r.ReadBytes(4)
	if err != nil {
		return Header{}, nil, errutil.Err(err)
	}
	if string(magic) != Magic && !bytesEqual(magic, zeroMagic[:]) {
		return Header{}, nil, errs.Corruptf("invalid magic %q", magic)
	}
	if err := r.Skip(int(headerSize) - 20); err != nil {
		return Header{}, nil, errutil.Err(err)
	}
	flagWord, err := r.ReadU32()
	if err != nil {
		return Header{}, nil, errutil.Err(err)
	}
	flags := flagsFromU32(flagWord)

	var samples []string
	if flags.SamplesEmbedded {
		samples, err = ReadSampleBlock(r, sampleNum, preSamples)
		if err != nil {
			return Header{}, nil, err
		}
	}

	want := uint64(startDataOffset) + 4
	got := r.Count()
	switch {
	case got < want:
		bgenlog.L.Warn().Uint64("cursor", got).Uint64("start_data_offset_plus_4", want).Msg("header: cursor undershoots declared start_data_offset, skipping residual")
		if err := r.Skip(int(want - got)); err != nil {
			return Header{}, nil, errutil.Err(err)
		}
	case got > want:
		return Header{}, nil, errs.Corruptf("header/samples overran declared start_data_offset: at %d bytes, expected %d", got, want)
	}

	hdr := Header{
		StartDataOffset: startDataOffset,
		HeaderSize:      headerSize,
		VariantNum:      variantNum,
		SampleNum:       sampleNum,
		Flags:           flags,
	}
	return hdr, samples, nil
}

// Write emits h's header area and, if SamplesEmbedded, the sample block.
// The emitted header_size is always 20: a rewriter never retains whatever
// reserved-area content the source carried, so it must not claim a
// header_size that implies bytes it does not actually write. StartDataOffset
// is likewise recomputed from what Write actually emits rather than taken
// from h, so it stays correct even when h was decoded from a source whose
// header_size was greater than 20.
func Write(w *wire.Writer, h Header, samples []string) error {
	startDataOffset := uint32(20)
	if h.Flags.SamplesEmbedded {
		startDataOffset += SampleBlockOverhead(samples)
	}
	if err := w.WriteU32(startDataOffset); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteU32(20); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteU32(h.VariantNum); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteU32(h.SampleNum); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteRaw([]byte(Magic)); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteU32(h.Flags.toU32()); err != nil {
		return errutil.Err(err)
	}
	if h.Flags.SamplesEmbedded {
		if err := WriteSampleBlock(w, samples); err != nil {
			return err
		}
	}
	return nil
}

// SampleBlockOverhead returns the number of bytes the sample block for the
// given samples would occupy on the wire. Write adds it to StartDataOffset
// when the sample block is embedded, and WriteSampleBlock emits it as the
// block's length field.
func SampleBlockOverhead(samples []string) uint32 {
	var sum uint32
	for _, s := range samples {
		sum += uint32(len(s)) + 2
	}
	return 8 + sum
}

func bytesEqual(a, b []byte) bool {
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
