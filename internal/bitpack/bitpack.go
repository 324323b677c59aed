// Package bitpack implements the variable-width integer array codec used
// by the DataBlock's probability payload: byte-aligned chunking when the
// width is a multiple of 8, and a LSB-first bit-stream cursor otherwise.
package bitpack

import (
	"sync"

	"github.com/mewkiz/bgen/internal/bgenlog"
	"github.com/mewkiz/bgen/internal/errs"
)

var warnNonByteAligned sync.Once

// Unpack decodes data into a slice of unsigned integers of the given bit
// width. Widths that are a multiple of 8 are unpacked as little-endian byte
// chunks. Other widths are read as a LSB-first bit-stream, as required for
// non-byte-aligned producers; on first use of that path a warning is logged
// once per process.
func Unpack(data []byte, width int) ([]uint32, error) {
	if width <= 0 || width > 32 {
		return nil, errs.Unsupportedf("bitpack: width %d out of range", width)
	}
	if width%8 == 0 {
		chunk := width / 8
		if len(data)%chunk != 0 {
			return nil, errs.Corruptf("bitpack: buffer length %d is not a multiple of chunk size %d", len(data), chunk)
		}
		n := len(data) / chunk
		out := make([]uint32, n)
		for i := 0; i < n; i++ {
			var v uint32
			for b := 0; b < chunk; b++ {
				v |= uint32(data[i*chunk+b]) << uint(8*b)
			}
			out[i] = v
		}
		return out, nil
	}

	warnNonByteAligned.Do(func() {
		bgenlog.L.Warn().Int("width", width).Msg("bitpack: non-byte-aligned probability width, falling back to bit-stream cursor")
	})

	totalBits := len(data) * 8
	n := totalBits / width
	out := make([]uint32, n)
	bitPos := 0
	for i := 0; i < n; i++ {
		var v uint32
		for b := 0; b < width; b++ {
			byteIdx := bitPos / 8
			bitIdx := uint(bitPos % 8)
			bit := (data[byteIdx] >> bitIdx) & 1
			v |= uint32(bit) << uint(b)
			bitPos++
		}
		out[i] = v
	}
	return out, nil
}

// Pack encodes values as little-endian byte chunks of the given bit width.
// Only widths that are a multiple of 8 are supported on the encode path;
// the caller is expected to have validated this already (bits_per_prob%8!=0
// is an Unsupported configuration, not a Pack-time surprise), but Pack
// still guards it defensively.
func Pack(values []uint32, width int) ([]byte, error) {
	if width <= 0 || width > 32 || width%8 != 0 {
		return nil, errs.Unsupportedf("bitpack: width %d must be a positive multiple of 8 to encode", width)
	}
	chunk := width / 8
	out := make([]byte, len(values)*chunk)
	for i, v := range values {
		for b := 0; b < chunk; b++ {
			out[i*chunk+b] = byte(v >> uint(8*b))
		}
	}
	return out, nil
}
