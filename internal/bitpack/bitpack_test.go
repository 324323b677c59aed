package bitpack_test

import (
	"testing"

	"github.com/mewkiz/bgen/internal/bitpack"
)

func TestPackUnpackRoundTripByteAligned(t *testing.T) {
	for _, width := range []int{8, 16, 24, 32} {
		width := width
		t.Run("", func(t *testing.T) {
			max := uint64(1)<<uint(width) - 1
			values := []uint32{0, uint32(max), uint32(max / 2), 1, uint32(max - 1)}
			packed, err := bitpack.Pack(values, width)
			if err != nil {
				t.Fatal(err)
			}
			unpacked, err := bitpack.Unpack(packed, width)
			if err != nil {
				t.Fatal(err)
			}
			if len(unpacked) != len(values) {
				t.Fatalf("length mismatch: got %d, want %d", len(unpacked), len(values))
			}
			for i := range values {
				if unpacked[i] != values[i] {
					t.Fatalf("value %d mismatch: got %d, want %d", i, unpacked[i], values[i])
				}
			}
		})
	}
}

func TestUnpackNonByteAlignedWidth(t *testing.T) {
	// Four 10-bit values packed LSB-first: 5 bytes exactly.
	values := []uint32{1023, 0, 512, 1}
	const width = 10
	var bitPos int
	data := make([]byte, (len(values)*width+7)/8)
	for _, v := range values {
		for b := 0; b < width; b++ {
			if v&(1<<uint(b)) != 0 {
				data[bitPos/8] |= 1 << uint(bitPos%8)
			}
			bitPos++
		}
	}
	got, err := bitpack.Unpack(data, width)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(values) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(values))
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("value %d mismatch: got %d, want %d", i, got[i], values[i])
		}
	}
}

func TestPackRejectsNonByteAlignedWidth(t *testing.T) {
	if _, err := bitpack.Pack([]uint32{1, 2, 3}, 10); err == nil {
		t.Fatal("expected an error packing a non-byte-aligned width")
	}
}
