package zlibcodec_test

import (
	"bytes"
	"testing"

	"github.com/mewkiz/bgen/internal/zlibcodec"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	want := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 50)
	compressed, err := zlibcodec.Compress(want)
	if err != nil {
		t.Fatal(err)
	}
	got, err := zlibcodec.Decompress(compressed, len(want))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(want))
	}
}

func TestDecompressWrongExpectedLengthFails(t *testing.T) {
	want := []byte("hello, world")
	compressed, err := zlibcodec.Compress(want)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zlibcodec.Decompress(compressed, len(want)+10); err == nil {
		t.Fatal("expected an error for a mismatched expected length")
	}
}
