// Package zlibcodec wraps zlib-deflate compression with the
// exact-decoded-length contract the DataBlock codec requires.
package zlibcodec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/mewkiz/bgen/internal/errs"
)

// Decompress inflates data and returns exactly expectedLen bytes, or a
// Corrupt error if the decoder cannot fill that many.
func Decompress(data []byte, expectedLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.WrapCorrupt(err, "zlib: invalid stream")
	}
	defer r.Close()

	buf := make([]byte, expectedLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errs.WrapCorrupt(err, "zlib: read failed")
	}
	if n != expectedLen {
		return nil, errs.Corruptf("decompression failed: got %d bytes, want %d", n, expectedLen)
	}
	return buf, nil
}

// Compress deflates data using the zlib wrapper at a fast compression
// level, matching the container's compatibility requirement (zlib-deflate
// framing, not raw deflate).
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, errs.WrapIO(err, "zlib: create writer")
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, errs.WrapIO(err, "zlib: write")
	}
	if err := w.Close(); err != nil {
		return nil, errs.WrapIO(err, "zlib: close")
	}
	return buf.Bytes(), nil
}
