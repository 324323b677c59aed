// Package wire implements the little-endian scalar and length-prefixed
// string codec shared by the header, sample block, and variant record
// layers, along with the running byte counter the container's offset
// fields are validated against (the source need not be seekable).
package wire

import (
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/mewkiz/bgen/internal/errs"
)

// Reader wraps an io.Reader, tracking the number of bytes consumed so far.
type Reader struct {
	r     io.Reader
	count uint64
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Count returns the number of bytes read (or skipped) so far.
func (r *Reader) Count() uint64 { return r.count }

// Underlying returns the wrapped reader, positioned at the current cursor.
// Used by the Merger to copy a record body verbatim without decoding it.
func (r *Reader) Underlying() io.Reader { return r.r }

func (r *Reader) readFull(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.count += uint64(n)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return errs.WrapCorrupt(err, "unexpected end of input")
		}
		return errs.WrapIO(err, "read failed")
	}
	return nil
}

// ReadFull reads exactly len(buf) bytes into buf.
func (r *Reader) ReadFull(buf []byte) error { return r.readFull(buf) }

// ReadBytes reads and returns exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (uint8, error) {
	var buf [1]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	var buf [2]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (r *Reader) readString(n int) (string, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", errs.Corruptf("invalid utf8")
	}
	return string(buf), nil
}

// ReadString16 reads a u16-length-prefixed UTF-8 string.
func (r *Reader) ReadString16() (string, error) {
	n, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	return r.readString(int(n))
}

// ReadString32 reads a u32-length-prefixed UTF-8 string.
func (r *Reader) ReadString32() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	return r.readString(int(n))
}

// Skip discards n bytes, advancing the counter.
func (r *Reader) Skip(n int) error {
	if n < 0 {
		return errs.Corruptf("negative skip length %d", n)
	}
	if n == 0 {
		return nil
	}
	copied, err := io.CopyN(io.Discard, r.r, int64(n))
	r.count += uint64(copied)
	if err != nil {
		return errs.WrapIO(err, "skip failed")
	}
	return nil
}

// Writer wraps an io.Writer with the symmetric little-endian scalar and
// length-prefixed string codec.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (w *Writer) writeRaw(buf []byte) error {
	if _, err := w.w.Write(buf); err != nil {
		return errs.WrapIO(err, "write failed")
	}
	return nil
}

// WriteRaw writes buf verbatim.
func (w *Writer) WriteRaw(buf []byte) error { return w.writeRaw(buf) }

// WriteU8 writes one byte.
func (w *Writer) WriteU8(v uint8) error { return w.writeRaw([]byte{v}) }

// WriteU16 writes a little-endian uint16.
func (w *Writer) WriteU16(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return w.writeRaw(buf[:])
}

// WriteU32 writes a little-endian uint32.
func (w *Writer) WriteU32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return w.writeRaw(buf[:])
}

// WriteString16 writes a u16-length-prefixed UTF-8 string.
func (w *Writer) WriteString16(s string) error {
	if len(s) > 0xFFFF {
		return errs.Corruptf("string too long for u16 length prefix: %d bytes", len(s))
	}
	if err := w.WriteU16(uint16(len(s))); err != nil {
		return err
	}
	return w.writeRaw([]byte(s))
}

// WriteString32 writes a u32-length-prefixed UTF-8 string.
func (w *Writer) WriteString32(s string) error {
	if err := w.WriteU32(uint32(len(s))); err != nil {
		return err
	}
	return w.writeRaw([]byte(s))
}
