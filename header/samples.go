package header

import (
	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/bgen/internal/errs"
	"github.com/mewkiz/bgen/internal/wire"
)

// ReadSampleBlock reads the optional sample-id table: a redundant total
// byte length, a count that must equal sampleNum, then count u16-prefixed
// UTF-8 ids. If preSupplied is non-empty the embedded ids must equal it
// exactly (e.g. when the caller already loaded a .sample sidecar).
func ReadSampleBlock(r *wire.Reader, sampleNum uint32, preSupplied []string) ([]string, error) {
	if _, err := r.ReadU32(); err != nil { // block_byte_length, not otherwise validated
		return nil, errutil.Err(err)
	}
	count, err := r.ReadU32()
	if err != nil {
		return nil, errutil.Err(err)
	}
	if count != sampleNum {
		return nil, errs.Corruptf("sample block count %d does not match header sample_num %d", count, sampleNum)
	}
	ids := make([]string, count)
	for i := range ids {
		s, err := r.ReadString16()
		if err != nil {
			return nil, errutil.Err(err)
		}
		ids[i] = s
	}
	if len(preSupplied) > 0 && !stringsEqual(ids, preSupplied) {
		return nil, errs.Corruptf("sample mismatch")
	}
	return ids, nil
}

// WriteSampleBlock emits the inverse of ReadSampleBlock.
func WriteSampleBlock(w *wire.Writer, samples []string) error {
	overhead := SampleBlockOverhead(samples)
	if err := w.WriteU32(overhead); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteU32(uint32(len(samples))); err != nil {
		return errutil.Err(err)
	}
	for _, s := range samples {
		if err := w.WriteString16(s); err != nil {
			return errutil.Err(err)
		}
	}
	return nil
}

func stringsEqual(a, b []string) bool {
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
