// Package variant implements the per-variant record and its DataBlock
// sub-payload.
package variant

import (
	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/bgen/header"
	"github.com/mewkiz/bgen/internal/errs"
	"github.com/mewkiz/bgen/internal/wire"
)

// Record is one variant: its metadata plus its DataBlock.
type Record struct {
	StartOffset uint64
	ByteSize    uint64

	VariantID  string
	RSID       string
	Chromosome string
	Position   uint32
	Alleles    []string

	Data DataBlock
}

// AlleleCount returns the number of alleles recorded for this variant.
func (r Record) AlleleCount() uint16 { return uint16(len(r.Alleles)) }

// Read parses one variant record. In skip mode (decodePayload==false) the
// DataBlock is not decoded: only its length prefix is read and the payload
// bytes are discarded, producing a zero-valued DataBlock. ByteSize always
// reflects the true on-wire length of the record, in either mode.
func Read(r *wire.Reader, sampleNum uint32, flags header.Flags, decodePayload bool) (Record, error) {
	start := r.Count()

	if flags.Layout != 2 {
		return Record{}, errs.Unsupportedf("layout %d is not supported for record decoding", flags.Layout)
	}

	id, err := r.ReadString16()
	if err != nil {
		return Record{}, errutil.Err(err)
	}
	rsid, err := r.ReadString16()
	if err != nil {
		return Record{}, errutil.Err(err)
	}
	chr, err := r.ReadString16()
	if err != nil {
		return Record{}, errutil.Err(err)
	}
	pos, err := r.ReadU32()
	if err != nil {
		return Record{}, errutil.Err(err)
	}
	alleleCount, err := r.ReadU16()
	if err != nil {
		return Record{}, errutil.Err(err)
	}
	if alleleCount < 2 {
		return Record{}, errs.Corruptf("allele_count %d < 2", alleleCount)
	}
	alleles := make([]string, alleleCount)
	for i := range alleles {
		a, err := r.ReadString32()
		if err != nil {
			return Record{}, errutil.Err(err)
		}
		alleles[i] = a
	}

	var data DataBlock
	if decodePayload {
		data, err = readDataBlock(r, sampleNum, flags.Compressed)
		if err != nil {
			return Record{}, err
		}
	} else {
		length, err := r.ReadU32()
		if err != nil {
			return Record{}, errutil.Err(err)
		}
		if err := r.Skip(int(length)); err != nil {
			return Record{}, errutil.Err(err)
		}
	}

	rec := Record{
		StartOffset: start,
		ByteSize:    r.Count() - start,
		VariantID:   id,
		RSID:        rsid,
		Chromosome:  chr,
		Position:    pos,
		Alleles:     alleles,
		Data:        data,
	}
	return rec, nil
}

// Write emits rec's metadata and re-encodes its DataBlock.
func Write(w *wire.Writer, rec Record, compressed bool) error {
	if err := w.WriteString16(rec.VariantID); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteString16(rec.RSID); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteString16(rec.Chromosome); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteU32(rec.Position); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteU16(rec.AlleleCount()); err != nil {
		return errutil.Err(err)
	}
	for _, a := range rec.Alleles {
		if err := w.WriteString32(a); err != nil {
			return errutil.Err(err)
		}
	}
	return writeDataBlock(w, rec.Data, compressed)
}
