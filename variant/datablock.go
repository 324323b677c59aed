package variant

import (
	"encoding/binary"

	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/bgen/internal/bitpack"
	"github.com/mewkiz/bgen/internal/errs"
	"github.com/mewkiz/bgen/internal/wire"
	"github.com/mewkiz/bgen/internal/zlibcodec"
)

// DataBlock is the per-variant genotype-probability payload.
type DataBlock struct {
	NIndividuals      uint32
	NAlleles          uint16
	MinPloidy         uint8
	MaxPloidy         uint8
	PloidyMissingness []byte // one byte per individual: bit 7 = missing, bits 0-6 = ploidy
	Phased            bool
	BitsPerProb       uint8
	Probabilities     []uint32
}

// ProbDivisor returns the quantization divisor for this block's bit width:
// a stored value v represents the probability v / ProbDivisor().
func (d DataBlock) ProbDivisor() float64 {
	return float64((uint64(1) << d.BitsPerProb) - 1)
}

// readDataBlock reads the data block according to §4.6: a length prefix,
// an optional uncompressed-length prefix, then the (optionally
// decompressed) fixed fields followed by the bit-packed probability array.
func readDataBlock(r *wire.Reader, nInd uint32, compressed bool) (DataBlock, error) {
	length, err := r.ReadU32()
	if err != nil {
		return DataBlock{}, errutil.Err(err)
	}

	var payload []byte
	if compressed {
		uncompressedLen, err := r.ReadU32()
		if err != nil {
			return DataBlock{}, errutil.Err(err)
		}
		if length < 4 {
			return DataBlock{}, errs.Corruptf("data block length %d too small for compressed prefix", length)
		}
		compressedBytes, err := r.ReadBytes(int(length - 4))
		if err != nil {
			return DataBlock{}, errutil.Err(err)
		}
		payload, err = zlibcodec.Decompress(compressedBytes, int(uncompressedLen))
		if err != nil {
			return DataBlock{}, err
		}
	} else {
		payload, err = r.ReadBytes(int(length))
		if err != nil {
			return DataBlock{}, errutil.Err(err)
		}
	}

	return parseDataBlockPayload(payload, nInd)
}

func parseDataBlockPayload(payload []byte, headerSampleNum uint32) (DataBlock, error) {
	if len(payload) < 4+2+1+1 {
		return DataBlock{}, errs.Corruptf("data block payload too short: %d bytes", len(payload))
	}
	pos := 0
	nInd := binary.LittleEndian.Uint32(payload[pos:])
	pos += 4
	if nInd != headerSampleNum {
		return DataBlock{}, errs.Corruptf("data block n_individuals %d does not match header sample_num %d", nInd, headerSampleNum)
	}
	nAlleles := binary.LittleEndian.Uint16(payload[pos:])
	pos += 2
	minPloidy := payload[pos]
	pos++
	maxPloidy := payload[pos]
	pos++

	if len(payload) < pos+int(nInd)+2 {
		return DataBlock{}, errs.Corruptf("data block payload too short for %d samples", nInd)
	}
	ploidyMissingness := make([]byte, nInd)
	copy(ploidyMissingness, payload[pos:pos+int(nInd)])
	pos += int(nInd)

	phasedByte := payload[pos]
	pos++
	if phasedByte != 0 && phasedByte != 1 {
		return DataBlock{}, errs.Corruptf("phased byte invalid: %d", phasedByte)
	}
	phased := phasedByte == 1

	bitsPerProb := payload[pos]
	pos++

	probs, err := bitpack.Unpack(payload[pos:], int(bitsPerProb))
	if err != nil {
		return DataBlock{}, err
	}

	return DataBlock{
		NIndividuals:      nInd,
		NAlleles:          nAlleles,
		MinPloidy:         minPloidy,
		MaxPloidy:         maxPloidy,
		PloidyMissingness: ploidyMissingness,
		Phased:            phased,
		BitsPerProb:       bitsPerProb,
		Probabilities:     probs,
	}, nil
}

// writeDataBlock assembles and emits d, compressing the payload when
// compressed is true. Encoding requires BitsPerProb%8==0.
func writeDataBlock(w *wire.Writer, d DataBlock, compressed bool) error {
	if d.BitsPerProb%8 != 0 {
		return errs.Unsupportedf("bits_per_prob %d is not a multiple of 8", d.BitsPerProb)
	}

	payload := make([]byte, 0, 4+2+1+1+len(d.PloidyMissingness)+1+1+len(d.Probabilities)*int(d.BitsPerProb/8))
	var scratch4 [4]byte
	binary.LittleEndian.PutUint32(scratch4[:], d.NIndividuals)
	payload = append(payload, scratch4[:]...)
	var scratch2 [2]byte
	binary.LittleEndian.PutUint16(scratch2[:], d.NAlleles)
	payload = append(payload, scratch2[:]...)
	payload = append(payload, d.MinPloidy, d.MaxPloidy)
	payload = append(payload, d.PloidyMissingness...)
	phasedByte := byte(0)
	if d.Phased {
		phasedByte = 1
	}
	payload = append(payload, phasedByte, d.BitsPerProb)

	packed, err := bitpack.Pack(d.Probabilities, int(d.BitsPerProb))
	if err != nil {
		return err
	}
	payload = append(payload, packed...)

	if compressed {
		compressedBytes, err := zlibcodec.Compress(payload)
		if err != nil {
			return err
		}
		if err := w.WriteU32(uint32(len(compressedBytes)) + 4); err != nil {
			return errutil.Err(err)
		}
		if err := w.WriteU32(uint32(len(payload))); err != nil {
			return errutil.Err(err)
		}
		if err := w.WriteRaw(compressedBytes); err != nil {
			return errutil.Err(err)
		}
		return nil
	}

	if err := w.WriteU32(uint32(len(payload))); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteRaw(payload); err != nil {
		return errutil.Err(err)
	}
	return nil
}
