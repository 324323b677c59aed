// Package vcf implements the VCF (variant-call format) text sink.
package vcf

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mewkiz/bgen"
	"github.com/mewkiz/bgen/internal/errs"
	"github.com/mewkiz/bgen/variant"
)

const header = `##fileformat=VCFv4.2
##FORMAT=<ID=GT,Type=String,Number=1,Description="Thresholded genotype call">
##FORMAT=<ID=GP,Type=Float,Number=G,Description="Genotype call probabilities">
##FORMAT=<ID=HP,Type=Float,Number=.,Description="Haplotype call probabilities">
`

const batchSize = 512

// Write streams st through the VCF sink. A workers value <= 1 formats
// records sequentially; a larger value maps the CPU-bound record-to-text
// transformation across a bounded worker pool, batch by batch, while
// preserving output order exactly as produced by st.
func Write(w io.Writer, st *bgen.Stream, workers int) error {
	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, header); err != nil {
		return errs.WrapIO(err, "vcf: write header")
	}
	if _, err := io.WriteString(bw, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT"); err != nil {
		return errs.WrapIO(err, "vcf: write column header")
	}
	for _, s := range st.Samples {
		if _, err := io.WriteString(bw, "\t"+s); err != nil {
			return errs.WrapIO(err, "vcf: write column header")
		}
	}
	if _, err := io.WriteString(bw, "\n"); err != nil {
		return errs.WrapIO(err, "vcf: write column header")
	}

	if workers <= 1 {
		for {
			rec, err := st.Next()
			if err == io.EOF {
				return bw.Flush()
			}
			if err != nil {
				return err
			}
			line, err := formatRecord(*rec)
			if err != nil {
				return err
			}
			if _, err := bw.WriteString(line); err != nil {
				return errs.WrapIO(err, "vcf: write record")
			}
		}
	}
	if err := writeParallel(bw, st, workers); err != nil {
		return err
	}
	return bw.Flush()
}

func writeParallel(bw *bufio.Writer, st *bgen.Stream, workers int) error {
	batch := make([]variant.Record, 0, batchSize)
	for {
		batch = batch[:0]
		for len(batch) < batchSize {
			rec, err := st.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			batch = append(batch, *rec)
		}
		if len(batch) == 0 {
			return nil
		}

		lines := make([]string, len(batch))
		lineErrs := make([]error, len(batch))
		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup
		for i := range batch {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				lines[i], lineErrs[i] = formatRecord(batch[i])
			}(i)
		}
		wg.Wait()

		for i, err := range lineErrs {
			if err != nil {
				return err
			}
			if _, err := bw.WriteString(lines[i]); err != nil {
				return errs.WrapIO(err, "vcf: write record")
			}
		}
		if len(batch) < batchSize {
			return nil
		}
	}
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// roundCall maps a genotype-call probability to 0, 1, or 2 per the
// thresholds [0,0.5]→0, (0.5,1.5]→1, (1.5,2]→2.
func roundCall(f float64) (int, error) {
	switch {
	case f >= 0 && f <= 0.5:
		return 0, nil
	case f > 0.5 && f <= 1.5:
		return 1, nil
	case f > 1.5 && f <= 2:
		return 2, nil
	default:
		return 0, errs.Corruptf("vcf: genotype probability %v out of expected range", f)
	}
}

func formatRecord(rec variant.Record) (string, error) {
	var sb strings.Builder
	sb.WriteString(rec.Chromosome)
	sb.WriteByte('\t')
	sb.WriteString(strconv.FormatUint(uint64(rec.Position), 10))
	sb.WriteByte('\t')
	sb.WriteString(orDot(rec.RSID))
	sb.WriteByte('\t')
	if len(rec.Alleles) > 0 {
		sb.WriteString(rec.Alleles[0])
	}
	sb.WriteByte('\t')
	if len(rec.Alleles) > 1 {
		sb.WriteString(rec.Alleles[1])
	}
	sb.WriteString("\t.\t.\t.\tGT:GP")

	divisor := rec.Data.ProbDivisor()
	taken := 0
	for _, pm := range rec.Data.PloidyMissingness {
		missing := pm&0x80 != 0
		ploidy := int(pm & 0x7F)

		if missing {
			sb.WriteString("\t./.:.")
			continue
		}
		if ploidy != 2 {
			return "", errs.Unsupportedf("vcf: ploidy %d is not supported", ploidy)
		}

		if taken+2 > len(rec.Data.Probabilities) {
			return "", errs.Corruptf("vcf: probability array too short for sample data")
		}
		v0 := float64(rec.Data.Probabilities[taken]) / divisor
		v1 := float64(rec.Data.Probabilities[taken+1]) / divisor
		taken += 2

		var p00, p10, p11 float64
		if rec.Data.Phased {
			h1, h2 := v0, v1
			p00 = h1 * h2
			p11 = (1 - h1) * (1 - h2)
			p10 = 1 - p00 - p11
		} else {
			p00, p10 = v0, v1
			p11 = 1 - p00 - p10
		}

		a, err := roundCall(p11)
		if err != nil {
			return "", err
		}
		b, err := roundCall(p11 + p10)
		if err != nil {
			return "", err
		}

		sb.WriteByte('\t')
		sb.WriteString(strconv.Itoa(a))
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(b))
		sb.WriteByte(':')
		sb.WriteString(formatFloat(p00))
		sb.WriteByte(',')
		sb.WriteString(formatFloat(p10))
		sb.WriteByte(',')
		sb.WriteString(formatFloat(p11))
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}
