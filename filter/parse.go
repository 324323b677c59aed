package filter

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mewkiz/bgen/internal/errs"
)

// ParseRange parses the "chr:start-end" grammar named in the CLI surface.
func ParseRange(s string) (Range, error) {
	chrRest := strings.SplitN(s, ":", 2)
	if len(chrRest) != 2 {
		return Range{}, errs.Filterf("malformed range expression %q: expected chr:start-end", s)
	}
	startEnd := strings.SplitN(chrRest[1], "-", 2)
	if len(startEnd) != 2 {
		return Range{}, errs.Filterf("malformed range expression %q: expected chr:start-end", s)
	}
	start, err := strconv.ParseUint(startEnd[0], 10, 32)
	if err != nil {
		return Range{}, errs.WrapFilter(err, "malformed range start in %q", s)
	}
	end, err := strconv.ParseUint(startEnd[1], 10, 32)
	if err != nil {
		return Range{}, errs.WrapFilter(err, "malformed range end in %q", s)
	}
	if start > end {
		return Range{}, errs.Filterf("malformed range expression %q: start > end", s)
	}
	return Range{Chr: chrRest[0], Start: uint32(start), End: uint32(end)}, nil
}

// ReadRangeFile parses a newline-separated file of "chr:start-end" entries.
func ReadRangeFile(path string) ([]Range, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	ranges := make([]Range, 0, len(lines))
	for _, line := range lines {
		r, err := ParseRange(line)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// ReadRSIDFile parses a newline-separated file of rsids.
func ReadRSIDFile(path string) ([]string, error) {
	return readLines(path)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.WrapFilter(err, "unable to open filter file %q", path)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return nil, errs.WrapFilter(err, "error reading filter file %q", path)
	}
	return lines, nil
}
