package bgen

import (
	"bufio"
	"os"
	"strings"

	"github.com/mewkiz/pkg/errutil"
)

// LoadSidecarSamples reads the <bgenPath>.sample sidecar file: it discards
// the file's own header and type-declaration lines (the first two lines),
// then for each remaining line joins the first two whitespace-separated
// fields with a single space to form one sample id, in file order.
func LoadSidecarSamples(bgenPath string) ([]string, error) {
	f, err := os.Open(bgenPath + ".sample")
	if err != nil {
		return nil, errutil.Err(err)
	}
	defer f.Close()

	var samples []string
	sc := bufio.NewScanner(f)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		if lineNum <= 2 {
			continue
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errutil.Newf("bgen: malformed .sample line %d: %q", lineNum, line)
		}
		samples = append(samples, fields[0]+" "+fields[1])
	}
	if err := sc.Err(); err != nil {
		return nil, errutil.Err(err)
	}
	return samples, nil
}
