package bgen

import (
	"bytes"
	"io"
	"os"

	"github.com/mewkiz/pkg/errutil"
)

// sourceSpec is the tagged envelope {File(path) | Bytes(data)} that lets a
// Stream be reconstructed from scratch without the original byte source
// having been seekable. The Rewriter and Merger rely on this to run a
// second pass.
type sourceSpec struct {
	path string // set iff this is a file source
	data []byte // set iff this is a bytes source
	file bool
}

func fileSourceSpec(path string) sourceSpec {
	return sourceSpec{path: path, file: true}
}

func bytesSourceSpec(data []byte) sourceSpec {
	return sourceSpec{data: data}
}

// open returns a fresh io.ReadCloser over the spec's underlying bytes.
func (sp sourceSpec) open() (io.ReadCloser, error) {
	if sp.file {
		f, err := os.Open(sp.path)
		if err != nil {
			return nil, errutil.Err(err)
		}
		return f, nil
	}
	return io.NopCloser(bytes.NewReader(sp.data)), nil
}
