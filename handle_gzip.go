package handlekit

import (
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// GZipHandle reads a gzip-compressed file as a seekable stream of its
// decompressed contents. The decompressed length is not recorded reliably
// in the gzip trailer for streams over 4 GiB, so it is measured on demand.
type GZipHandle struct {
	*streamHandle
	path string
}

// NewGZipHandle opens the gzip file at path.
func NewGZipHandle(path string) (*GZipHandle, error) {
	stream, err := newStreamHandle(func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &chainCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	}, -1)
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrNotExist
		}
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}
	return &GZipHandle{streamHandle: stream, path: path}, nil
}

// Name returns the path of the compressed file on disk.
func (h *GZipHandle) Name() string {
	return h.path
}

// Ensure GZipHandle implements Handle
var _ Handle = (*GZipHandle)(nil)
