package handlekit

import (
	"compress/bzip2"
	"io"
	"os"
)

// BZip2Handle reads a bzip2-compressed file as a seekable stream of its
// decompressed contents. bzip2 carries no length metadata at all, so the
// decompressed length is always measured on demand.
type BZip2Handle struct {
	*streamHandle
	path string
}

// NewBZip2Handle opens the bzip2 file at path.
func NewBZip2Handle(path string) (*BZip2Handle, error) {
	stream, err := newStreamHandle(func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		return &chainCloser{Reader: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
	}, -1)
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrNotExist
		}
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}
	return &BZip2Handle{streamHandle: stream, path: path}, nil
}

// Name returns the path of the compressed file on disk.
func (h *BZip2Handle) Name() string {
	return h.path
}

// Ensure BZip2Handle implements Handle
var _ Handle = (*BZip2Handle)(nil)
