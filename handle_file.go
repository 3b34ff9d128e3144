package handlekit

import (
	"os"
)

// FileHandle is the plain local-file backend, a thin veneer over *os.File.
// It is the fallback kind when no mapping, scheme or signature claims an
// identifier.
type FileHandle struct {
	f        *os.File
	writable bool
}

// NewFileHandle opens the file at path. With writable set, the file is
// opened read-write and created when missing; otherwise it is opened
// read-only. Directories are rejected with ErrIsDir.
func NewFileHandle(path string, writable bool) (*FileHandle, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, &PathError{Op: "open", Path: path, Err: ErrIsDir}
	}
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR | os.O_CREATE
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &PathError{Op: "open", Path: path, Err: ErrNotExist}
		}
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}
	return &FileHandle{f: f, writable: writable}, nil
}

// Name returns the path the handle was opened with.
func (h *FileHandle) Name() string {
	return h.f.Name()
}

func (h *FileHandle) Read(p []byte) (int, error) {
	return h.f.Read(p)
}

func (h *FileHandle) ReadAt(p []byte, off int64) (int, error) {
	return h.f.ReadAt(p, off)
}

func (h *FileHandle) Seek(offset int64, whence int) (int64, error) {
	return h.f.Seek(offset, whence)
}

// Length returns the current on-disk size.
func (h *FileHandle) Length() (int64, error) {
	info, err := h.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (h *FileHandle) Write(p []byte) (int, error) {
	if !h.writable {
		return 0, &PathError{Op: "write", Path: h.f.Name(), Err: ErrReadOnly}
	}
	return h.f.Write(p)
}

func (h *FileHandle) WriteAt(p []byte, off int64) (int, error) {
	if !h.writable {
		return 0, &PathError{Op: "write", Path: h.f.Name(), Err: ErrReadOnly}
	}
	return h.f.WriteAt(p, off)
}

func (h *FileHandle) Truncate(size int64) error {
	if !h.writable {
		return &PathError{Op: "truncate", Path: h.f.Name(), Err: ErrReadOnly}
	}
	return h.f.Truncate(size)
}

func (h *FileHandle) Close() error {
	return h.f.Close()
}

// Ensure FileHandle implements Handle and WritableHandle
var (
	_ Handle         = (*FileHandle)(nil)
	_ WritableHandle = (*FileHandle)(nil)
)
