package handlekit

import (
	"io"
)

// BytesHandle is an in-memory random-access handle backed by a growable
// buffer. It is the natural override to register through MapHandle when a
// dataset member lives in memory rather than on disk. The zero value is an
// empty writable buffer.
type BytesHandle struct {
	buf    []byte
	pos    int64
	closed bool
}

// NewBytesHandle creates a handle seeded with a copy of data.
func NewBytesHandle(data []byte) *BytesHandle {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &BytesHandle{buf: buf}
}

// Bytes returns the current contents. The slice aliases the handle's
// buffer and is only valid until the next write.
func (h *BytesHandle) Bytes() []byte {
	return h.buf
}

func (h *BytesHandle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if h.pos >= int64(len(h.buf)) {
		return 0, io.EOF
	}
	n := copy(p, h.buf[h.pos:])
	h.pos += int64(n)
	return n, nil
}

func (h *BytesHandle) ReadAt(p []byte, off int64) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(h.buf)) {
		return 0, io.EOF
	}
	n := copy(p, h.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (h *BytesHandle) Seek(offset int64, whence int) (int64, error) {
	if h.closed {
		return 0, ErrClosed
	}
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = h.pos + offset
	case io.SeekEnd:
		target = int64(len(h.buf)) + offset
	default:
		return 0, ErrInvalidWhence
	}
	if target < 0 {
		return 0, ErrInvalidOffset
	}
	h.pos = target
	return target, nil
}

func (h *BytesHandle) Length() (int64, error) {
	if h.closed {
		return 0, ErrClosed
	}
	return int64(len(h.buf)), nil
}

func (h *BytesHandle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	h.grow(h.pos + int64(len(p)))
	n := copy(h.buf[h.pos:], p)
	h.pos += int64(n)
	return n, nil
}

func (h *BytesHandle) WriteAt(p []byte, off int64) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	h.grow(off + int64(len(p)))
	return copy(h.buf[off:], p), nil
}

func (h *BytesHandle) Truncate(size int64) error {
	if h.closed {
		return ErrClosed
	}
	if size < 0 {
		return ErrInvalidSize
	}
	if size <= int64(len(h.buf)) {
		h.buf = h.buf[:size]
		return nil
	}
	h.grow(size)
	return nil
}

func (h *BytesHandle) Close() error {
	h.closed = true
	return nil
}

// grow extends the buffer to size bytes, zero-filling the gap.
func (h *BytesHandle) grow(size int64) {
	if size <= int64(len(h.buf)) {
		return
	}
	if size <= int64(cap(h.buf)) {
		// Reslicing within capacity resurfaces whatever a shrink left
		// behind, so the revealed span must be cleared by hand.
		prev := len(h.buf)
		h.buf = h.buf[:size]
		clear(h.buf[prev:])
		return
	}
	buf := make([]byte, size)
	copy(buf, h.buf)
	h.buf = buf
}

// Ensure BytesHandle implements Handle and WritableHandle
var (
	_ Handle         = (*BytesHandle)(nil)
	_ WritableHandle = (*BytesHandle)(nil)
)
