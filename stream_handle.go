package handlekit

import (
	"errors"
	"io"
)

// streamHandle adapts a forward-only decompressed stream to the Handle
// interface. Reads advance a tracked position; seeking backward reopens the
// stream from offset zero and skips forward, the only general strategy for
// compressed data without an index. The zip, gzip and bzip2 handles all
// build on it.
type streamHandle struct {
	open   func() (io.ReadCloser, error)
	rc     io.ReadCloser
	pos    int64
	length int64
	closed bool
}

// newStreamHandle opens the first stream eagerly so construction fails fast
// on unreadable resources. Pass length -1 when the decompressed size is not
// known up front; Length then measures it on demand.
func newStreamHandle(open func() (io.ReadCloser, error), length int64) (*streamHandle, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	return &streamHandle{open: open, rc: rc, length: length}, nil
}

func (h *streamHandle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	n, err := h.rc.Read(p)
	h.pos += int64(n)
	return n, err
}

func (h *streamHandle) Seek(offset int64, whence int) (int64, error) {
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
		size, err := h.Length()
		if err != nil {
			return 0, err
		}
		target = size + offset
	default:
		return 0, ErrInvalidWhence
	}
	if target < 0 {
		return 0, ErrInvalidOffset
	}
	if err := h.moveTo(target); err != nil {
		return 0, err
	}
	return h.pos, nil
}

// ReadAt preserves the current stream position. A backward offset forces a
// reopen-and-skip, so random access over compressed data costs linear time.
func (h *streamHandle) ReadAt(p []byte, off int64) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	saved := h.pos
	if err := h.moveTo(off); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(h.rc, p)
	h.pos += int64(n)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	if rerr := h.moveTo(saved); rerr != nil && err == nil {
		err = rerr
	}
	return n, err
}

func (h *streamHandle) Length() (int64, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if h.length < 0 {
		rc, err := h.open()
		if err != nil {
			return 0, err
		}
		defer rc.Close()
		n, err := io.Copy(io.Discard, rc)
		if err != nil {
			return 0, err
		}
		h.length = n
	}
	return h.length, nil
}

func (h *streamHandle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.rc.Close()
}

// moveTo positions the stream at target. Seeking past the end is allowed;
// reads there report EOF, mirroring file semantics.
func (h *streamHandle) moveTo(target int64) error {
	if target < h.pos {
		if err := h.reopen(); err != nil {
			return err
		}
	}
	for h.pos < target {
		n, err := io.CopyN(io.Discard, h.rc, target-h.pos)
		h.pos += n
		if err == io.EOF {
			h.pos = target
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *streamHandle) reopen() error {
	if err := h.rc.Close(); err != nil {
		return err
	}
	rc, err := h.open()
	if err != nil {
		return err
	}
	h.rc = rc
	h.pos = 0
	return nil
}

// chainCloser bundles a decompressor with the stream it draws from so both
// release together.
type chainCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *chainCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
