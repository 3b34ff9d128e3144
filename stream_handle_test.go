package handlekit

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// countingOpener builds streamHandle open funcs over a fixed string and
// records how many times the stream was (re)opened.
type countingOpener struct {
	content string
	opens   int
}

func (c *countingOpener) open() (io.ReadCloser, error) {
	c.opens++
	return io.NopCloser(strings.NewReader(c.content)), nil
}

func TestStreamHandleSequentialRead(t *testing.T) {
	op := &countingOpener{content: "0123456789"}
	h, err := newStreamHandle(op.open, int64(len(op.content)))
	if err != nil {
		t.Fatalf("newStreamHandle() error = %v", err)
	}
	defer h.Close()

	data, err := io.ReadAll(h)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != op.content {
		t.Errorf("ReadAll() = %q, want %q", data, op.content)
	}
	if op.opens != 1 {
		t.Errorf("opens = %v, want 1", op.opens)
	}
}

func TestStreamHandleSeek(t *testing.T) {
	op := &countingOpener{content: "0123456789"}
	h, err := newStreamHandle(op.open, int64(len(op.content)))
	if err != nil {
		t.Fatalf("newStreamHandle() error = %v", err)
	}
	defer h.Close()

	// Forward seek skips within the open stream
	if _, err := h.Seek(6, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	buf := make([]byte, 2)
	if _, err := io.ReadFull(h, buf); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	if string(buf) != "67" {
		t.Errorf("read after forward seek = %q, want %q", buf, "67")
	}
	if op.opens != 1 {
		t.Errorf("opens after forward seek = %v, want 1", op.opens)
	}

	// Backward seek forces a reopen
	if _, err := h.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if _, err := io.ReadFull(h, buf); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	if string(buf) != "23" {
		t.Errorf("read after backward seek = %q, want %q", buf, "23")
	}
	if op.opens != 2 {
		t.Errorf("opens after backward seek = %v, want 2", op.opens)
	}

	// SeekEnd resolves against the known length
	pos, err := h.Seek(-3, io.SeekEnd)
	if err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if pos != 7 {
		t.Errorf("Seek(SeekEnd) = %v, want 7", pos)
	}

	if _, err := h.Seek(0, 42); !errors.Is(err, ErrInvalidWhence) {
		t.Errorf("Seek() bad whence error = %v, want ErrInvalidWhence", err)
	}
	if _, err := h.Seek(-1, io.SeekStart); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("Seek() negative error = %v, want ErrInvalidOffset", err)
	}
}

func TestStreamHandleSeekPastEnd(t *testing.T) {
	op := &countingOpener{content: "0123456789"}
	h, err := newStreamHandle(op.open, int64(len(op.content)))
	if err != nil {
		t.Fatalf("newStreamHandle() error = %v", err)
	}
	defer h.Close()

	if _, err := h.Seek(20, io.SeekStart); err != nil {
		t.Fatalf("Seek() past end error = %v", err)
	}
	if _, err := h.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("Read() past end error = %v, want io.EOF", err)
	}
}

func TestStreamHandleReadAtPreservesPosition(t *testing.T) {
	op := &countingOpener{content: "0123456789"}
	h, err := newStreamHandle(op.open, int64(len(op.content)))
	if err != nil {
		t.Fatalf("newStreamHandle() error = %v", err)
	}
	defer h.Close()

	// Advance the sequential position
	seq := make([]byte, 3)
	if _, err := io.ReadFull(h, seq); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}

	// Random access both behind and ahead of the position
	buf := make([]byte, 2)
	if _, err := h.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt() error = %v", err)
	}
	if string(buf) != "01" {
		t.Errorf("ReadAt(0) = %q, want %q", buf, "01")
	}
	if _, err := h.ReadAt(buf, 7); err != nil {
		t.Fatalf("ReadAt() error = %v", err)
	}
	if string(buf) != "78" {
		t.Errorf("ReadAt(7) = %q, want %q", buf, "78")
	}

	// Sequential reads resume where they left off
	if _, err := io.ReadFull(h, seq); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	if string(seq) != "345" {
		t.Errorf("sequential read after ReadAt = %q, want %q", seq, "345")
	}
}

func TestStreamHandleReadAtTail(t *testing.T) {
	op := &countingOpener{content: "0123456789"}
	h, err := newStreamHandle(op.open, int64(len(op.content)))
	if err != nil {
		t.Fatalf("newStreamHandle() error = %v", err)
	}
	defer h.Close()

	// A read crossing the end returns the tail bytes and io.EOF
	buf := make([]byte, 4)
	n, err := h.ReadAt(buf, 8)
	if err != io.EOF {
		t.Fatalf("ReadAt() error = %v, want io.EOF", err)
	}
	if n != 2 || string(buf[:n]) != "89" {
		t.Errorf("ReadAt() = %v %q, want 2 %q", n, buf[:n], "89")
	}

	if _, err := h.ReadAt(buf, -1); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("ReadAt(-1) error = %v, want ErrInvalidOffset", err)
	}
}

func TestStreamHandleLengthOnDemand(t *testing.T) {
	op := &countingOpener{content: "0123456789"}
	h, err := newStreamHandle(op.open, -1)
	if err != nil {
		t.Fatalf("newStreamHandle() error = %v", err)
	}
	defer h.Close()

	length, err := h.Length()
	if err != nil {
		t.Fatalf("Length() error = %v", err)
	}
	if length != 10 {
		t.Errorf("Length() = %v, want 10", length)
	}
	if op.opens != 2 {
		t.Errorf("opens = %v, want 2 (construction plus measuring)", op.opens)
	}

	// The measured length is cached
	if _, err := h.Length(); err != nil {
		t.Fatalf("Length() error = %v", err)
	}
	if op.opens != 2 {
		t.Errorf("opens = %v, want 2 after cached Length", op.opens)
	}

	// Measuring must not disturb the read position
	data, err := io.ReadAll(h)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != op.content {
		t.Errorf("ReadAll() = %q, want %q", data, op.content)
	}
}

func TestStreamHandleClose(t *testing.T) {
	op := &countingOpener{content: "data"}
	h, err := newStreamHandle(op.open, -1)
	if err != nil {
		t.Fatalf("newStreamHandle() error = %v", err)
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	if _, err := h.Read(make([]byte, 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Read() after close error = %v, want ErrClosed", err)
	}
	if _, err := h.Seek(0, io.SeekStart); !errors.Is(err, ErrClosed) {
		t.Errorf("Seek() after close error = %v, want ErrClosed", err)
	}
	if _, err := h.Length(); !errors.Is(err, ErrClosed) {
		t.Errorf("Length() after close error = %v, want ErrClosed", err)
	}
}

type closeRecorder struct {
	closed bool
	err    error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.err
}

func TestChainCloser(t *testing.T) {
	first := &closeRecorder{err: errors.New("first failure")}
	second := &closeRecorder{err: errors.New("second failure")}
	third := &closeRecorder{}

	cc := &chainCloser{
		Reader:  strings.NewReader(""),
		closers: []io.Closer{first, second, third},
	}

	err := cc.Close()
	if err == nil || err.Error() != "first failure" {
		t.Errorf("Close() error = %v, want first failure", err)
	}
	if !first.closed || !second.closed || !third.closed {
		t.Errorf("Close() closed = %v %v %v, want all true", first.closed, second.closed, third.closed)
	}
}
