package handlekit

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// URLHandle provides random access to a resource served over HTTP or
// HTTPS. The handle holds one open GET body for sequential reads; seeking
// issues a new request with a Range header, and falls back to
// discard-and-skip when the server ignores ranges. ReadAt uses its own
// ranged request so it never disturbs the sequential position.
type URLHandle struct {
	client    *http.Client
	url       string
	userAgent string
	body      io.ReadCloser
	pos       int64
	length    int64
	closed    bool
}

// NewURLHandle opens the resource at rawurl using the default resolver's
// HTTP client. The request is issued immediately so construction fails
// fast on unreachable resources.
func NewURLHandle(rawurl string) (*URLHandle, error) {
	r := defaultResolver()
	return newURLHandle(r.client, r.cfg.HTTPUserAgent, rawurl)
}

func newURLHandle(client *http.Client, userAgent, rawurl string) (*URLHandle, error) {
	h := &URLHandle{
		client:    client,
		url:       rawurl,
		userAgent: userAgent,
		length:    -1,
	}
	if err := h.connect(0); err != nil {
		return nil, err
	}
	return h, nil
}

// URL returns the resource URL the handle reads from.
func (h *URLHandle) URL() string {
	return h.url
}

func (h *URLHandle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	n, err := h.body.Read(p)
	h.pos += int64(n)
	return n, err
}

func (h *URLHandle) Seek(offset int64, whence int) (int64, error) {
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
		if h.length < 0 {
			return 0, &PathError{Op: "seek", Path: h.url, Err: ErrUnknownLength}
		}
		target = h.length + offset
	default:
		return 0, ErrInvalidWhence
	}
	if target < 0 {
		return 0, ErrInvalidOffset
	}
	if target == h.pos {
		return target, nil
	}
	if err := h.connect(target); err != nil {
		return 0, err
	}
	return h.pos, nil
}

// ReadAt issues an independent ranged request and leaves the sequential
// position untouched.
func (h *URLHandle) ReadAt(p []byte, off int64) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if len(p) == 0 {
		return 0, nil
	}

	req, err := h.newRequest()
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1))

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, &PathError{Op: "get", Path: h.url, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusPartialContent:
	case http.StatusRequestedRangeNotSatisfiable:
		return 0, io.EOF
	case http.StatusOK:
		// Server ignored the range request; skip to the offset by hand.
		if _, err := io.CopyN(io.Discard, resp.Body, off); err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, &PathError{Op: "get", Path: h.url, Err: err}
		}
	default:
		return 0, h.statusError(resp)
	}

	n, err := io.ReadFull(resp.Body, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

// Length returns the resource size when the server reported one.
// Responses without a usable Content-Length leave the size unknown.
func (h *URLHandle) Length() (int64, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if h.length < 0 {
		return 0, &PathError{Op: "length", Path: h.url, Err: ErrUnknownLength}
	}
	return h.length, nil
}

func (h *URLHandle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.body == nil {
		return nil
	}
	return h.body.Close()
}

// connect replaces the open body with a fresh GET positioned at offset.
func (h *URLHandle) connect(offset int64) error {
	req, err := h.newRequest()
	if err != nil {
		return err
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return &PathError{Op: "get", Path: h.url, Err: err}
	}

	switch resp.StatusCode {
	case http.StatusPartialContent:
		if total, ok := parseContentRangeTotal(resp.Header.Get("Content-Range")); ok {
			h.length = total
		} else if resp.ContentLength >= 0 {
			h.length = offset + resp.ContentLength
		}
		h.setBody(resp.Body, offset)
		return nil
	case http.StatusRequestedRangeNotSatisfiable:
		// Offset at or past the end of the resource; reads report EOF.
		resp.Body.Close()
		h.setBody(http.NoBody, offset)
		return nil
	case http.StatusOK:
		if resp.ContentLength >= 0 {
			h.length = resp.ContentLength
		}
		if offset > 0 {
			if _, err := io.CopyN(io.Discard, resp.Body, offset); err != nil && err != io.EOF {
				resp.Body.Close()
				return &PathError{Op: "get", Path: h.url, Err: err}
			}
		}
		h.setBody(resp.Body, offset)
		return nil
	default:
		resp.Body.Close()
		return h.statusError(resp)
	}
}

func (h *URLHandle) newRequest() (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, h.url, nil)
	if err != nil {
		return nil, &PathError{Op: "get", Path: h.url, Err: err}
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	return req, nil
}

func (h *URLHandle) setBody(rc io.ReadCloser, pos int64) {
	if h.body != nil {
		h.body.Close()
	}
	h.body = rc
	h.pos = pos
}

func (h *URLHandle) statusError(resp *http.Response) error {
	err := fmt.Errorf("unexpected status %s", resp.Status)
	if resp.StatusCode == http.StatusNotFound {
		err = ErrNotExist
	}
	return &PathError{Op: "get", Path: h.url, Err: err}
}

// parseContentRangeTotal extracts the total size from a Content-Range
// header such as "bytes 100-199/1234". A "*" total means unknown.
func parseContentRangeTotal(v string) (int64, bool) {
	i := strings.LastIndex(v, "/")
	if i < 0 {
		return 0, false
	}
	total := v[i+1:]
	if total == "" || total == "*" {
		return 0, false
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Ensure URLHandle implements Handle
var _ Handle = (*URLHandle)(nil)
