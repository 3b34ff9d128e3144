package handlekit

import (
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// urlBackend answers Location queries over HTTP. Every query issues its
// own request and degrades to a safe default on failure; nothing is
// cached between queries.
type urlBackend struct {
	r *Resolver
	u *url.URL
}

func (b *urlBackend) exists() bool {
	resp, err := b.r.get(b.u.String())
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}

func (b *urlBackend) canRead() bool {
	return true
}

func (b *urlBackend) canWrite() bool {
	return false
}

// modHeader fetches the Last-Modified header for the resource. The error
// reports whether the question could be answered at all; an absent or
// malformed header is an answer (the zero time), not an error. The
// distinction keeps isDirectory and isFile both false for a resource
// whose modification time cannot be determined.
func (b *urlBackend) modHeader() (time.Time, error) {
	resp, err := b.r.get(b.u.String())
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return time.Time{}, &PathError{Op: "get", Path: b.u.String(), Err: ErrNotExist}
	}
	v := resp.Header.Get("Last-Modified")
	if v == "" {
		return time.Time{}, nil
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

// Listing endpoints report no modification time, hence the zero-time
// heuristic for directories.
func (b *urlBackend) isDirectory() bool {
	t, err := b.modHeader()
	return err == nil && t.IsZero()
}

func (b *urlBackend) isFile() bool {
	t, err := b.modHeader()
	return err == nil && !t.IsZero()
}

func (b *urlBackend) isHidden() bool {
	return false
}

func (b *urlBackend) lastModified() time.Time {
	t, _ := b.modHeader()
	return t
}

func (b *urlBackend) length() int64 {
	resp, err := b.r.get(b.u.String())
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 || resp.ContentLength < 0 {
		return 0
	}
	return resp.ContentLength
}

func (b *urlBackend) name() string {
	p := b.u.Path
	return p[strings.LastIndex(p, "/")+1:]
}

func (b *urlBackend) parent() string {
	abs := b.absolutePath()
	if i := strings.LastIndex(abs, "/"); i >= 0 {
		return abs[:i]
	}
	return abs
}

func (b *urlBackend) nativePath() string {
	return b.u.Host + b.u.Path
}

func (b *urlBackend) absolutePath() string {
	return b.u.String()
}

func (b *urlBackend) canonicalPath() (string, error) {
	return b.absolutePath(), nil
}

func (b *urlBackend) isAbsolute() bool {
	return true
}

func (b *urlBackend) toURL() (*url.URL, error) {
	u := *b.u
	return &u, nil
}

func (b *urlBackend) list() []string {
	if !b.isDirectory() {
		return nil
	}
	return b.r.scrapeListing(b.absolutePath())
}

func (b *urlBackend) createFile() error {
	return &PathError{Op: "create", Path: b.u.String(), Err: ErrNotSupported}
}

func (b *urlBackend) remove() bool {
	return false
}

func (b *urlBackend) contentType() string {
	resp, err := b.r.get(b.u.String())
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return ""
	}
	ct := resp.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return ct
}

func (b *urlBackend) equal(other backend) bool {
	o, ok := other.(*urlBackend)
	return ok && b.u.String() == o.u.String()
}

func (b *urlBackend) str() string {
	return b.u.String()
}

// Ensure urlBackend implements backend
var _ backend = (*urlBackend)(nil)
