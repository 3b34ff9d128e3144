package handlekit

import (
	"sync"
)

// Format describes an archive format the resolver can detect and open.
// Match inspects up to sniffLen leading header bytes; Open constructs the
// handle for a matched local path. All three fields are required.
type Format struct {
	Name  HandleKind
	Match func(header []byte) bool
	Open  func(path string) (Handle, error)
}

var (
	formatMutex sync.RWMutex
	formats     []Format
)

// Registration order is precedence order. The zip, gzip and bzip2 built-ins
// always come first; nothing registered later can preempt them.
func init() {
	formats = []Format{
		{Name: KindZip, Match: matchZip, Open: func(path string) (Handle, error) { return NewZipHandle(path) }},
		{Name: KindGZip, Match: matchGZip, Open: func(path string) (Handle, error) { return NewGZipHandle(path) }},
		{Name: KindBZip2, Match: matchBZip2, Open: func(path string) (Handle, error) { return NewBZip2Handle(path) }},
	}
}

// RegisterFormat adds a detectable archive format behind the built-in
// probes and ahead of the plain-file fallback. Formats registered earlier
// win when several probes accept the same header.
func RegisterFormat(f Format) {
	formatMutex.Lock()
	defer formatMutex.Unlock()
	formats = append(formats, f)
}

// matchFormat returns the first format whose probe accepts the header.
func matchFormat(header []byte) (Format, bool) {
	formatMutex.RLock()
	defer formatMutex.RUnlock()
	for _, f := range formats {
		if f.Match(header) {
			return f, true
		}
	}
	return Format{}, false
}
