package handlekit

import (
	"net/http"
	"path/filepath"
	"strings"
)

// Resolver turns logical identifiers into Locations and open handles.
// It owns the identifier map both consult and the HTTP client shared by
// URL-backed queries. Construct one with New, or use the package-level
// functions, which operate on a process-wide default resolver.
type Resolver struct {
	ids    *IDMap
	client *http.Client
	cfg    Config
}

// IDs returns the resolver's identifier map.
func (r *Resolver) IDs() *IDMap {
	return r.ids
}

// GetHandle resolves id to an open random-access handle. Resolution
// walks a fixed precedence order, stopping at the first match:
//
//  1. a handle installed via MapHandle is returned as-is, even when id
//     looks like a URL
//  2. an effective target with an http or https prefix opens over HTTP
//  3. header bytes matching a registered format (zip, gzip, bzip2
//     built in, in that order) open through that format
//  4. anything else opens as a plain local file
//
// The effective target is id passed through MappedID. Content sniffing
// decides over filename extension; an unreadable target is simply not a
// format match, so step 4 still applies and reports its own error. Once
// a step matches, its construction errors propagate; resolution never
// falls back to a later step.
//
// The caller owns the returned handle and must close it. Handles are
// never pooled or cached, except that step 1 returns the caller's own
// handle, which stays under the caller's management.
func (r *Resolver) GetHandle(id string, options ...Option) (Handle, error) {
	if h := r.ids.MappedHandle(id); h != nil {
		return h, nil
	}

	opts := processOptions(options...)
	target := r.ids.MappedID(id)

	if isHTTP(target) {
		return newURLHandle(r.client, r.cfg.HTTPUserAgent, target)
	}

	if f, ok := matchFormat(sniffHeader(target)); ok {
		return f.Open(target)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, &PathError{Op: "open", Path: target, Err: err}
	}
	return NewFileHandle(abs, opts.Writable)
}

// Classify reports the handle kind GetHandle would choose for id,
// without constructing anything. Sniffing still reads the target's
// header bytes.
func (r *Resolver) Classify(id string) HandleKind {
	if r.ids.MappedHandle(id) != nil {
		return KindMapped
	}
	target := r.ids.MappedID(id)
	if isHTTP(target) {
		return KindURL
	}
	if f, ok := matchFormat(sniffHeader(target)); ok {
		return f.Name
	}
	return KindFile
}

// isHTTP reports whether target names an HTTP resource by literal scheme
// prefix. Only the effective target string is consulted; remote content
// is never sniffed.
func isHTTP(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// get issues a GET through the resolver's client, applying the
// configured user agent.
func (r *Resolver) get(rawurl string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	if r.cfg.HTTPUserAgent != "" {
		req.Header.Set("User-Agent", r.cfg.HTTPUserAgent)
	}
	return r.client.Do(req)
}

// GetHandle resolves id through the default resolver.
func GetHandle(id string, options ...Option) (Handle, error) {
	return defaultResolver().GetHandle(id, options...)
}

// Classify reports the handle kind for id using the default resolver.
func Classify(id string) HandleKind {
	return defaultResolver().Classify(id)
}
