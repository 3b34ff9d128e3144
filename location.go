package handlekit

import (
	"net/url"
	"time"

	"github.com/gobwas/glob"
)

// ============================================================================
// Location
// ============================================================================

// Location is a path-like view of a resource that works the same way for
// local files and for resources served over HTTP. At construction the path
// resolves through the identifier map and commits to exactly one backend,
// URL or file; derived Locations (parents, children) re-resolve from
// scratch rather than mutate.
//
// Metadata queries are advisory and never fail: a network error during
// Exists, LastModified, Length or List degrades to a safe default instead
// of an error. Use GetHandle when you actually need the bytes.
type Location struct {
	res *Resolver
	b   backend
}

// backend is the resource representation a Location commits to. Two
// variants exist, fileBackend and urlBackend, each implementing the full
// query set for its resource model.
type backend interface {
	exists() bool
	canRead() bool
	canWrite() bool
	isDirectory() bool
	isFile() bool
	isHidden() bool
	lastModified() time.Time
	length() int64
	name() string
	parent() string
	nativePath() string
	absolutePath() string
	canonicalPath() (string, error)
	isAbsolute() bool
	toURL() (*url.URL, error)
	list() []string
	createFile() error
	remove() bool
	contentType() string
	equal(other backend) bool
	str() string
}

// NewLocation resolves path through the resolver's identifier map and
// builds a Location. A mapped result that parses as an absolute http or
// https URL selects the URL backend; anything else, including parse
// failures, selects the file backend. The two outcomes are deliberate
// alternatives, not an error condition.
func (r *Resolver) NewLocation(path string) *Location {
	mapped := r.ids.MappedID(path)
	if u, ok := parseResourceURL(mapped); ok {
		return &Location{res: r, b: &urlBackend{r: r, u: u}}
	}
	return &Location{res: r, b: &fileBackend{path: mapped}}
}

// NewFileLocation builds a file-backed Location from path as given,
// bypassing both URL detection and the identifier map.
func (r *Resolver) NewFileLocation(path string) *Location {
	return &Location{res: r, b: &fileBackend{path: path}}
}

// NewChildLocation joins parent and child with a single "/" and resolves
// the result. No path normalization is applied.
func (r *Resolver) NewChildLocation(parent, child string) *Location {
	return r.NewLocation(parent + "/" + child)
}

// NewLocation resolves path using the default resolver.
func NewLocation(path string) *Location {
	return defaultResolver().NewLocation(path)
}

// NewFileLocation builds a file-backed Location using the default resolver.
func NewFileLocation(path string) *Location {
	return defaultResolver().NewFileLocation(path)
}

// NewChildLocation joins parent and child using the default resolver.
func NewChildLocation(parent, child string) *Location {
	return defaultResolver().NewChildLocation(parent, child)
}

// parseResourceURL reports whether s names a remote resource. Bare paths
// parse without error under url.Parse, so parse success alone cannot
// discriminate; a remote resource must carry an http or https scheme and
// a host. Windows drive prefixes parse as a scheme with no host and stay
// on the file side.
func parseResourceURL(s string) (*url.URL, bool) {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

// Child returns the Location for name joined under this one.
func (l *Location) Child(name string) *Location {
	return l.res.NewChildLocation(l.AbsolutePath(), name)
}

// Exists reports whether the resource is reachable. URL-backed Locations
// fetch the resource; any failure reports false.
func (l *Location) Exists() bool {
	return l.b.exists()
}

// CanRead reports whether the resource can be opened for reading.
// URL-backed Locations always report true.
func (l *Location) CanRead() bool {
	return l.b.canRead()
}

// CanWrite reports whether the resource can be opened for writing.
// URL-backed Locations always report false.
func (l *Location) CanWrite() bool {
	return l.b.canWrite()
}

// IsDirectory reports whether the resource is a directory. For URL-backed
// Locations this is a heuristic: listing endpoints report no modification
// time, so a reachable resource with a zero modification time counts as a
// directory. When the modification time cannot be determined at all,
// IsDirectory and IsFile both report false.
func (l *Location) IsDirectory() bool {
	return l.b.isDirectory()
}

// IsFile reports whether the resource is a regular file. The URL-backed
// heuristic is the complement of IsDirectory: reachable with a positive
// modification time.
func (l *Location) IsFile() bool {
	return l.b.isFile()
}

// IsHidden reports whether the resource name marks it hidden. URL-backed
// Locations always report false.
func (l *Location) IsHidden() bool {
	return l.b.isHidden()
}

// LastModified returns the resource's modification time, or the zero time
// when it cannot be determined.
func (l *Location) LastModified() time.Time {
	return l.b.lastModified()
}

// Length returns the resource's size in bytes, or 0 when it cannot be
// determined.
func (l *Location) Length() int64 {
	return l.b.length()
}

// Name returns the last component of the resource's path.
func (l *Location) Name() string {
	return l.b.name()
}

// Parent returns the absolute path truncated before its final component.
func (l *Location) Parent() string {
	return l.b.parent()
}

// ParentLocation returns the parent as a re-resolved Location.
func (l *Location) ParentLocation() *Location {
	return l.res.NewLocation(l.Parent())
}

// Path returns the backend's native path form: host plus path for
// URL-backed Locations, the stored path for file-backed ones.
func (l *Location) Path() string {
	return l.b.nativePath()
}

// AbsolutePath returns the full URL string or the absolute filesystem
// path.
func (l *Location) AbsolutePath() string {
	return l.b.absolutePath()
}

// AbsoluteLocation returns the absolute path as a re-resolved Location.
func (l *Location) AbsoluteLocation() *Location {
	return l.res.NewLocation(l.AbsolutePath())
}

// CanonicalPath returns the canonical form of the path, resolving
// symlinks where the resource exists. URL-backed Locations return the
// absolute URL string.
func (l *Location) CanonicalPath() (string, error) {
	return l.b.canonicalPath()
}

// IsAbsolute reports whether the stored path is absolute. URL-backed
// Locations always report true.
func (l *Location) IsAbsolute() bool {
	return l.b.isAbsolute()
}

// URL returns the stored URL for URL-backed Locations, or a file URL
// built from the absolute path.
func (l *Location) URL() (*url.URL, error) {
	return l.b.toURL()
}

// List returns the names of the resource's children, or nil when the
// resource is not a listable directory or listing fails. URL-backed
// listing scrapes anchor targets out of the fetched markup and keeps the
// ones that exist; see the directory lister for the exact behavior.
func (l *Location) List() []string {
	return l.b.list()
}

// ListLocations returns the children of List as re-resolved absolute
// Locations, or nil when List returns nil.
func (l *Location) ListLocations() []*Location {
	names := l.b.list()
	if names == nil {
		return nil
	}
	locs := make([]*Location, len(names))
	for i, name := range names {
		locs[i] = l.res.NewChildLocation(l.AbsolutePath(), name).AbsoluteLocation()
	}
	return locs
}

// ListMatching returns the child names matching a glob pattern. A bad
// pattern is a caller error and reported as one; listing failures stay
// advisory and yield an empty result.
func (l *Location) ListMatching(pattern string) ([]string, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, &PathError{Op: "list", Path: l.Path(), Err: ErrInvalidPattern}
	}
	var matched []string
	for _, name := range l.b.list() {
		if g.Match(name) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// CreateFile creates the resource as a new empty file. URL-backed
// Locations report ErrNotSupported; an existing file reports ErrExist.
func (l *Location) CreateFile() error {
	return l.b.createFile()
}

// Delete removes the resource and reports whether removal succeeded.
// URL-backed Locations report false without attempting anything.
func (l *Location) Delete() bool {
	return l.b.remove()
}

// ContentType returns the resource's MIME type on a best-effort basis:
// the response header for URL-backed Locations, extension and content
// sniffing for file-backed ones. Unknown types yield "".
func (l *Location) ContentType() string {
	return l.b.contentType()
}

// Equal reports whether two Locations share a backend kind and refer to
// the same resource: parsed-URL equality on the URL side, stored-path
// equality on the file side. Locations of different kinds are never
// equal.
func (l *Location) Equal(other *Location) bool {
	if other == nil {
		return false
	}
	return l.b.equal(other.b)
}

// String returns the URL string or the path as given.
func (l *Location) String() string {
	return l.b.str()
}
