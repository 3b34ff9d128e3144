package handlekit

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fileBackend answers Location queries with native filesystem operations.
// The stored path is kept exactly as resolved, with no normalization.
type fileBackend struct {
	path string
}

func (b *fileBackend) exists() bool {
	_, err := os.Stat(b.path)
	return err == nil
}

func (b *fileBackend) canRead() bool {
	f, err := os.Open(b.path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func (b *fileBackend) canWrite() bool {
	info, err := os.Stat(b.path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		// Opening a directory for writing fails everywhere, so fall back
		// to the mode bits.
		return info.Mode().Perm()&0200 != 0
	}
	f, err := os.OpenFile(b.path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func (b *fileBackend) isDirectory() bool {
	info, err := os.Stat(b.path)
	return err == nil && info.IsDir()
}

func (b *fileBackend) isFile() bool {
	info, err := os.Stat(b.path)
	return err == nil && info.Mode().IsRegular()
}

func (b *fileBackend) isHidden() bool {
	return strings.HasPrefix(filepath.Base(b.path), ".")
}

func (b *fileBackend) lastModified() time.Time {
	info, err := os.Stat(b.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (b *fileBackend) length() int64 {
	info, err := os.Stat(b.path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func (b *fileBackend) name() string {
	return filepath.Base(b.path)
}

func (b *fileBackend) parent() string {
	return filepath.Dir(b.absolutePath())
}

func (b *fileBackend) nativePath() string {
	return b.path
}

func (b *fileBackend) absolutePath() string {
	abs, err := filepath.Abs(b.path)
	if err != nil {
		return b.path
	}
	return abs
}

func (b *fileBackend) canonicalPath() (string, error) {
	abs, err := filepath.Abs(b.path)
	if err != nil {
		return "", &PathError{Op: "canonical", Path: b.path, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			// Canonicalizing a path that does not exist yet is fine;
			// there are no links left to resolve.
			return abs, nil
		}
		return "", &PathError{Op: "canonical", Path: b.path, Err: err}
	}
	return resolved, nil
}

func (b *fileBackend) isAbsolute() bool {
	return filepath.IsAbs(b.path)
}

func (b *fileBackend) toURL() (*url.URL, error) {
	abs, err := filepath.Abs(b.path)
	if err != nil {
		return nil, &PathError{Op: "url", Path: b.path, Err: err}
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
}

func (b *fileBackend) list() []string {
	entries, err := os.ReadDir(b.path)
	if err != nil {
		return nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func (b *fileBackend) createFile() error {
	if info, err := os.Stat(filepath.Dir(b.path)); err == nil && !info.IsDir() {
		return &PathError{Op: "create", Path: b.path, Err: ErrNotDir}
	}
	f, err := os.OpenFile(b.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			err = ErrExist
		}
		return &PathError{Op: "create", Path: b.path, Err: err}
	}
	return f.Close()
}

func (b *fileBackend) remove() bool {
	return os.Remove(b.path) == nil
}

func (b *fileBackend) contentType() string {
	return GuessContentType(b.path)
}

func (b *fileBackend) equal(other backend) bool {
	o, ok := other.(*fileBackend)
	return ok && b.path == o.path
}

func (b *fileBackend) str() string {
	return b.path
}

// Ensure fileBackend implements backend
var _ backend = (*fileBackend)(nil)
