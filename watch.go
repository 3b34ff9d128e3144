package handlekit

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// Watch returns a token that fires once when the resource changes.
//
// File-backed locations watch the parent directory with native
// filesystem events filtered to the target name, so creates and removes
// count as changes too. URL-backed locations poll, comparing the
// resource's modification time and length at the configured interval.
// The token is spent after the first change; obtain a new one to keep
// watching, or use OnChange.
func (l *Location) Watch(ctx context.Context) (ChangeToken, error) {
	switch b := l.b.(type) {
	case *fileBackend:
		abs := b.absolutePath()
		return watchFile(ctx, filepath.Dir(abs), func(name string) bool {
			return filepath.Base(name) == filepath.Base(abs)
		})
	case *urlBackend:
		lastMod := b.lastModified()
		lastLen := b.length()
		return NewPollingChangeToken(ctx, PollingConfig{
			Interval: l.res.pollInterval(),
			CheckFunc: func() bool {
				return !b.lastModified().Equal(lastMod) || b.length() != lastLen
			},
		}), nil
	}
	return nil, &PathError{Op: "watch", Path: l.Path(), Err: ErrNotSupported}
}

// WatchPattern returns a token that fires once when the set of children
// matching a glob pattern changes, or any matching child does. The
// location must be a directory. File-backed locations use native events;
// URL-backed locations poll the directory listing, comparing the matching
// names and their modification times.
func (l *Location) WatchPattern(ctx context.Context, pattern string) (ChangeToken, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, &PathError{Op: "watch", Path: l.Path(), Err: ErrInvalidPattern}
	}
	switch b := l.b.(type) {
	case *fileBackend:
		return watchFile(ctx, b.absolutePath(), func(name string) bool {
			return g.Match(filepath.Base(name))
		})
	case *urlBackend:
		last := l.matchedState(g)
		return NewPollingChangeToken(ctx, PollingConfig{
			Interval: l.res.pollInterval(),
			CheckFunc: func() bool {
				return !sameState(last, l.matchedState(g))
			},
		}), nil
	}
	return nil, &PathError{Op: "watch", Path: l.Path(), Err: ErrNotSupported}
}

// WatchLocations returns one token covering all the given locations,
// fired when any member changes. Multi-file datasets are watched this
// way. With no members the token never fires.
func WatchLocations(ctx context.Context, locs ...*Location) (ChangeToken, error) {
	if len(locs) == 0 {
		return NeverChangeToken{}, nil
	}
	tokens := make([]ChangeToken, 0, len(locs))
	for _, l := range locs {
		t, err := l.Watch(ctx)
		if err != nil {
			stopTokens(tokens)
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return NewCompositeChangeToken(tokens...), nil
}

// stopTokens releases the watchers behind tokens that will never reach a
// caller.
func stopTokens(tokens []ChangeToken) {
	for _, t := range tokens {
		if s, ok := t.(interface{ Stop() }); ok {
			s.Stop()
		}
	}
}

// fileChangeToken pairs the signalled token with the watcher feeding it,
// so a token abandoned before reaching a caller can release the watcher
// without waiting for the context.
type fileChangeToken struct {
	*CallbackChangeToken
	watcher *fsnotify.Watcher
}

// Stop closes the watcher and ends the event loop. Safe to call more
// than once; a spent token is unaffected.
func (t *fileChangeToken) Stop() {
	t.watcher.Close()
}

// watchFile wires an fsnotify watcher over dir and signals the token on
// the first event whose path passes match.
func watchFile(ctx context.Context, dir string, match func(string) bool) (ChangeToken, error) {
	token := NewCallbackChangeToken()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &PathError{Op: "watch", Path: dir, Err: err}
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, &PathError{Op: "watch", Path: dir, Err: err}
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if match(event.Name) {
					token.SignalChange()
					return // Token is spent after first change
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Keep watching through transient errors
			}
		}
	}()

	return &fileChangeToken{CallbackChangeToken: token, watcher: watcher}, nil
}

// pollInterval applies the built-in default when the config leaves the
// interval unset.
func (r *Resolver) pollInterval() time.Duration {
	if r.cfg.PollIntervalSeconds > 0 {
		return time.Duration(r.cfg.PollIntervalSeconds) * time.Second
	}
	return 5 * time.Second
}

// matchedState snapshots the children matching g together with their
// modification times, so both membership changes and in-place edits show
// up when two snapshots are compared.
func (l *Location) matchedState(g glob.Glob) map[string]time.Time {
	state := make(map[string]time.Time)
	for _, name := range l.b.list() {
		if g.Match(name) {
			state[name] = l.Child(name).LastModified()
		}
	}
	return state
}

func sameState(a, b map[string]time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for name, mod := range a {
		other, ok := b[name]
		if !ok || !other.Equal(mod) {
			return false
		}
	}
	return true
}
