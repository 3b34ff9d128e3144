package handlekit

import (
	"sync"
)

// Mapping is one identifier-table entry: a replacement pathname or a
// pre-constructed handle. Exactly one field should be set; writing either
// kind through MapID/MapHandle replaces the other.
type Mapping struct {
	Filename string
	Handle   Handle
}

// IDMap maps logical identifiers to replacement pathnames or to
// caller-supplied handles. Every Resolver owns one; the package-level MapID,
// MapHandle, MappedID and MappedHandle functions operate on the default
// resolver's map.
//
// All methods are safe for concurrent use.
type IDMap struct {
	mu      sync.RWMutex
	entries map[string]Mapping
}

// NewIDMap creates an empty identifier map.
func NewIDMap() *IDMap {
	return &IDMap{entries: make(map[string]Mapping)}
}

// MapID maps id to a replacement pathname. An empty filename removes any
// existing mapping for id; an empty id is a no-op.
func (m *IDMap) MapID(id, filename string) {
	if id == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if filename == "" {
		delete(m.entries, id)
		return
	}
	m.entries[id] = Mapping{Filename: filename}
}

// MapHandle maps id directly to a caller-supplied handle. The handle remains
// owned by the caller, who is still responsible for closing it. A nil handle
// removes any existing mapping for id; an empty id is a no-op.
func (m *IDMap) MapHandle(id string, h Handle) {
	if id == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if h == nil {
		delete(m.entries, id)
		return
	}
	m.entries[id] = Mapping{Handle: h}
}

// MappedID returns the replacement pathname for id, or id unchanged when no
// pathname mapping exists. A handle mapping does not count; the two kinds
// are mutually exclusive per key. Exactly one lookup is performed, mappings
// are never chained.
func (m *IDMap) MappedID(id string) string {
	if id == "" {
		return id
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok && e.Handle == nil && e.Filename != "" {
		return e.Filename
	}
	return id
}

// MappedHandle returns the handle mapped to id, or nil when id is unmapped
// or mapped to a pathname. A pathname mapping is never reinterpreted as a
// handle.
func (m *IDMap) MappedHandle(id string) Handle {
	if id == "" {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e.Handle
	}
	return nil
}

// Snapshot returns a copy of the whole table. Mutating the copy does not
// affect the map; passing it back through Replace restores the state it
// captured.
func (m *IDMap) Snapshot() map[string]Mapping {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Mapping, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// Replace swaps in a whole new table. Entries with an empty id, or with
// neither field set, are dropped. Replace(nil) resets the map to empty.
func (m *IDMap) Replace(entries map[string]Mapping) {
	next := make(map[string]Mapping, len(entries))
	for k, v := range entries {
		if k == "" || (v.Filename == "" && v.Handle == nil) {
			continue
		}
		next[k] = v
	}
	m.mu.Lock()
	m.entries = next
	m.mu.Unlock()
}

// Len returns the number of mapped identifiers.
func (m *IDMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// MapID maps id to a replacement pathname in the default resolver's map.
func MapID(id, filename string) {
	defaultResolver().ids.MapID(id, filename)
}

// MapHandle maps id to a caller-supplied handle in the default resolver's map.
func MapHandle(id string, h Handle) {
	defaultResolver().ids.MapHandle(id, h)
}

// MappedID resolves id through the default resolver's map.
func MappedID(id string) string {
	return defaultResolver().ids.MappedID(id)
}

// MappedHandle returns the handle mapped to id in the default resolver's map.
func MappedHandle(id string) Handle {
	return defaultResolver().ids.MappedHandle(id)
}

// SnapshotIDs copies the default resolver's identifier table.
func SnapshotIDs() map[string]Mapping {
	return defaultResolver().ids.Snapshot()
}

// ReplaceIDs swaps the default resolver's identifier table for entries.
// ReplaceIDs(nil) clears it.
func ReplaceIDs(entries map[string]Mapping) {
	defaultResolver().ids.Replace(entries)
}
