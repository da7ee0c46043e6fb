// Package master implements the master table: the id-keyed entry store,
// the monotonic id allocator, and the small property map used for
// partition metadata. It specializes internal/table's generic ordered
// multi-map to int64 keys and *entry.Entry values.
package master

import (
	"sync/atomic"

	"github.com/oba-ldap/obastore/internal/entry"
	"github.com/oba-ldap/obastore/internal/table"
)

func idLess(a, b int64) bool { return a < b }

// Table is the id -> Entry master table plus the id allocator and
// property map.
type Table struct {
	entries    table.Ordered[int64, *entry.Entry]
	nextID     int64
	properties map[string]string
}

// New returns an empty master table. Id 0 is the reserved "no parent"
// sentinel and id 1 is the first allocated id (conventionally the suffix
// entry), so the allocator starts at 1.
func New() *Table {
	return &Table{
		entries:    table.NewBTree[int64, *entry.Entry](idLess, entryLess),
		nextID:     1,
		properties: make(map[string]string),
	}
}

// entryLess gives Master's single-entry-per-id buckets a trivial total
// order; Put drops whatever is stored at an id before inserting, so a
// bucket never holds two entries and this never has to break a tie.
func entryLess(a, b *entry.Entry) bool { return a.ID < b.ID }

// NextID atomically allocates and returns the next id. Ids are never
// reused, even across deletions, so callers must not infer density.
func (t *Table) NextID() int64 {
	return atomic.AddInt64(&t.nextID, 1) - 1
}

// Get returns the entry stored at id.
func (t *Table) Get(id int64) (*entry.Entry, bool) {
	return t.entries.Get(id)
}

// Put stores e at its own ID, replacing any entry already stored there.
func (t *Table) Put(e *entry.Entry) {
	t.entries.Remove(e.ID)
	t.entries.Put(e.ID, e)
}

// Delete removes the entry at id.
func (t *Table) Delete(id int64) {
	t.entries.Remove(id)
}

// Count returns the number of live entries.
func (t *Table) Count() int {
	return t.entries.Count()
}

// GetProperty reads a partition metadata value (suffix, version, etc).
func (t *Table) GetProperty(key string) (string, bool) {
	v, ok := t.properties[key]
	return v, ok
}

// SetProperty writes a partition metadata value.
func (t *Table) SetProperty(key, value string) {
	t.properties[key] = value
}
