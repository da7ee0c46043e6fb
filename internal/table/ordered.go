// Package table implements the generic ordered multi-map that backs
// every index and the master table in the partition engine, entirely in
// memory: a key K maps to a set of values V, the key space and the
// duplicate values at a single key are both kept in a supplied total
// order, and every read produces a cursor rather than a materialized
// slice.
package table

import "errors"

// ErrCursorClosed is returned by a cursor operation performed after Close.
var ErrCursorClosed = errors.New("table: cursor is closed")

// ErrPositionInvalid is returned by Key/Value when the cursor is not
// positioned on an element (before-first, after-last, or on a deleted
// element).
var ErrPositionInvalid = errors.New("table: cursor position is invalid")

// Ordered is a generic ordered multi-map from K to V. Implementations must
// keep (k, v) pairs in the total order implied by the comparators supplied
// at construction time. Duplicate values at one key are themselves ordered,
// so per-key iteration via ValueCursor is ordered too.
//
// Put is idempotent on (k,v): calling it twice with the same pair leaves
// Count() unchanged.
type Ordered[K any, V any] interface {
	// Put inserts (k, v). It is a no-op if the pair already exists.
	Put(k K, v V)

	// Remove deletes every pair with the given key.
	Remove(k K)

	// RemoveKV deletes a single (k, v) pair, if present.
	RemoveKV(k K, v V)

	// Get returns the smallest value stored at k, or ok=false if k has no
	// values.
	Get(k K) (v V, ok bool)

	// Has reports whether k has at least one value.
	Has(k K) bool

	// HasKV reports whether the exact pair (k, v) is present.
	HasKV(k K, v V) bool

	// HasGreaterOrEqual reports whether any key >= k exists.
	HasGreaterOrEqual(k K) bool

	// HasLessOrEqual reports whether any key <= k exists.
	HasLessOrEqual(k K) bool

	// Count returns the total number of (k, v) pairs.
	Count() int

	// CountKey returns the number of values stored at k.
	CountKey(k K) int

	// GreaterThanCount returns the number of pairs whose key is > k.
	GreaterThanCount(k K) int

	// LessThanCount returns the number of pairs whose key is < k.
	LessThanCount(k K) int

	// IsCountExact reports whether Count/CountKey/GreaterThanCount/
	// LessThanCount are guaranteed exact. Always false: callers must not
	// assume exactness even when an implementation happens to compute an
	// exact value.
	IsCountExact() bool

	// Cursor opens a cursor over every (k, v) pair in order, positioned
	// before the first element.
	Cursor() Cursor[K, V]

	// CursorAt opens a cursor over every (k, v) pair with key >= k, in
	// order, positioned before the first such element.
	CursorAt(k K) Cursor[K, V]

	// ValueCursor opens a cursor over the values stored at a single key,
	// in order, positioned before the first element.
	ValueCursor(k K) ValueCursor[V]

	// Clone returns a point-in-time, independent copy of the table.
	// Mutating the clone never affects the receiver or vice versa: the
	// copy-on-write snapshot mechanism behind consistent reads.
	Clone() Ordered[K, V]
}

// Cursor iterates bidirectionally over (k, v) pairs. The zero value is not
// usable; obtain one from Ordered.Cursor or Ordered.CursorAt.
//
// Position contract: a freshly opened cursor is positioned "before the
// first" element. Next/Prev move the position; Available reports whether the
// current position designates a real element (false at the before-first and
// after-last sentinels). Key/Value fail with ErrPositionInvalid when
// Available is false. Close is idempotent; further calls after Close fail
// with ErrCursorClosed.
type Cursor[K any, V any] interface {
	// Next advances to the next pair and reports whether one exists. It
	// fails with ErrCursorClosed if called after Close.
	Next() (bool, error)

	// Prev moves to the previous pair and reports whether one exists. It
	// fails with ErrCursorClosed if called after Close.
	Prev() (bool, error)

	// Available reports whether the cursor is positioned on a real pair.
	Available() bool

	// Key returns the key at the current position.
	Key() (K, error)

	// Value returns the value at the current position.
	Value() (V, error)

	// Close releases the cursor. Idempotent.
	Close()
}

// ValueCursor iterates bidirectionally over the values at a single key.
type ValueCursor[V any] interface {
	Next() (bool, error)
	Prev() (bool, error)
	Available() bool
	Value() (V, error)
	Close()
}
