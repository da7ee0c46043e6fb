package table

import (
	"bytes"

	iradix "github.com/hashicorp/go-immutable-radix/v2"
)

// radixTable is the Ordered[string, V] implementation for every string-keyed
// table: NDN, UPDN, ObjectClass, EntryCSN, Alias, and any string-valued user
// index. Each radix leaf holds the ordered slice of values stored at that
// key, the same "bucket of duplicates" shape btreeTable uses, just flattened
// to a slice since go-immutable-radix has no secondary-tree slot.
//
// go-immutable-radix/v2's Tree is itself a persistent, copy-on-write
// structure: Insert/Delete return a new *Tree and leave the receiver
// untouched, which is exactly the snapshot property Clone needs: Clone()
// here is just a struct copy of the tree pointer.
type radixTable[V any] struct {
	tree  *iradix.Tree[[]V]
	lessV LessFunc[V]
	total int
}

// NewRadix constructs an Ordered[string, V] backed by go-immutable-radix/v2,
// using lessV to order duplicate values within a key.
func NewRadix[V any](lessV LessFunc[V]) Ordered[string, V] {
	return &radixTable[V]{tree: iradix.New[[]V](), lessV: lessV}
}

func (t *radixTable[V]) indexOf(values []V, v V) (int, bool) {
	for i, existing := range values {
		if !t.lessV(existing, v) && !t.lessV(v, existing) {
			return i, true
		}
	}
	return 0, false
}

func (t *radixTable[V]) insertSorted(values []V, v V) []V {
	i := 0
	for i < len(values) && t.lessV(values[i], v) {
		i++
	}
	out := make([]V, 0, len(values)+1)
	out = append(out, values[:i]...)
	out = append(out, v)
	out = append(out, values[i:]...)
	return out
}

func (t *radixTable[V]) Put(k string, v V) {
	key := []byte(k)
	existing, _ := t.tree.Get(key)
	if _, ok := t.indexOf(existing, v); ok {
		return
	}
	updated := t.insertSorted(existing, v)
	tree, _, _ := t.tree.Insert(key, updated)
	t.tree = tree
	t.total++
}

func (t *radixTable[V]) Remove(k string) {
	key := []byte(k)
	if existing, ok := t.tree.Get(key); ok {
		t.total -= len(existing)
		tree, _, _ := t.tree.Delete(key)
		t.tree = tree
	}
}

func (t *radixTable[V]) RemoveKV(k string, v V) {
	key := []byte(k)
	existing, ok := t.tree.Get(key)
	if !ok {
		return
	}
	i, found := t.indexOf(existing, v)
	if !found {
		return
	}
	t.total--
	remaining := make([]V, 0, len(existing)-1)
	remaining = append(remaining, existing[:i]...)
	remaining = append(remaining, existing[i+1:]...)
	var tree *iradix.Tree[[]V]
	if len(remaining) == 0 {
		tree, _, _ = t.tree.Delete(key)
	} else {
		tree, _, _ = t.tree.Insert(key, remaining)
	}
	t.tree = tree
}

func (t *radixTable[V]) Get(k string) (V, bool) {
	var zero V
	values, ok := t.tree.Get([]byte(k))
	if !ok || len(values) == 0 {
		return zero, false
	}
	return values[0], true
}

func (t *radixTable[V]) Has(k string) bool {
	values, ok := t.tree.Get([]byte(k))
	return ok && len(values) > 0
}

func (t *radixTable[V]) HasKV(k string, v V) bool {
	values, ok := t.tree.Get([]byte(k))
	if !ok {
		return false
	}
	_, found := t.indexOf(values, v)
	return found
}

// HasGreaterOrEqual relies on the radix tree's Walk visiting keys in
// lexicographic order: the first key >= k encountered stops the walk.
func (t *radixTable[V]) HasGreaterOrEqual(k string) bool {
	target := []byte(k)
	found := false
	t.tree.Root().Walk(func(key []byte, v []V) bool {
		if bytes.Compare(key, target) >= 0 && len(v) > 0 {
			found = true
			return true
		}
		return false
	})
	return found
}

func (t *radixTable[V]) HasLessOrEqual(k string) bool {
	target := []byte(k)
	found := false
	t.tree.Root().Walk(func(key []byte, v []V) bool {
		if bytes.Compare(key, target) > 0 {
			return true
		}
		if len(v) > 0 {
			found = true
		}
		return false
	})
	return found
}

func (t *radixTable[V]) Count() int { return t.total }

func (t *radixTable[V]) CountKey(k string) int {
	values, ok := t.tree.Get([]byte(k))
	if !ok {
		return 0
	}
	return len(values)
}

func (t *radixTable[V]) GreaterThanCount(k string) int {
	target := []byte(k)
	count := 0
	t.tree.Root().Walk(func(key []byte, v []V) bool {
		if bytes.Compare(key, target) > 0 {
			count += len(v)
		}
		return false
	})
	return count
}

func (t *radixTable[V]) LessThanCount(k string) int {
	target := []byte(k)
	count := 0
	t.tree.Root().Walk(func(key []byte, v []V) bool {
		if bytes.Compare(key, target) >= 0 {
			return true
		}
		count += len(v)
		return false
	})
	return count
}

// IsCountExact always reports false; see btreeTable.IsCountExact for the
// rationale, which applies identically here.
func (t *radixTable[V]) IsCountExact() bool { return false }

func (t *radixTable[V]) snapshot(from string, bounded bool) []cursorEntry[string, V] {
	target := []byte(from)
	var entries []cursorEntry[string, V]
	t.tree.Root().Walk(func(key []byte, values []V) bool {
		if bounded && bytes.Compare(key, target) < 0 {
			return false
		}
		ks := string(key)
		for _, v := range values {
			entries = append(entries, cursorEntry[string, V]{key: ks, val: v})
		}
		return false
	})
	return entries
}

func (t *radixTable[V]) Cursor() Cursor[string, V] {
	return newSliceCursor(t.snapshot("", false))
}

func (t *radixTable[V]) CursorAt(k string) Cursor[string, V] {
	return newSliceCursor(t.snapshot(k, true))
}

func (t *radixTable[V]) ValueCursor(k string) ValueCursor[V] {
	values, _ := t.tree.Get([]byte(k))
	cp := make([]V, len(values))
	copy(cp, values)
	return newSliceValueCursor(cp)
}

func (t *radixTable[V]) Clone() Ordered[string, V] {
	return &radixTable[V]{tree: t.tree, lessV: t.lessV, total: t.total}
}
