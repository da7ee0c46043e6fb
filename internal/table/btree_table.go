package table

import "github.com/google/btree"

// degree is the branching factor used for every BTreeG in this package. 32
// is google/btree's own suggested default for in-memory workloads.
const degree = 32

// LessFunc reports whether a sorts strictly before b.
type LessFunc[T any] func(a, b T) bool

// bucket is a single key's worth of values, itself held in a small
// ordered B-tree so that per-key iteration over duplicate values is
// ordered too.
type bucket[K any, V any] struct {
	key    K
	values *btree.BTreeG[V]
}

// btreeTable is the Ordered implementation for keys with an arbitrary
// supplied total order, backed by google/btree's generic BTreeG. It is used
// for every id-keyed structural index (OneLevel, SubLevel, OneAlias,
// SubAlias, the reverse side of every attribute index) and for the Master
// Table.
type btreeTable[K any, V any] struct {
	primary *btree.BTreeG[bucket[K, V]]
	lessK   LessFunc[K]
	lessV   LessFunc[V]
	total   int
}

// NewBTree constructs an Ordered[K, V] backed by google/btree, using lessK to
// order keys and lessV to order duplicate values within a key.
func NewBTree[K any, V any](lessK LessFunc[K], lessV LessFunc[V]) Ordered[K, V] {
	return &btreeTable[K, V]{
		primary: btree.NewG(degree, bucketLess[K, V](lessK)),
		lessK:   lessK,
		lessV:   lessV,
	}
}

func bucketLess[K any, V any](lessK LessFunc[K]) func(a, b bucket[K, V]) bool {
	return func(a, b bucket[K, V]) bool { return lessK(a.key, b.key) }
}

func (t *btreeTable[K, V]) findBucket(k K) (bucket[K, V], bool) {
	return t.primary.Get(bucket[K, V]{key: k})
}

func (t *btreeTable[K, V]) Put(k K, v V) {
	b, ok := t.findBucket(k)
	if !ok {
		b = bucket[K, V]{key: k, values: btree.NewG(degree, btree.LessFunc[V](t.lessV))}
		t.primary.ReplaceOrInsert(b)
	}
	if !b.values.Has(v) {
		b.values.ReplaceOrInsert(v)
		t.total++
	}
}

func (t *btreeTable[K, V]) Remove(k K) {
	b, ok := t.primary.Delete(bucket[K, V]{key: k})
	if ok {
		t.total -= b.values.Len()
	}
}

func (t *btreeTable[K, V]) RemoveKV(k K, v V) {
	b, ok := t.findBucket(k)
	if !ok {
		return
	}
	if _, removed := b.values.Delete(v); removed {
		t.total--
	}
	if b.values.Len() == 0 {
		t.primary.Delete(bucket[K, V]{key: k})
	}
}

func (t *btreeTable[K, V]) Get(k K) (V, bool) {
	var zero V
	b, ok := t.findBucket(k)
	if !ok {
		return zero, false
	}
	return b.values.Min()
}

func (t *btreeTable[K, V]) Has(k K) bool {
	return t.primary.Has(bucket[K, V]{key: k})
}

func (t *btreeTable[K, V]) HasKV(k K, v V) bool {
	b, ok := t.findBucket(k)
	if !ok {
		return false
	}
	return b.values.Has(v)
}

func (t *btreeTable[K, V]) HasGreaterOrEqual(k K) bool {
	found := false
	t.primary.AscendGreaterOrEqual(bucket[K, V]{key: k}, func(bucket[K, V]) bool {
		found = true
		return false
	})
	return found
}

func (t *btreeTable[K, V]) HasLessOrEqual(k K) bool {
	found := false
	t.primary.DescendLessOrEqual(bucket[K, V]{key: k}, func(bucket[K, V]) bool {
		found = true
		return false
	})
	return found
}

func (t *btreeTable[K, V]) Count() int {
	return t.total
}

func (t *btreeTable[K, V]) CountKey(k K) int {
	b, ok := t.findBucket(k)
	if !ok {
		return 0
	}
	return b.values.Len()
}

func (t *btreeTable[K, V]) GreaterThanCount(k K) int {
	count := 0
	t.primary.AscendGreaterOrEqual(bucket[K, V]{key: k}, func(b bucket[K, V]) bool {
		if t.lessK(k, b.key) {
			count += b.values.Len()
		}
		return true
	})
	return count
}

func (t *btreeTable[K, V]) LessThanCount(k K) int {
	count := 0
	t.primary.Ascend(func(b bucket[K, V]) bool {
		if !t.lessK(b.key, k) {
			return false
		}
		count += b.values.Len()
		return true
	})
	return count
}

// IsCountExact always reports false. The engine advertises non-exact
// counts regardless of what an implementation can actually compute, so
// callers never grow to depend on exactness.
func (t *btreeTable[K, V]) IsCountExact() bool { return false }

func (t *btreeTable[K, V]) snapshot(from K, bounded bool) []cursorEntry[K, V] {
	var entries []cursorEntry[K, V]
	visit := func(b bucket[K, V]) bool {
		b.values.Ascend(func(v V) bool {
			entries = append(entries, cursorEntry[K, V]{key: b.key, val: v})
			return true
		})
		return true
	}
	if bounded {
		t.primary.AscendGreaterOrEqual(bucket[K, V]{key: from}, visit)
	} else {
		t.primary.Ascend(visit)
	}
	return entries
}

func (t *btreeTable[K, V]) Cursor() Cursor[K, V] {
	var zero K
	return newSliceCursor(t.snapshot(zero, false))
}

func (t *btreeTable[K, V]) CursorAt(k K) Cursor[K, V] {
	return newSliceCursor(t.snapshot(k, true))
}

func (t *btreeTable[K, V]) ValueCursor(k K) ValueCursor[V] {
	b, ok := t.findBucket(k)
	if !ok {
		return newSliceValueCursor[V](nil)
	}
	var values []V
	b.values.Ascend(func(v V) bool {
		values = append(values, v)
		return true
	})
	return newSliceValueCursor(values)
}

// Clone returns an independent, point-in-time copy. google/btree's Clone is
// O(1) copy-on-write: the two trees share structure until one of them is
// mutated, at which point the touched nodes are copied. Every per-key values
// tree is cloned the same way, so mutating one bucket in the clone never
// perturbs the original's bucket.
func (t *btreeTable[K, V]) Clone() Ordered[K, V] {
	clone := &btreeTable[K, V]{
		primary: t.primary.Clone(),
		lessK:   t.lessK,
		lessV:   t.lessV,
		total:   t.total,
	}
	// Clone() on the primary tree shares bucket values by reference;
	// clone each bucket's own value tree so writes through either table
	// stay independent.
	var rebuilt []bucket[K, V]
	clone.primary.Ascend(func(b bucket[K, V]) bool {
		rebuilt = append(rebuilt, bucket[K, V]{key: b.key, values: b.values.Clone()})
		return true
	})
	fresh := btree.NewG(degree, bucketLess[K, V](t.lessK))
	for _, b := range rebuilt {
		fresh.ReplaceOrInsert(b)
	}
	clone.primary = fresh
	return clone
}
