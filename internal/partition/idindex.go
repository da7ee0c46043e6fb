package partition

import "github.com/oba-ldap/obastore/internal/table"

func idLess(a, b int64) bool { return a < b }

// idIndex is index.Index specialized to an id -> {id} relation: the shape
// OneLevel (parent -> children), SubLevel (ancestor -> descendants),
// OneAlias and SubAlias (ancestor -> alias target) all share. index.Index
// itself is fixed to string keys (attribute values), so these four system
// indexes get their own small forward/reverse pair instead.
type idIndex struct {
	forward table.Ordered[int64, int64]
	reverse table.Ordered[int64, int64]
}

func newIDIndex() *idIndex {
	return &idIndex{
		forward: table.NewBTree[int64, int64](idLess, idLess),
		reverse: table.NewBTree[int64, int64](idLess, idLess),
	}
}

// Add inserts (k, v) into the forward table and (v, k) into the reverse.
func (ix *idIndex) Add(k, v int64) {
	ix.forward.Put(k, v)
	ix.reverse.Put(v, k)
}

// Drop removes every pair involving v as the forward value, by walking the
// reverse cursor for v to recover each k.
func (ix *idIndex) Drop(v int64) {
	c := ix.reverse.ValueCursor(v)
	defer c.Close()
	for {
		ok, err := c.Next()
		if err != nil || !ok {
			break
		}
		k, err := c.Value()
		if err != nil {
			break
		}
		ix.forward.RemoveKV(k, v)
	}
	ix.reverse.Remove(v)
}

// DropKV removes a single (k, v) pair from both tables.
func (ix *idIndex) DropKV(k, v int64) {
	ix.forward.RemoveKV(k, v)
	ix.reverse.RemoveKV(v, k)
}

// DropForwardKey removes every pair keyed by k, in both directions. The
// delete operation calls it on OneLevel and on SubLevel so that a deleted
// id stops being a forward key.
func (ix *idIndex) DropForwardKey(k int64) {
	c := ix.forward.ValueCursor(k)
	defer c.Close()
	for {
		ok, err := c.Next()
		if err != nil || !ok {
			break
		}
		v, err := c.Value()
		if err != nil {
			break
		}
		ix.reverse.RemoveKV(v, k)
	}
	ix.forward.Remove(k)
}

// Has reports whether (k, v) is present.
func (ix *idIndex) Has(k, v int64) bool { return ix.forward.HasKV(k, v) }

// ForwardValueCursor iterates every v stored at k.
func (ix *idIndex) ForwardValueCursor(k int64) table.ValueCursor[int64] { return ix.forward.ValueCursor(k) }

// ReverseValueCursor iterates every k that stores v.
func (ix *idIndex) ReverseValueCursor(v int64) table.ValueCursor[int64] { return ix.reverse.ValueCursor(v) }

// Forward exposes the underlying forward table read-only.
func (ix *idIndex) Forward() table.Ordered[int64, int64] { return ix.forward }

// Reverse exposes the underlying reverse table read-only.
func (ix *idIndex) Reverse() table.Ordered[int64, int64] { return ix.reverse }

// Count returns the total number of (k, v) pairs.
func (ix *idIndex) Count() int { return ix.forward.Count() }
