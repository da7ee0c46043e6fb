// Package index implements the forward/reverse attribute-value index
// pair: two ordered multi-maps the engine keeps in lockstep, plus a
// normalizer applied to every incoming key so that equivalent forms
// collide.
package index

import (
	"errors"
	"fmt"

	"github.com/oba-ldap/obastore/internal/schema"
	"github.com/oba-ldap/obastore/internal/table"
)

// ErrNoNormalizerAvailable is the schema.ErrNoEqualityMatchingRule
// condition surfaced at index-construction time: the attribute cannot
// back an equality index.
var ErrNoNormalizerAvailable = errors.New("index: no normalizer available")

func less[T int64 | string](a, b T) bool { return a < b }

// Index is a forward (value -> {id}) / reverse (id -> {value}) pair over a
// single attribute, both ordered multi-maps. The two are views of one
// relation, kept consistent by this type alone, never by one map pointing
// into the other.
type Index struct {
	// Attr is nil for indexes that are not tied to a schema attribute type
	// (e.g. a structural index); present for every system and user
	// attribute index.
	Attr      *schema.AttributeType
	normalize schema.ValueNormalizer
	forward   table.Ordered[string, int64]
	reverse   table.Ordered[int64, string]
}

// New constructs an Index directly from an attribute type and a
// normalizer, bypassing schema lookup. Used for system indexes whose key
// space isn't a schema-governed attribute value (ObjectClass names,
// EntryCSN, EntryUUID, Alias target DNs) but which still want the same
// forward/reverse/normalize shape.
func New(attr *schema.AttributeType, normalize schema.ValueNormalizer) *Index {
	if normalize == nil {
		normalize = IdentityNormalizer
	}
	return &Index{
		Attr:      attr,
		normalize: normalize,
		forward:   table.NewRadix[int64](less[int64]),
		reverse:   table.NewBTree[int64, string](less[int64], less[string]),
	}
}

// IdentityNormalizer performs no transformation; used by indexes whose key
// space needs no folding (EntryUUID, EntryCSN).
func IdentityNormalizer(v string) string { return v }

// NewFromSchema builds a user (or schema-governed system) index over
// attrType, looking up its equality matching rule in s. It fails with
// ErrNoNormalizerAvailable if attrType is unknown or has no equality
// matching rule.
func NewFromSchema(s *schema.Schema, attrType string) (*Index, error) {
	at := s.GetAttributeType(attrType)
	if at == nil {
		return nil, fmt.Errorf("%w: unknown attribute %q", ErrNoNormalizerAvailable, attrType)
	}
	normalize, err := s.EqualityNormalizer(attrType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoNormalizerAvailable, attrType, err)
	}
	return New(at, normalize), nil
}

// Add inserts (value, id): forward.put(normalize(value), id);
// reverse.put(id, value). The reverse side keeps the value in its original,
// un-normalized form, since it is handed back to callers as the entry's
// actual stored value.
func (idx *Index) Add(value string, id int64) {
	idx.forward.Put(idx.normalize(value), id)
	idx.reverse.Put(id, value)
}

// Drop removes every tuple for id: walk the reverse cursor to recover
// each value, delete (normalize(value), id) from forward, then clear
// reverse(id).
func (idx *Index) Drop(id int64) {
	c := idx.reverse.ValueCursor(id)
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
		idx.forward.RemoveKV(idx.normalize(v), id)
	}
	idx.reverse.Remove(id)
}

// DropValue removes a single (value, id) pair from both tables.
func (idx *Index) DropValue(value string, id int64) {
	idx.forward.RemoveKV(idx.normalize(value), id)
	idx.reverse.RemoveKV(id, value)
}

// Has reports whether (value, id) is present in the forward table.
func (idx *Index) Has(value string, id int64) bool {
	return idx.forward.HasKV(idx.normalize(value), id)
}

// Lookup returns the smallest id stored at value, or ok=false if value has
// no ids. Used by the single-valued system indexes (NDN, UPDN) whose
// forward key normally maps to exactly one id.
func (idx *Index) Lookup(value string) (int64, bool) {
	return idx.forward.Get(idx.normalize(value))
}

// HasID reports whether id has any value at all in this index, the
// question Presence answers.
func (idx *Index) HasID(id int64) bool {
	return idx.reverse.Has(id)
}

// ForwardGreaterOrEqual reports whether any normalized value >= value has
// at least one id.
func (idx *Index) ForwardGreaterOrEqual(value string) bool {
	return idx.forward.HasGreaterOrEqual(idx.normalize(value))
}

// ForwardLessOrEqual reports whether any normalized value <= value has at
// least one id.
func (idx *Index) ForwardLessOrEqual(value string) bool {
	return idx.forward.HasLessOrEqual(idx.normalize(value))
}

// ForwardValueCursor opens a cursor over every id stored at value.
func (idx *Index) ForwardValueCursor(value string) table.ValueCursor[int64] {
	return idx.forward.ValueCursor(idx.normalize(value))
}

// ForwardRangeCursor opens a cursor over every (value, id) pair with
// normalized value >= from.
func (idx *Index) ForwardRangeCursor(from string) table.Cursor[string, int64] {
	return idx.forward.CursorAt(idx.normalize(from))
}

// ReverseValueCursor opens a cursor over every value id carries in this
// index.
func (idx *Index) ReverseValueCursor(id int64) table.ValueCursor[string] {
	return idx.reverse.ValueCursor(id)
}

// Count returns the total number of (value, id) pairs.
func (idx *Index) Count() int { return idx.forward.Count() }

// CountValue returns the number of ids stored at value.
func (idx *Index) CountValue(value string) int {
	return idx.forward.CountKey(idx.normalize(value))
}

// ReadOnly exposes an Index's query surface without Add/Drop/DropValue, the
// shape the partition engine's index accessors hand out to callers so that
// indexes are never mutated from outside the engine.
type ReadOnly interface {
	Has(value string, id int64) bool
	HasID(id int64) bool
	Lookup(value string) (int64, bool)
	ForwardGreaterOrEqual(value string) bool
	ForwardLessOrEqual(value string) bool
	ForwardValueCursor(value string) table.ValueCursor[int64]
	ForwardRangeCursor(from string) table.Cursor[string, int64]
	ReverseValueCursor(id int64) table.ValueCursor[string]
	Count() int
	CountValue(value string) int
}

// Forward exposes the underlying forward table read-only to callers that
// need a raw cursor over the whole index (e.g. a full-index scan).
func (idx *Index) Forward() table.Ordered[string, int64] { return idx.forward }

// Reverse exposes the underlying reverse table read-only.
func (idx *Index) Reverse() table.Ordered[int64, string] { return idx.reverse }
