package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oba-ldap/obastore/internal/schema"
)

func newMailSchema() *schema.Schema {
	s := schema.NewSchema()
	mail := schema.NewAttributeType("0.9.2342.19200300.100.1.3", "mail")
	mail.SetMatchingRules("caseIgnoreMatch", "", "")
	s.AddAttributeType(mail)

	noRule := schema.NewAttributeType("1.1.1", "opaque")
	s.AddAttributeType(noRule)
	return s
}

func TestNewFromSchema_RefusesMissingNormalizer(t *testing.T) {
	s := newMailSchema()
	_, err := NewFromSchema(s, "opaque")
	require.ErrorIs(t, err, ErrNoNormalizerAvailable)
}

func TestIndex_AddAndLookup(t *testing.T) {
	s := newMailSchema()
	idx, err := NewFromSchema(s, "mail")
	require.NoError(t, err)

	idx.Add("Alice@Example.com", 1)
	idx.Add("bob@example.com", 2)

	require.True(t, idx.Has("alice@example.com", 1), "lookup normalizes the query value")
	require.Equal(t, 2, idx.Count())
	require.Equal(t, 1, idx.CountValue("ALICE@EXAMPLE.COM"))
}

func TestIndex_DropRemovesAllValuesForID(t *testing.T) {
	s := newMailSchema()
	idx, _ := NewFromSchema(s, "mail")
	idx.Add("x@e.com", 1)
	idx.Add("y@e.com", 1)

	idx.Drop(1)

	require.False(t, idx.Has("x@e.com", 1))
	require.False(t, idx.Has("y@e.com", 1))
	require.False(t, idx.HasID(1))
	require.Equal(t, 0, idx.Count())
}

func TestIndex_DropValueRemovesOnlyThatPair(t *testing.T) {
	s := newMailSchema()
	idx, _ := NewFromSchema(s, "mail")
	idx.Add("x@e.com", 1)
	idx.Add("y@e.com", 1)

	idx.DropValue("x@e.com", 1)

	require.False(t, idx.Has("x@e.com", 1))
	require.True(t, idx.Has("y@e.com", 1))
	require.True(t, idx.HasID(1))
}

func TestIndex_ReverseValueCursorRecoversValuesForID(t *testing.T) {
	s := newMailSchema()
	idx, _ := NewFromSchema(s, "mail")
	idx.Add("x@e.com", 7)
	idx.Add("y@e.com", 7)

	c := idx.ReverseValueCursor(7)
	defer c.Close()
	var values []string
	for {
		ok, err := c.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		v, err := c.Value()
		require.NoError(t, err)
		values = append(values, v)
	}
	require.ElementsMatch(t, []string{"x@e.com", "y@e.com"}, values)
}

func TestIndex_ForwardGreaterLessOrEqual(t *testing.T) {
	idx := New(nil, IdentityNormalizer)
	idx.Add("m", 1)
	require.True(t, idx.ForwardGreaterOrEqual("a"))
	require.False(t, idx.ForwardGreaterOrEqual("z"))
	require.True(t, idx.ForwardLessOrEqual("z"))
	require.False(t, idx.ForwardLessOrEqual("a"))
}
