package dn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_RootFirstOrder(t *testing.T) {
	d, err := Parse("uid=alice,ou=users,dc=example,dc=com")
	require.NoError(t, err)
	require.Equal(t, 4, d.Depth())
	require.Equal(t, "dc", d.RDNs[0].AVAs[0].Type)
	require.Equal(t, "com", d.RDNs[0].AVAs[0].Value)
	leaf, ok := d.Leaf()
	require.True(t, ok)
	require.Equal(t, "uid", leaf.AVAs[0].Type)
	require.Equal(t, "alice", leaf.AVAs[0].Value)
}

func TestParse_RoundTripsThroughString(t *testing.T) {
	d, err := Parse("uid=alice,ou=users,dc=example,dc=com")
	require.NoError(t, err)
	require.Equal(t, "uid=alice,ou=users,dc=example,dc=com", d.String())
}

func TestParse_MultiValuedRDN(t *testing.T) {
	d, err := Parse("cn=bob+uid=bob,dc=example,dc=com")
	require.NoError(t, err)
	leaf, ok := d.Leaf()
	require.True(t, ok)
	require.Len(t, leaf.AVAs, 2)
	_, hasCn := leaf.HasType("cn")
	_, hasUID := leaf.HasType("uid")
	require.True(t, hasCn)
	require.True(t, hasUID)
}

func TestParse_EscapedComma(t *testing.T) {
	d, err := Parse(`cn=Smith\, John,dc=example,dc=com`)
	require.NoError(t, err)
	leaf, _ := d.Leaf()
	require.Equal(t, "Smith, John", leaf.AVAs[0].Value)
}

func TestParse_EmptyIsError(t *testing.T) {
	_, err := Parse("")
	require.ErrorIs(t, err, ErrEmptyDN)
}

func TestParse_MissingEqualsIsError(t *testing.T) {
	_, err := Parse("notanava,dc=example,dc=com")
	require.ErrorIs(t, err, ErrInvalidRDN)
}

func TestDN_ParentAndChild(t *testing.T) {
	d, err := Parse("uid=alice,ou=users,dc=example,dc=com")
	require.NoError(t, err)
	parent := d.Parent()
	require.Equal(t, "ou=users,dc=example,dc=com", parent.String())

	leaf, _ := d.Leaf()
	rebuilt := parent.Child(leaf)
	require.True(t, rebuilt.Equal(d))
}

func TestDN_Key_IsPrefixForDescendants(t *testing.T) {
	suffix, _ := Parse("dc=example,dc=com")
	child, _ := Parse("ou=users,dc=example,dc=com")
	grandchild, _ := Parse("uid=alice,ou=users,dc=example,dc=com")

	require.Contains(t, child.Key(), suffix.Key())
	require.Contains(t, grandchild.Key(), child.Key())
}

func TestDN_Normalize(t *testing.T) {
	d, err := Parse("UID=Alice,OU=Users,DC=Example,DC=Com")
	require.NoError(t, err)
	n := d.Normalize(NormalizeSimple)
	require.Equal(t, "uid=alice,ou=users,dc=example,dc=com", n.String())
}

func TestDN_IsAncestorDescendant(t *testing.T) {
	suffix, _ := Parse("dc=example,dc=com")
	child, _ := Parse("ou=users,dc=example,dc=com")

	require.True(t, suffix.IsAncestorOf(child))
	require.True(t, child.IsDescendantOf(suffix))
	require.False(t, child.IsAncestorOf(suffix))
	require.True(t, child.IsDirectChildOf(suffix))
	require.True(t, child.HasSuffix(suffix))
}

func TestParseKey_RoundTripsWithKey(t *testing.T) {
	d, err := Parse("uid=alice,ou=users,dc=example,dc=com")
	require.NoError(t, err)
	reparsed, err := ParseKey(d.Key())
	require.NoError(t, err)
	require.True(t, d.Equal(reparsed))
}

func TestDN_EqualIsOrderIndependentWithinRDN(t *testing.T) {
	a, _ := Parse("cn=bob+uid=bob,dc=example,dc=com")
	b, _ := Parse("uid=bob+cn=bob,dc=example,dc=com")
	require.True(t, a.Equal(b))
}
