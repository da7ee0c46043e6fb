package entry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oba-ldap/obastore/internal/dn"
)

func mustParse(t *testing.T, s string) dn.DN {
	t.Helper()
	d, err := dn.Parse(s)
	require.NoError(t, err)
	return d
}

func TestEntry_SetGetAttribute(t *testing.T) {
	d := mustParse(t, "cn=alice,dc=example,dc=com")
	e := New(1, d, d)
	e.SetAttribute("cn", "alice", "Alice A.")
	require.Equal(t, []string{"alice", "Alice A."}, e.GetAttribute("CN"))
	require.True(t, e.HasAttribute("cn"))
}

func TestEntry_DeleteAttributeValue_RemovesAttributeWhenEmpty(t *testing.T) {
	d := mustParse(t, "cn=alice,dc=example,dc=com")
	e := New(1, d, d)
	e.SetAttribute("cn", "alice")
	removed := e.DeleteAttributeValue("cn", "alice")
	require.True(t, removed)
	require.False(t, e.HasAttribute("cn"))
}

func TestEntry_DeleteAttributeValue_KeepsAttributeWithRemainingValues(t *testing.T) {
	d := mustParse(t, "cn=alice,dc=example,dc=com")
	e := New(1, d, d)
	e.SetAttribute("cn", "alice", "Alice A.")
	removed := e.DeleteAttributeValue("cn", "alice")
	require.False(t, removed)
	require.Equal(t, []string{"Alice A."}, e.GetAttribute("cn"))
}

func TestEntry_HasObjectClass(t *testing.T) {
	d := mustParse(t, "cn=ref,dc=example,dc=com")
	e := New(1, d, d)
	e.SetAttribute("objectClass", "top", "Alias")
	require.True(t, e.HasObjectClass("alias"))
	require.False(t, e.HasObjectClass("person"))
}

func TestEntry_CloneIsIndependent(t *testing.T) {
	d := mustParse(t, "cn=alice,dc=example,dc=com")
	e := New(1, d, d)
	e.SetAttribute("cn", "alice")

	clone := e.Clone()
	clone.AddAttributeValue("cn", "Alice A.")

	require.Equal(t, []string{"alice"}, e.GetAttribute("cn"))
	require.Equal(t, []string{"alice", "Alice A."}, clone.GetAttribute("cn"))
}
