package master

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/entry"
)

func TestTable_NextIDStartsAtOneAndNeverRepeats(t *testing.T) {
	tbl := New()
	first := tbl.NextID()
	second := tbl.NextID()
	require.Equal(t, int64(1), first)
	require.Equal(t, int64(2), second)
}

func TestTable_NextIDDoesNotReuseAfterDelete(t *testing.T) {
	tbl := New()
	id := tbl.NextID()
	d, _ := dn.Parse("dc=example,dc=com")
	e := entry.New(id, d, d)
	tbl.Put(e)
	tbl.Delete(id)

	next := tbl.NextID()
	require.NotEqual(t, id, next)
	require.Greater(t, next, id)
}

func TestTable_PutGetDelete(t *testing.T) {
	tbl := New()
	d, _ := dn.Parse("dc=example,dc=com")
	e := entry.New(1, d, d)
	tbl.Put(e)

	got, ok := tbl.Get(1)
	require.True(t, ok)
	require.Equal(t, e, got)
	require.Equal(t, 1, tbl.Count())

	tbl.Delete(1)
	_, ok = tbl.Get(1)
	require.False(t, ok)
	require.Equal(t, 0, tbl.Count())
}

func TestTable_Properties(t *testing.T) {
	tbl := New()
	_, ok := tbl.GetProperty("suffix")
	require.False(t, ok)

	tbl.SetProperty("suffix", "dc=example,dc=com")
	v, ok := tbl.GetProperty("suffix")
	require.True(t, ok)
	require.Equal(t, "dc=example,dc=com", v)
}
