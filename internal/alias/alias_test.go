package alias

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oba-ldap/obastore/internal/dn"
)

// fakeStore is a minimal in-memory Store used to test the alias protocol
// in isolation from internal/partition.
type fakeStore struct {
	suffix      dn.DN
	ndnToID     map[string]int64
	idToNDN     map[int64]dn.DN
	parent      map[int64]int64
	children    map[int64][]int64 // direct children, for Subtree/IsDescendant
	aliasTarget map[int64]dn.DN
	oneAlias    map[int64]map[int64]bool
	subAlias    map[int64]map[int64]bool
}

func newFakeStore(suffix dn.DN) *fakeStore {
	return &fakeStore{
		suffix:      suffix,
		ndnToID:     map[string]int64{},
		idToNDN:     map[int64]dn.DN{},
		parent:      map[int64]int64{},
		children:    map[int64][]int64{},
		aliasTarget: map[int64]dn.DN{},
		oneAlias:    map[int64]map[int64]bool{},
		subAlias:    map[int64]map[int64]bool{},
	}
}

func (f *fakeStore) addEntry(id, parentID int64, d dn.DN) {
	f.ndnToID[d.Key()] = id
	f.idToNDN[id] = d
	f.parent[id] = parentID
	f.children[parentID] = append(f.children[parentID], id)
}

func (f *fakeStore) SuffixDN() dn.DN { return f.suffix }

func (f *fakeStore) ResolveNDN(d dn.DN) (int64, bool) {
	id, ok := f.ndnToID[d.Key()]
	return id, ok
}

func (f *fakeStore) ParentID(id int64) (int64, bool) {
	p, ok := f.parent[id]
	return p, ok
}

func (f *fakeStore) IsAlias(id int64) bool {
	_, ok := f.aliasTarget[id]
	return ok
}

func (f *fakeStore) AliasTarget(aliasID int64) (dn.DN, bool) {
	d, ok := f.aliasTarget[aliasID]
	return d, ok
}

func (f *fakeStore) PutAlias(aliasID int64, target dn.DN) { f.aliasTarget[aliasID] = target }
func (f *fakeStore) RemoveAlias(aliasID int64)            { delete(f.aliasTarget, aliasID) }

func (f *fakeStore) PutOneAlias(ancestorID, targetID int64) {
	if f.oneAlias[ancestorID] == nil {
		f.oneAlias[ancestorID] = map[int64]bool{}
	}
	f.oneAlias[ancestorID][targetID] = true
}
func (f *fakeStore) RemoveOneAlias(ancestorID, targetID int64) {
	delete(f.oneAlias[ancestorID], targetID)
}

func (f *fakeStore) PutSubAlias(ancestorID, targetID int64) {
	if f.subAlias[ancestorID] == nil {
		f.subAlias[ancestorID] = map[int64]bool{}
	}
	f.subAlias[ancestorID][targetID] = true
}
func (f *fakeStore) RemoveSubAlias(ancestorID, targetID int64) {
	delete(f.subAlias[ancestorID], targetID)
}

func (f *fakeStore) IsDescendant(ancestorID, id int64) bool {
	if ancestorID == id {
		return true
	}
	for _, c := range f.Subtree(ancestorID) {
		if c == id {
			return true
		}
	}
	return false
}

func (f *fakeStore) AncestorsAbove(fromID int64) []int64 {
	var out []int64
	suffixID := f.ndnToID[f.suffix.Key()]
	for id := fromID; ; {
		out = append(out, id)
		if id == suffixID {
			break
		}
		p, ok := f.parent[id]
		if !ok {
			break
		}
		id = p
	}
	return out
}

func (f *fakeStore) Subtree(id int64) []int64 {
	out := []int64{id}
	for _, c := range f.children[id] {
		out = append(out, f.Subtree(c)...)
	}
	return out
}

func mustParse(t *testing.T, s string) dn.DN {
	t.Helper()
	d, err := dn.Parse(s)
	require.NoError(t, err)
	return d
}

func TestAddIndices_CycleToSelf(t *testing.T) {
	suffix := mustParse(t, "dc=example,dc=com")
	s := newFakeStore(suffix)
	s.addEntry(1, 0, suffix)

	aliasDN := mustParse(t, "cn=ref,dc=example,dc=com")
	err := AddIndices(s, 2, aliasDN, aliasDN.String(), dn.NormalizeSimple)

	var derefErr *DereferencingError
	require.ErrorAs(t, err, &derefErr)
	require.Equal(t, ReasonCycleToSelf, derefErr.Reason)
}

func TestAddIndices_CycleToAncestor(t *testing.T) {
	suffix := mustParse(t, "dc=example,dc=com")
	s := newFakeStore(suffix)
	s.addEntry(1, 0, suffix)
	group1DN := mustParse(t, "cn=group1,dc=example,dc=com")
	s.addEntry(2, 1, group1DN)

	aliasDN := mustParse(t, "cn=ref,cn=group1,dc=example,dc=com")
	err := AddIndices(s, 3, aliasDN, group1DN.String(), dn.NormalizeSimple)

	var derefErr *DereferencingError
	require.ErrorAs(t, err, &derefErr)
	require.Equal(t, ReasonCycleToAncestor, derefErr.Reason)
}

func TestAddIndices_OutOfContext(t *testing.T) {
	suffix := mustParse(t, "dc=example,dc=com")
	s := newFakeStore(suffix)
	s.addEntry(1, 0, suffix)

	aliasDN := mustParse(t, "cn=ref,dc=example,dc=com")
	err := AddIndices(s, 2, aliasDN, "dc=other,dc=net", dn.NormalizeSimple)

	var derefErr *DereferencingError
	require.ErrorAs(t, err, &derefErr)
	require.Equal(t, ReasonOutOfContext, derefErr.Reason)
}

func TestAddIndices_TargetMissing(t *testing.T) {
	suffix := mustParse(t, "dc=example,dc=com")
	s := newFakeStore(suffix)
	s.addEntry(1, 0, suffix)

	aliasDN := mustParse(t, "cn=ref,dc=example,dc=com")
	err := AddIndices(s, 2, aliasDN, "cn=nonexistent,dc=example,dc=com", dn.NormalizeSimple)

	var problemErr *ProblemError
	require.ErrorAs(t, err, &problemErr)
}

func TestAddIndices_Chain(t *testing.T) {
	suffix := mustParse(t, "dc=example,dc=com")
	s := newFakeStore(suffix)
	s.addEntry(1, 0, suffix)
	targetDN := mustParse(t, "cn=target,dc=example,dc=com")
	s.addEntry(2, 1, targetDN)
	a1DN := mustParse(t, "cn=a1,dc=example,dc=com")
	s.addEntry(3, 1, a1DN)
	require.NoError(t, AddIndices(s, 3, a1DN, targetDN.String(), dn.NormalizeSimple))

	a2DN := mustParse(t, "cn=a2,dc=example,dc=com")
	err := AddIndices(s, 4, a2DN, a1DN.String(), dn.NormalizeSimple)

	var derefErr *DereferencingError
	require.ErrorAs(t, err, &derefErr)
	require.Equal(t, ReasonChain, derefErr.Reason)
}

func TestAddIndices_MaterializesOneAliasAndSubAlias(t *testing.T) {
	suffix := mustParse(t, "dc=example,dc=com")
	s := newFakeStore(suffix)
	s.addEntry(1, 0, suffix)
	ouDN := mustParse(t, "ou=people,dc=example,dc=com")
	s.addEntry(2, 1, ouDN)
	targetDN := mustParse(t, "cn=target,dc=example,dc=com")
	s.addEntry(3, 1, targetDN)
	aliasDN := mustParse(t, "cn=ref,ou=people,dc=example,dc=com")
	s.addEntry(4, 2, aliasDN)

	err := AddIndices(s, 4, aliasDN, targetDN.String(), dn.NormalizeSimple)
	require.NoError(t, err)

	require.True(t, s.oneAlias[2][3], "target is not a sibling so OneAlias(ou=people) must contain target")
	require.True(t, s.subAlias[2][3])
	// The target is a descendant of the suffix, so no tuple is anchored
	// there: a subtree search from the suffix reaches it without help.
	require.False(t, s.subAlias[1][3])
}

func TestDropIndices_RemovesAllTuples(t *testing.T) {
	suffix := mustParse(t, "dc=example,dc=com")
	s := newFakeStore(suffix)
	s.addEntry(1, 0, suffix)
	ouDN := mustParse(t, "ou=people,dc=example,dc=com")
	s.addEntry(2, 1, ouDN)
	targetDN := mustParse(t, "cn=target,dc=example,dc=com")
	s.addEntry(3, 1, targetDN)
	aliasDN := mustParse(t, "cn=ref,ou=people,dc=example,dc=com")
	s.addEntry(4, 2, aliasDN)
	require.NoError(t, AddIndices(s, 4, aliasDN, targetDN.String(), dn.NormalizeSimple))

	DropIndices(s, 4)

	require.False(t, s.IsAlias(4))
	require.False(t, s.oneAlias[2][3])
	require.False(t, s.subAlias[2][3])
	require.False(t, s.subAlias[1][3])
}

func TestDropMovedAliasIndices_EnumeratesDescendants(t *testing.T) {
	suffix := mustParse(t, "dc=example,dc=com")
	s := newFakeStore(suffix)
	s.addEntry(1, 0, suffix)
	ouADN := mustParse(t, "ou=a,dc=example,dc=com")
	s.addEntry(2, 1, ouADN)
	ouBDN := mustParse(t, "ou=b,ou=a,dc=example,dc=com")
	s.addEntry(3, 2, ouBDN)
	targetDN := mustParse(t, "cn=target,dc=example,dc=com")
	s.addEntry(4, 1, targetDN)
	aliasDN := mustParse(t, "cn=ref,ou=b,ou=a,dc=example,dc=com")
	s.addEntry(5, 3, aliasDN)
	require.NoError(t, AddIndices(s, 5, aliasDN, targetDN.String(), dn.NormalizeSimple))

	// Sanity: ancestor tuples exist at ou=b (3) and ou=a (2); none at the
	// suffix since the target descends from it.
	require.True(t, s.subAlias[3][4])
	require.True(t, s.subAlias[2][4])
	require.False(t, s.subAlias[1][4])

	// Move ou=b (id 3, the base) out from under ou=a. Its own ancestor
	// tuple (3 -> 4) should be untouched; only the tuples above it go.
	DropMovedAliasIndices(s, 3, 2)

	require.False(t, s.subAlias[2][4], "tuple above the moved base must be dropped")
	require.True(t, s.subAlias[3][4], "tuple at the moved base itself must survive")
}
