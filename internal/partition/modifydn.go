package partition

import (
	"github.com/oba-ldap/obastore/internal/alias"
	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/entry"
)

// Rename changes the entry's terminal RDN in place. The parent-child
// relationships are untouched; the DN change propagates to every descendant
// through modifyDnLocked. With deleteOldRdn, old RDN values that do not
// survive into the new RDN are removed from the entry and its indexes.
func (p *Partition) Rename(d dn.DN, newRdn dn.RDN, deleteOldRdn bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkInitialized(); err != nil {
		return err
	}
	return p.renameLocked(d.Normalize(p.schema.DNNormalizer()), newRdn, deleteOldRdn)
}

func (p *Partition) renameLocked(d dn.DN, newRdn dn.RDN, deleteOldRdn bool) error {
	live, id, err := p.entryByDN(d)
	if err != nil {
		return err
	}
	if len(newRdn.AVAs) == 0 {
		return newSchemaViolation("invalid RDN change: empty RDN")
	}

	norm := p.schema.DNNormalizer()
	oldRdn, _ := live.UserDN.Leaf()

	// New RDN values become entry values and index tuples.
	for _, ava := range newRdn.AVAs {
		attr := normalizeAttrName(ava.Type)
		mergeValue(live, attr, ava.Value)
		if idx, ok := p.userIndices[attr]; ok {
			idx.Add(ava.Value, id)
			p.presence.Add(attr, id)
		}
	}

	if deleteOldRdn {
		for _, old := range oldRdn.AVAs {
			if rdnCarriesAVA(newRdn, old, norm) {
				continue
			}
			attr := normalizeAttrName(old.Type)
			removed := removeValueNormalized(live, attr, old.Value, norm)
			idx, indexed := p.userIndices[attr]
			for _, v := range removed {
				if indexed {
					idx.DropValue(v, id)
				}
			}
			if indexed && !live.HasAttribute(attr) {
				p.presence.DropValue(attr, id)
			}
		}
	}

	p.master.Put(live)

	newUpdn := live.UserDN.Parent().Child(newRdn)
	if err := p.modifyDnLocked(id, newUpdn, false); err != nil {
		return err
	}
	p.log.Debug("entry renamed", "dn", d.String(), "newRdn", newRdn.String(), "id", id)
	return nil
}

// Move re-parents the subtree rooted at d under newParent, keeping the
// terminal RDN.
func (p *Partition) Move(d dn.DN, newParent dn.DN) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkInitialized(); err != nil {
		return err
	}
	norm := p.schema.DNNormalizer()
	return p.moveLocked(d.Normalize(norm), newParent.Normalize(norm))
}

// MoveAndRename renames the entry's terminal RDN and re-parents it under
// newParent in one operation. The rename runs first, rewriting the subtree
// names under the old parent; the move then relocates the renamed subtree.
func (p *Partition) MoveAndRename(d dn.DN, newParent dn.DN, newRdn dn.RDN, deleteOldRdn bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkInitialized(); err != nil {
		return err
	}
	norm := p.schema.DNNormalizer()
	nd := d.Normalize(norm)
	if err := p.renameLocked(nd, newRdn, deleteOldRdn); err != nil {
		return err
	}
	renamed := nd.Parent().Child(newRdn).Normalize(norm)
	return p.moveLocked(renamed, newParent.Normalize(norm))
}

func (p *Partition) moveLocked(d dn.DN, newParent dn.DN) error {
	childID, ok := p.ResolveNDN(d)
	if !ok {
		return newNameNotFound(d.String())
	}
	if childID == rootID {
		return newSchemaViolation("cannot move the partition suffix")
	}
	newParentID, ok := p.ResolveNDN(newParent)
	if !ok {
		return newNameNotFound(newParent.String())
	}
	oldParentID, _ := p.ParentID(childID)
	if oldParentID == newParentID {
		return nil
	}

	// Ancestor/target alias tuples above the moved base stop being valid
	// the moment the base re-parents; drop them while the old chain is
	// still walkable.
	alias.DropMovedAliasIndices(p, childID, oldParentID)

	p.oneLevel.DropKV(oldParentID, childID)
	p.oneLevel.Add(newParentID, childID)

	p.updateSubLevelLocked(childID, oldParentID, newParentID)

	child, ok := p.master.Get(childID)
	if !ok {
		return newNameNotFound(d.String())
	}
	childRdn, _ := child.UserDN.Leaf()

	var newParentUpdn dn.DN
	if pe, ok := p.master.Get(newParentID); ok {
		newParentUpdn = pe.UserDN
	}
	newUpdn := newParentUpdn.Child(childRdn)

	if err := p.modifyDnLocked(childID, newUpdn, true); err != nil {
		return err
	}
	p.log.Debug("subtree moved", "dn", d.String(), "newParent", newParent.String(), "id", childID)
	return nil
}

// updateSubLevelLocked rewrites subtree membership after a re-parent: the
// Cartesian product of the old parent's ancestor chain and the moved
// subtree is dropped, then the same product over the new chain is added.
// Tuples anchored at the suffix entry stay put: the subtree never leaves
// the partition, so the suffix remains an ancestor throughout.
func (p *Partition) updateSubLevelLocked(childID, oldParentID, newParentID int64) {
	subtree := p.Subtree(childID)

	for _, ancestor := range p.interiorAncestors(oldParentID) {
		for _, descendant := range subtree {
			p.subLevel.DropKV(ancestor, descendant)
		}
	}
	for _, ancestor := range p.interiorAncestors(newParentID) {
		for _, descendant := range subtree {
			p.subLevel.Add(ancestor, descendant)
		}
	}
}

// interiorAncestors returns fromID and its ancestors, parent-first,
// excluding the suffix entry and the sentinel.
func (p *Partition) interiorAncestors(fromID int64) []int64 {
	var out []int64
	for id := fromID; id != rootSentinelParent && id != rootID; {
		out = append(out, id)
		next, ok := p.ParentID(id)
		if !ok {
			break
		}
		id = next
	}
	return out
}

// modifyDnLocked rewrites NDN and UPDN for id and recursively for every
// descendant, rebuilding each child's user DN by stacking its own terminal
// RDN onto the parent's new user DN. On a move, an alias encountered along
// the way gets its ancestor tuples re-derived for the new chain.
func (p *Partition) modifyDnLocked(id int64, newUpdn dn.DN, isMove bool) error {
	norm := p.schema.DNNormalizer()
	newNdn := newUpdn.Normalize(norm)

	p.ndn.Drop(id)
	p.updn.Drop(id)
	p.ndn.Add(newNdn.Key(), id)
	p.updn.Add(newUpdn.String(), id)

	e, ok := p.master.Get(id)
	if !ok {
		return newNameNotFound(idString(id))
	}
	e.NormDN = newNdn
	e.UserDN = newUpdn
	p.master.Put(e)

	if isMove && p.IsAlias(id) {
		target := e.GetFirstAttribute(attrAliasedObjectName)
		if target != "" {
			if err := alias.AddIndices(p, id, newNdn, target, norm); err != nil {
				return err
			}
		}
	}

	children := p.childIDs(id)
	for _, childID := range children {
		child, ok := p.master.Get(childID)
		if !ok {
			continue
		}
		childRdn, _ := child.UserDN.Leaf()
		if err := p.modifyDnLocked(childID, newUpdn.Child(childRdn), isMove); err != nil {
			return err
		}
	}
	return nil
}

func (p *Partition) childIDs(id int64) []int64 {
	var out []int64
	c := p.oneLevel.ForwardValueCursor(id)
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
		out = append(out, v)
	}
	return out
}

// rdnCarriesAVA reports whether rdn contains an AVA equal to ava under the
// schema normalizer.
func rdnCarriesAVA(rdn dn.RDN, ava dn.AVA, norm dn.Normalizer) bool {
	wantT, wantV := norm(ava.Type, ava.Value)
	for _, a := range rdn.AVAs {
		t, v := norm(a.Type, a.Value)
		if t == wantT && v == wantV {
			return true
		}
	}
	return false
}

// removeValueNormalized deletes every stored value of attr whose normalized
// form matches value's, returning the removed values in stored form so the
// caller can mirror the removal into the user index.
func removeValueNormalized(e *entry.Entry, attr, value string, norm dn.Normalizer) []string {
	_, want := norm(attr, value)
	var removed []string
	for _, stored := range append([]string(nil), e.GetAttribute(attr)...) {
		if _, got := norm(attr, stored); got == want {
			e.DeleteAttributeValue(attr, stored)
			removed = append(removed, stored)
		}
	}
	return removed
}
