package partition

import (
	"github.com/oba-ldap/obastore/internal/alias"
	"github.com/oba-ldap/obastore/internal/dn"
)

// Delete removes the entry with the given id and every index tuple that
// references it. Alias bookkeeping runs first while the tree shape around
// the entry is still intact.
func (p *Partition) Delete(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkInitialized(); err != nil {
		return err
	}
	return p.deleteLocked(id)
}

// DeleteDN resolves a normalized DN through NDN and deletes the entry.
func (p *Partition) DeleteDN(d dn.DN) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkInitialized(); err != nil {
		return err
	}
	nd := d.Normalize(p.schema.DNNormalizer())
	id, ok := p.ResolveNDN(nd)
	if !ok {
		return newNameNotFound(nd.String())
	}
	return p.deleteLocked(id)
}

func (p *Partition) deleteLocked(id int64) error {
	e, ok := p.master.Get(id)
	if !ok {
		return newNameNotFound(idString(id))
	}

	if e.HasObjectClass(objectClassAlias) {
		alias.DropIndices(p, id)
	}

	for _, class := range e.ObjectClasses() {
		p.objectClass.DropValue(class, id)
	}

	parentID, hasParent := p.ParentID(id)

	p.ndn.Drop(id)
	p.updn.Drop(id)
	p.entryCSN.Drop(id)
	p.entryUUID.Drop(id)

	// Children tuples keyed by this id (normally none: callers delete
	// leaves first), then the tuple naming it as a child.
	p.oneLevel.DropForwardKey(id)
	if hasParent && parentID != rootSentinelParent {
		p.oneLevel.DropKV(parentID, id)
	} else if hasParent {
		// The suffix entry hangs off the sentinel; its tuple goes too.
		p.oneLevel.DropKV(rootSentinelParent, id)
	}

	if id != rootID {
		p.subLevel.Drop(id)
	} else {
		p.subLevel.DropKV(id, id)
	}
	p.subLevel.DropForwardKey(id)

	for name := range e.Attributes {
		idx, ok := p.userIndices[name]
		if !ok {
			continue
		}
		idx.Drop(id)
		p.presence.DropValue(name, id)
	}

	p.master.Delete(id)
	p.log.Debug("entry deleted", "dn", e.NormDN.String(), "id", id)
	return nil
}
