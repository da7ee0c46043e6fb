package partition

import (
	"github.com/oba-ldap/obastore/internal/alias"
	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/entry"
)

// Modify applies an ordered list of modifications to the entry at d. Each
// op updates the affected indexes before the next op is considered, against
// a working copy of the entry; the working copy is written back to the
// master table once every op has applied. An entry's id and DN never change
// through Modify.
func (p *Partition) Modify(d dn.DN, mods []entry.Modification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkInitialized(); err != nil {
		return err
	}

	live, id, err := p.entryByDN(d.Normalize(p.schema.DNNormalizer()))
	if err != nil {
		return err
	}
	working := live.Clone()

	for _, mod := range mods {
		attr := normalizeAttrName(mod.Attribute)
		switch mod.Type {
		case entry.ModAdd:
			err = p.applyAdd(working, id, attr, mod.Values)
		case entry.ModDelete:
			err = p.applyDelete(working, id, attr, mod.Values)
		case entry.ModReplace:
			err = p.applyReplace(working, id, attr, mod.Values)
		default:
			err = newSchemaViolation("unknown modification type")
		}
		if err != nil {
			return err
		}
	}

	p.master.Put(working)
	p.log.Debug("entry modified", "dn", d.String(), "id", id, "ops", len(mods))
	return nil
}

func (p *Partition) applyAdd(working *entry.Entry, id int64, attr string, values []string) error {
	if attr == attrObjectClass {
		for _, v := range values {
			p.objectClass.Add(v, id)
			mergeValue(working, attr, v)
		}
		return nil
	}

	idx, indexed := p.userIndices[attr]
	for _, v := range values {
		if indexed {
			idx.Add(v, id)
		}
		mergeValue(working, attr, v)
	}
	if indexed && len(values) > 0 {
		p.presence.Add(attr, id)
	}

	if attr == attrAliasedObjectName && len(values) > 0 {
		return alias.AddIndices(p, id, working.NormDN, values[0], p.schema.DNNormalizer())
	}
	return nil
}

func (p *Partition) applyDelete(working *entry.Entry, id int64, attr string, values []string) error {
	if attr == attrAliasedObjectName {
		alias.DropIndices(p, id)
	}

	if attr == attrObjectClass {
		if len(values) == 0 {
			for _, v := range working.GetAttribute(attr) {
				p.objectClass.DropValue(v, id)
			}
			working.DeleteAttribute(attr)
			return nil
		}
		for _, v := range values {
			p.objectClass.DropValue(v, id)
			working.DeleteAttributeValue(attr, v)
		}
		return nil
	}

	idx, indexed := p.userIndices[attr]

	if len(values) == 0 {
		// Empty value list removes the whole attribute.
		if indexed {
			idx.Drop(id)
			p.presence.DropValue(attr, id)
		}
		working.DeleteAttribute(attr)
		return nil
	}

	for _, v := range values {
		if indexed {
			idx.DropValue(v, id)
		}
		working.DeleteAttributeValue(attr, v)
	}
	if indexed && !working.HasAttribute(attr) {
		p.presence.DropValue(attr, id)
	}
	return nil
}

func (p *Partition) applyReplace(working *entry.Entry, id int64, attr string, values []string) error {
	if attr == attrObjectClass {
		// Wholesale reindex of class membership.
		for _, v := range working.GetAttribute(attr) {
			p.objectClass.DropValue(v, id)
		}
		for _, v := range values {
			p.objectClass.Add(v, id)
		}
		working.SetAttribute(attr, values...)
		return nil
	}

	if attr == attrAliasedObjectName {
		alias.DropIndices(p, id)
	}

	if idx, indexed := p.userIndices[attr]; indexed {
		idx.Drop(id)
		p.presence.DropValue(attr, id)
		for _, v := range values {
			idx.Add(v, id)
		}
		if len(values) > 0 {
			p.presence.Add(attr, id)
		}
	}

	if len(values) == 0 {
		working.DeleteAttribute(attr)
	} else {
		working.SetAttribute(attr, values...)
	}

	if attr == attrAliasedObjectName && len(values) > 0 {
		return alias.AddIndices(p, id, working.NormDN, values[0], p.schema.DNNormalizer())
	}
	return nil
}

func mergeValue(e *entry.Entry, attr, value string) {
	for _, existing := range e.GetAttribute(attr) {
		if existing == value {
			return
		}
	}
	e.AddAttributeValue(attr, value)
}
