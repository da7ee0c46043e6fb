package partition

import (
	"fmt"

	"github.com/oba-ldap/obastore/internal/alias"
	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/entry"
)

// Add inserts a new entry and returns its allocated id. The entry's UserDN
// must be set; the engine derives the normalized DN from it under the
// schema. The entry must carry objectClass, entryCSN and entryUUID
// attributes (see operational.go for stamping the latter two).
//
// Validation runs in full before the first index is touched, so every
// structural failure (missing parent, missing objectClass, alias cycle or
// chain) leaves the partition exactly as it was. A failure after mutation
// has begun is not rolled back; callers that need atomicity provide it in
// an outer frame.
func (p *Partition) Add(e *entry.Entry) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkInitialized(); err != nil {
		return 0, err
	}
	if e == nil || e.UserDN.Empty() {
		return 0, newSchemaViolation("entry has no DN")
	}

	norm := p.schema.DNNormalizer()
	ndn := e.UserDN.Normalize(norm)

	if err := requireNormalized(ndn); err != nil {
		return 0, err
	}
	if _, ok := p.ndn.Lookup(ndn.Key()); ok {
		return 0, fmt.Errorf("%w: %s", ErrEntryExists, ndn.String())
	}

	// Parent resolution: the suffix entry hangs off the sentinel parent,
	// everything else must have a live parent.
	var parentID int64
	if ndn.Equal(p.suffixDN) {
		parentID = rootSentinelParent
	} else {
		parent := ndn.Parent()
		id, ok := p.ndn.Lookup(parent.Key())
		if !ok {
			return 0, newNameNotFound(parent.String())
		}
		parentID = id
	}

	classes := e.ObjectClasses()
	if len(classes) == 0 {
		return 0, newSchemaViolation("missing objectClass")
	}
	csn := e.GetFirstAttribute(attrEntryCSN)
	if csn == "" {
		return 0, newSchemaViolation("missing entryCSN")
	}
	uuid := e.GetFirstAttribute(attrEntryUUID)
	if uuid == "" {
		return 0, newSchemaViolation("missing entryUUID")
	}

	// Alias validity is checked ahead of any mutation; the tuple inserts
	// happen below once the structural indexes know the new entry.
	isAlias := e.HasObjectClass(objectClassAlias)
	var aliasTarget string
	if isAlias {
		aliasTarget = e.GetFirstAttribute(attrAliasedObjectName)
		if aliasTarget == "" {
			return 0, newSchemaViolation("alias entry has no aliasedObjectName")
		}
		if _, _, err := alias.Validate(p, ndn, aliasTarget, norm); err != nil {
			return 0, err
		}
	}

	id := p.master.NextID()
	stored := e.Clone()
	stored.ID = id
	stored.NormDN = ndn

	for _, class := range classes {
		p.objectClass.Add(class, id)
	}

	p.ndn.Add(ndn.Key(), id)
	p.updn.Add(e.UserDN.String(), id)
	p.oneLevel.Add(parentID, id)

	if isAlias {
		if err := alias.AddIndices(p, id, ndn, aliasTarget, norm); err != nil {
			// Validate passed above with no writer in between; reaching
			// here means engine state changed underneath us.
			return 0, fmt.Errorf("%w: alias re-validation failed mid-add: %v", ErrInternal, err)
		}
	}

	p.entryCSN.Add(csn, id)
	p.entryUUID.Add(uuid, id)

	// Subtree membership for every ancestor, suffix included, plus self.
	for ancestor := parentID; ancestor != rootSentinelParent; {
		p.subLevel.Add(ancestor, id)
		next, ok := p.ParentID(ancestor)
		if !ok {
			break
		}
		ancestor = next
	}
	p.subLevel.Add(id, id)

	for name, values := range stored.Attributes {
		idx, ok := p.userIndices[name]
		if !ok {
			continue
		}
		for _, v := range values {
			idx.Add(v, id)
		}
		p.presence.Add(name, id)
	}

	p.master.Put(stored)
	p.log.Debug("entry added", "dn", ndn.String(), "id", id)
	return id, nil
}

// requireNormalized rejects a DN whose AVA types are not already in
// canonical form. The normalizer lowercases and trims every type, so a DN
// that round-trips unequal was never normalized. This is the in-memory analogue of
// the original engine's leading-digit check on OID-form DNs.
func requireNormalized(d dn.DN) error {
	for _, r := range d.RDNs {
		for _, a := range r.AVAs {
			nt, _ := dn.NormalizeSimple(a.Type, "")
			if a.Type != nt {
				return fmt.Errorf("%w: DN %q is not normalized", ErrInternal, d.String())
			}
		}
	}
	return nil
}
