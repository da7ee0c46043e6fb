// Package partition is the storage engine for one suffix's slice of the
// DIT: it orchestrates the master table and every system/user index across
// add, delete, modify, rename and move, and exposes the read operations
// higher layers use to resolve and enumerate entries. All state lives in
// the in-memory internal/table trees.
package partition

import (
	"fmt"
	"sync"

	"github.com/oba-ldap/obastore/internal/alias"
	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/entry"
	"github.com/oba-ldap/obastore/internal/index"
	"github.com/oba-ldap/obastore/internal/master"
	"github.com/oba-ldap/obastore/internal/obalog"
	"github.com/oba-ldap/obastore/internal/schema"
)

const (
	attrObjectClass       = "objectclass"
	attrAliasedObjectName = "aliasedobjectname"
	attrEntryCSN          = "entrycsn"
	attrEntryUUID         = "entryuuid"
	objectClassAlias      = "alias"

	// rootSentinelParent is the synthetic parent of the partition root;
	// id 0 is reserved and never allocated to an entry.
	rootSentinelParent int64 = 0
	// rootID is the conventional id of the suffix entry: the allocator
	// starts at 1 and the suffix entry is inserted first.
	rootID int64 = 1
)

// Partition is the in-memory engine for one suffix's slice of the DIT.
type Partition struct {
	mu          sync.RWMutex
	initialized bool
	log         obalog.Logger

	schema   *schema.Schema
	suffixDN dn.DN
	name     string

	pendingIndexOIDs []string

	master *master.Table

	ndn         *index.Index // normalized DN -> id
	updn        *index.Index // user-presented DN -> id
	presence    *index.Index // attribute type name, lowercased (not its OID) -> {id}
	objectClass *index.Index // class name -> {id}
	entryCSN    *index.Index // CSN string -> id
	entryUUID   *index.Index // UUID string -> id
	aliasIdx    *index.Index // target normalized DN -> alias id

	oneLevel *idIndex // parent id -> {child id}
	subLevel *idIndex // ancestor id -> {descendant id}, incl. self
	oneAlias *idIndex // ancestor id -> {alias target id}
	subAlias *idIndex // ancestor id -> {alias target id}

	userIndices map[string]*index.Index // attribute type (lowercased) -> index
}

// New returns an uninitialized Partition. Configure it with the setters
// below, then call Init.
func New(log obalog.Logger) *Partition {
	if log == nil {
		log = obalog.NewNop()
	}
	return &Partition{log: log, userIndices: make(map[string]*index.Index)}
}

// SetName configures the partition's display name. Rejected after Init.
func (p *Partition) SetName(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return ErrAlreadyInitialized
	}
	p.name = name
	return nil
}

// SetSuffixDN configures the partition's naming context. Rejected after
// Init; superseded by the suffixDn argument Init itself receives if that
// argument is non-empty.
func (p *Partition) SetSuffixDN(suffix dn.DN) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return ErrAlreadyInitialized
	}
	p.suffixDN = suffix
	return nil
}

// AddIndex queues a user index on attrType to be built at Init time.
// Rejected after Init.
func (p *Partition) AddIndex(attrType string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return ErrAlreadyInitialized
	}
	p.pendingIndexOIDs = append(p.pendingIndexOIDs, attrType)
	return nil
}

// SetUserIndices replaces the queued set of user indexes wholesale.
// Rejected after Init.
func (p *Partition) SetUserIndices(attrTypes []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return ErrAlreadyInitialized
	}
	p.pendingIndexOIDs = append([]string{}, attrTypes...)
	return nil
}

// SetCacheSize is a no-op: the in-memory engine has no page cache to size.
func (p *Partition) SetCacheSize(int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return ErrAlreadyInitialized
	}
	return nil
}

// SetSyncOnWrite is a no-op: there is no durable medium to flush to.
func (p *Partition) SetSyncOnWrite(bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return ErrAlreadyInitialized
	}
	return nil
}

// Init is the one-shot initializer. A second call fails with
// ErrAlreadyInitialized.
func (p *Partition) Init(s *schema.Schema, suffixDn dn.DN, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return ErrAlreadyInitialized
	}
	p.schema = s
	if !suffixDn.Empty() {
		p.suffixDN = suffixDn
	}
	// The suffix takes part in every naming-context comparison, so it is
	// pinned to normalized form here no matter which setter supplied it.
	p.suffixDN = p.suffixDN.Normalize(s.DNNormalizer())
	if name != "" {
		p.name = name
	}

	p.master = master.New()
	p.ndn = index.New(nil, index.IdentityNormalizer)
	p.updn = index.New(nil, index.IdentityNormalizer)
	p.presence = index.New(nil, index.IdentityNormalizer)
	p.objectClass = index.New(nil, normalizeCaseIgnoreLocal)
	p.entryCSN = index.New(nil, index.IdentityNormalizer)
	p.entryUUID = index.New(nil, index.IdentityNormalizer)
	p.aliasIdx = index.New(nil, index.IdentityNormalizer)
	p.oneLevel = newIDIndex()
	p.subLevel = newIDIndex()
	p.oneAlias = newIDIndex()
	p.subAlias = newIDIndex()

	p.userIndices = make(map[string]*index.Index, len(p.pendingIndexOIDs))
	for _, oid := range p.pendingIndexOIDs {
		if p.HasSystemIndexOn(oid) {
			p.log.Warn("attribute is covered by a system index, user index skipped", "attribute", oid)
			continue
		}
		idx, err := index.NewFromSchema(p.schema, oid)
		if err != nil {
			p.log.Warn("user index refused, engine continues without it", "attribute", oid, "error", err)
			continue
		}
		p.userIndices[normalizeAttrName(oid)] = idx
	}

	p.initialized = true
	p.log.Info("partition initialized", "name", p.name, "suffix", p.suffixDN.String())
	return nil
}

// Destroy releases the partition's in-memory state. Operations after
// Destroy fail with ErrNotInitialized.
func (p *Partition) Destroy() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return ErrNotInitialized
	}
	p.initialized = false
	p.master = nil
	p.ndn, p.updn, p.presence, p.objectClass, p.entryCSN, p.entryUUID, p.aliasIdx = nil, nil, nil, nil, nil, nil, nil
	p.oneLevel, p.subLevel, p.oneAlias, p.subAlias = nil, nil, nil, nil
	p.userIndices = nil
	p.log.Info("partition destroyed", "name", p.name)
	return nil
}

func (p *Partition) checkInitialized() error {
	if !p.initialized {
		return ErrNotInitialized
	}
	return nil
}

func normalizeAttrName(attrType string) string {
	nt, _ := dn.NormalizeSimple(attrType, "")
	return nt
}

func normalizeCaseIgnoreLocal(v string) string {
	_, nv := dn.NormalizeSimple("x", v)
	return nv
}

// --- Index accessors; every index is exposed as a read-only view. ---

func (p *Partition) GetNdnIndex() index.ReadOnly         { return p.ndn }
func (p *Partition) GetUpdnIndex() index.ReadOnly        { return p.updn }
func (p *Partition) GetPresenceIndex() index.ReadOnly    { return p.presence }
func (p *Partition) GetObjectClassIndex() index.ReadOnly { return p.objectClass }
func (p *Partition) GetEntryCsnIndex() index.ReadOnly    { return p.entryCSN }
func (p *Partition) GetEntryUuidIndex() index.ReadOnly   { return p.entryUUID }
func (p *Partition) GetAliasIndex() index.ReadOnly       { return p.aliasIdx }
func (p *Partition) GetOneLevelIndex() IDIndexView       { return p.oneLevel }
func (p *Partition) GetSubLevelIndex() IDIndexView       { return p.subLevel }
func (p *Partition) GetOneAliasIndex() IDIndexView       { return p.oneAlias }
func (p *Partition) GetSubAliasIndex() IDIndexView       { return p.subAlias }

// GetUserIndex returns the user index configured on attrType, or
// ErrIndexNotFound if none was configured (or it was refused at Init).
func (p *Partition) GetUserIndex(attrType string) (index.ReadOnly, error) {
	idx, ok := p.userIndices[normalizeAttrName(attrType)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, attrType)
	}
	return idx, nil
}

// HasUserIndexOn reports whether attrType has a configured user index.
func (p *Partition) HasUserIndexOn(attrType string) bool {
	_, ok := p.userIndices[normalizeAttrName(attrType)]
	return ok
}

// HasSystemIndexOn reports whether attrType names one of the fixed system
// indexes.
func (p *Partition) HasSystemIndexOn(attrType string) bool {
	switch normalizeAttrName(attrType) {
	case attrObjectClass, attrEntryCSN, attrEntryUUID, attrAliasedObjectName:
		return true
	default:
		return false
	}
}

// UserIndices returns the configured attribute types with a user index.
func (p *Partition) UserIndices() []string {
	out := make([]string, 0, len(p.userIndices))
	for k := range p.userIndices {
		out = append(out, k)
	}
	return out
}

// SystemIndices returns the names of the fixed system indexes.
func (p *Partition) SystemIndices() []string {
	return []string{"ndn", "updn", "presence", "onelevel", "sublevel", "objectclass",
		"entrycsn", "entryuuid", "alias", "onealias", "subalias"}
}

// SuffixDN returns the partition's naming context.
func (p *Partition) SuffixDN() dn.DN { return p.suffixDN }

// --- alias.Store adapter: lets internal/alias mutate this partition's
// state without internal/partition importing internal/alias's internals
// or vice versa creating a cycle. ---

var _ alias.Store = (*Partition)(nil)

func (p *Partition) ResolveNDN(d dn.DN) (int64, bool) { return p.ndn.Lookup(d.Key()) }

func (p *Partition) ParentID(id int64) (int64, bool) {
	return p.oneLevel.reverse.Get(id)
}

func (p *Partition) IsAlias(id int64) bool { return p.aliasIdx.Reverse().Has(id) }

func (p *Partition) AliasTarget(aliasID int64) (dn.DN, bool) {
	key, ok := p.aliasIdx.Reverse().Get(aliasID)
	if !ok {
		return dn.DN{}, false
	}
	d, err := dn.ParseKey(key)
	if err != nil {
		return dn.DN{}, false
	}
	return d, true
}

func (p *Partition) PutAlias(aliasID int64, target dn.DN) { p.aliasIdx.Add(target.Key(), aliasID) }
func (p *Partition) RemoveAlias(aliasID int64)            { p.aliasIdx.Drop(aliasID) }

func (p *Partition) PutOneAlias(ancestorID, targetID int64)    { p.oneAlias.Add(ancestorID, targetID) }
func (p *Partition) RemoveOneAlias(ancestorID, targetID int64) { p.oneAlias.DropKV(ancestorID, targetID) }

func (p *Partition) PutSubAlias(ancestorID, targetID int64)    { p.subAlias.Add(ancestorID, targetID) }
func (p *Partition) RemoveSubAlias(ancestorID, targetID int64) { p.subAlias.DropKV(ancestorID, targetID) }

func (p *Partition) IsDescendant(ancestorID, id int64) bool {
	return p.subLevel.Has(ancestorID, id)
}

// AncestorsAbove returns fromID itself followed by its ancestors, parent
// first, stopping once the suffix entry (rootID) has been emitted. fromID
// itself is included so OneAlias/SubAlias tuples can be anchored at it
// directly; the alias protocol's descendant guard keeps tuples off
// ancestors whose subtree already reaches the target.
func (p *Partition) AncestorsAbove(fromID int64) []int64 {
	var out []int64
	id := fromID
	for {
		out = append(out, id)
		if id == rootID || id == rootSentinelParent {
			break
		}
		parentID, ok := p.ParentID(id)
		if !ok {
			break
		}
		id = parentID
	}
	return out
}

// Subtree returns every id in the subtree rooted at id, including id
// itself, read straight off the materialized SubLevel index.
func (p *Partition) Subtree(id int64) []int64 {
	var out []int64
	c := p.subLevel.ForwardValueCursor(id)
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

// entryByDN resolves d through NDN and returns the live stored entry (not a
// clone) together with its id.
func (p *Partition) entryByDN(d dn.DN) (*entry.Entry, int64, error) {
	id, ok := p.ResolveNDN(d)
	if !ok {
		return nil, 0, newNameNotFound(d.String())
	}
	e, ok := p.master.Get(id)
	if !ok {
		return nil, 0, newNameNotFound(d.String())
	}
	return e, id, nil
}
