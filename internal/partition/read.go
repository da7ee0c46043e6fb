package partition

import (
	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/entry"
	"github.com/oba-ldap/obastore/internal/table"
)

// GetEntryID resolves a normalized DN to its entry id through NDN.
func (p *Partition) GetEntryID(d dn.DN) (int64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.checkInitialized() != nil {
		return 0, false
	}
	return p.ResolveNDN(d.Normalize(p.schema.DNNormalizer()))
}

// GetEntryDN returns the normalized DN of the entry at id.
func (p *Partition) GetEntryDN(id int64) (dn.DN, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.checkInitialized(); err != nil {
		return dn.DN{}, err
	}
	e, ok := p.master.Get(id)
	if !ok {
		return dn.DN{}, newNameNotFound(idString(id))
	}
	return e.NormDN, nil
}

// GetEntryUpdn returns the user-presented DN of the entry at id.
func (p *Partition) GetEntryUpdn(id int64) (dn.DN, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.checkInitialized(); err != nil {
		return dn.DN{}, err
	}
	e, ok := p.master.Get(id)
	if !ok {
		return dn.DN{}, newNameNotFound(idString(id))
	}
	return e.UserDN, nil
}

// GetParentID returns the parent id of the entry at id. The suffix entry's
// parent is the sentinel 0.
func (p *Partition) GetParentID(id int64) (int64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.checkInitialized() != nil {
		return 0, false
	}
	return p.ParentID(id)
}

// Lookup returns an independent clone of the entry at id, so callers can
// never reach engine state through the result.
func (p *Partition) Lookup(id int64) (*entry.Entry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.checkInitialized(); err != nil {
		return nil, err
	}
	e, ok := p.master.Get(id)
	if !ok {
		return nil, newNameNotFound(idString(id))
	}
	return e.Clone(), nil
}

// LookupDN resolves a normalized DN and returns a clone of its entry.
func (p *Partition) LookupDN(d dn.DN) (*entry.Entry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.checkInitialized(); err != nil {
		return nil, err
	}
	e, _, err := p.entryByDN(d.Normalize(p.schema.DNNormalizer()))
	if err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

// List opens a cursor over the ids of id's immediate children, positioned
// before the first.
func (p *Partition) List(id int64) table.ValueCursor[int64] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.checkInitialized() != nil {
		return table.EmptyValueCursor[int64]()
	}
	return p.oneLevel.ForwardValueCursor(id)
}

// Count returns the number of live entries.
func (p *Partition) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.checkInitialized() != nil {
		return 0
	}
	return p.master.Count()
}

// GetChildCount returns the number of immediate children of id. Like
// every engine count this is advertised as an estimate, not a guarantee.
func (p *Partition) GetChildCount(id int64) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.checkInitialized() != nil {
		return 0
	}
	return p.oneLevel.Forward().CountKey(id)
}

// GetProperty reads a partition metadata value from the master table.
func (p *Partition) GetProperty(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.checkInitialized() != nil {
		return "", false
	}
	return p.master.GetProperty(key)
}

// SetProperty writes a partition metadata value to the master table.
func (p *Partition) SetProperty(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkInitialized(); err != nil {
		return err
	}
	p.master.SetProperty(key, value)
	return nil
}
