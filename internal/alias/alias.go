// Package alias implements the validity rules and companion-index
// bookkeeping for alias entries: cycle/chain/naming-context checks on add,
// tuple cleanup on delete, and the above-the-moved-base tuple cleanup a
// subtree move needs before it restructures the tree. It never touches the
// partition engine's concrete tables directly; it operates through the
// Store interface, which internal/partition implements, so the two
// packages don't import each other.
package alias

import (
	"fmt"

	"github.com/oba-ldap/obastore/internal/dn"
)

// Store is the slice of partition-engine state the alias subsystem
// consults and mutates.
type Store interface {
	SuffixDN() dn.DN

	// ResolveNDN returns the id whose normalized DN is d.
	ResolveNDN(d dn.DN) (int64, bool)

	// ParentID returns id's parent id (0 is the sentinel root parent).
	ParentID(id int64) (int64, bool)

	// IsAlias reports whether id's entry is itself an alias.
	IsAlias(id int64) bool

	// AliasTarget returns the normalized target DN an existing alias
	// points to.
	AliasTarget(aliasID int64) (dn.DN, bool)

	// PutAlias/RemoveAlias maintain the Alias index (target DN -> alias
	// id forward, alias id -> target DN reverse).
	PutAlias(aliasID int64, target dn.DN)
	RemoveAlias(aliasID int64)

	// PutOneAlias/RemoveOneAlias maintain the OneAlias index
	// (ancestor-id -> target-id).
	PutOneAlias(ancestorID, targetID int64)
	RemoveOneAlias(ancestorID, targetID int64)

	// PutSubAlias/RemoveSubAlias maintain the SubAlias index
	// (ancestor-id -> target-id).
	PutSubAlias(ancestorID, targetID int64)
	RemoveSubAlias(ancestorID, targetID int64)

	// IsDescendant reports whether id lies in the subtree rooted at
	// ancestorID (a SubLevel membership check), including id ==
	// ancestorID.
	IsDescendant(ancestorID, id int64) bool

	// AncestorsAbove returns fromID itself followed by its ancestors,
	// parent-first, ending at the suffix entry: the "from the alias's
	// parent up through the naming context" walk the scope indexes are
	// keyed on.
	AncestorsAbove(fromID int64) []int64

	// Subtree returns every id in the subtree rooted at id, including id
	// itself (a SubLevel.forward(id) walk), used to enumerate descendants
	// when a subtree moves.
	Subtree(id int64) []int64
}

// Validate runs the alias validity checks (the cycle, naming-context,
// target-existence and chain rules) without touching any index. It returns
// the normalized target DN and the target's id so a caller that validates
// ahead of mutation does not resolve the target twice. AddIndices calls it
// first; the partition engine also calls it on its own before an add has
// mutated anything, so a rejected alias leaves every index untouched.
func Validate(s Store, aliasDN dn.DN, rawTarget string, normalize dn.Normalizer) (dn.DN, int64, error) {
	parsed, err := dn.Parse(rawTarget)
	if err != nil {
		return dn.DN{}, 0, fmt.Errorf("alias: invalid aliasedObjectName %q: %w", rawTarget, err)
	}
	target := parsed.Normalize(normalize)

	if aliasDN.Equal(target) {
		return dn.DN{}, 0, &DereferencingError{Reason: ReasonCycleToSelf, AliasDN: aliasDN.String(), TargetDN: target.String()}
	}
	if target.IsAncestorOf(aliasDN) {
		return dn.DN{}, 0, &DereferencingError{Reason: ReasonCycleToAncestor, AliasDN: aliasDN.String(), TargetDN: target.String()}
	}
	if !target.HasSuffix(s.SuffixDN()) {
		return dn.DN{}, 0, &DereferencingError{Reason: ReasonOutOfContext, AliasDN: aliasDN.String(), TargetDN: target.String()}
	}
	targetID, ok := s.ResolveNDN(target)
	if !ok {
		return dn.DN{}, 0, &ProblemError{AliasDN: aliasDN.String(), TargetDN: target.String()}
	}
	if s.IsAlias(targetID) {
		return dn.DN{}, 0, &DereferencingError{Reason: ReasonChain, AliasDN: aliasDN.String(), TargetDN: target.String()}
	}
	return target, targetID, nil
}

// AddIndices runs the full alias add protocol for an alias entry whose
// aliasedObjectName raw value is rawTarget: validation first, then the
// Alias, OneAlias and SubAlias tuple inserts. normalize produces the
// schema-normalized form of each AVA.
func AddIndices(s Store, aliasID int64, aliasDN dn.DN, rawTarget string, normalize dn.Normalizer) error {
	target, targetID, err := Validate(s, aliasDN, rawTarget, normalize)
	if err != nil {
		return err
	}

	s.PutAlias(aliasID, target)

	parentID, _ := s.ParentID(aliasID)
	targetParentID, _ := s.ParentID(targetID)
	if targetParentID != parentID {
		s.PutOneAlias(parentID, targetID)
	}

	for _, ancestor := range s.AncestorsAbove(parentID) {
		if !s.IsDescendant(ancestor, targetID) {
			s.PutSubAlias(ancestor, targetID)
		}
	}
	return nil
}

// DropIndices runs the alias drop protocol: remove the OneAlias tuple at
// parent(alias), every SubAlias tuple from the alias's parent up to the
// suffix, and the Alias reverse entry itself. A no-op if aliasID is not
// (or no longer) an alias.
func DropIndices(s Store, aliasID int64) {
	targetDN, ok := s.AliasTarget(aliasID)
	if !ok {
		return
	}
	defer s.RemoveAlias(aliasID)

	targetID, ok := s.ResolveNDN(targetDN)
	if !ok {
		return
	}
	parentID, _ := s.ParentID(aliasID)
	s.RemoveOneAlias(parentID, targetID)
	for _, ancestor := range s.AncestorsAbove(parentID) {
		s.RemoveSubAlias(ancestor, targetID)
	}
}

// DropAboveMovedBase removes only the OneAlias/SubAlias tuples anchored at
// movedBaseOldParentID and at each of its ancestors up to the suffix, the
// nodes that stop being ancestors of aliasID once the subtree rooted at the
// moved base relocates. Tuples at or below the moved base are left untouched; they are re-derived by
// AddIndices once the move completes and the new ancestor chain is known.
func DropAboveMovedBase(s Store, aliasID int64, movedBaseOldParentID int64) {
	targetDN, ok := s.AliasTarget(aliasID)
	if !ok {
		return
	}
	targetID, ok := s.ResolveNDN(targetDN)
	if !ok {
		return
	}
	aliasParentID, _ := s.ParentID(aliasID)
	for _, ancestor := range s.AncestorsAbove(movedBaseOldParentID) {
		s.RemoveSubAlias(ancestor, targetID)
		if ancestor == aliasParentID {
			s.RemoveOneAlias(ancestor, targetID)
		}
	}
}

// DropMovedAliasIndices enumerates every alias at or below movedBaseID
// (via s.Subtree) and runs DropAboveMovedBase for each, so a subtree move
// cleans up after aliases anywhere under the moved base, not just when the
// base itself is one.
func DropMovedAliasIndices(s Store, movedBaseID int64, movedBaseOldParentID int64) {
	for _, id := range s.Subtree(movedBaseID) {
		if s.IsAlias(id) {
			DropAboveMovedBase(s, id, movedBaseOldParentID)
		}
	}
}
