package alias

import (
	"errors"
	"fmt"
)

// DereferencingReason enumerates the ways an alias can be structurally
// unusable.
type DereferencingReason string

const (
	ReasonCycleToSelf     DereferencingReason = "cycle-to-self"
	ReasonCycleToAncestor DereferencingReason = "cycle-to-ancestor"
	ReasonOutOfContext    DereferencingReason = "out-of-context"
	ReasonChain           DereferencingReason = "chain"
)

// DereferencingError reports an alias whose target placement violates the
// dereferencing rules: a cycle, a chain, or a target outside the naming
// context.
type DereferencingError struct {
	Reason   DereferencingReason
	AliasDN  string
	TargetDN string
}

func (e *DereferencingError) Error() string {
	return fmt.Sprintf("alias dereferencing problem (%s): %s -> %s", e.Reason, e.AliasDN, e.TargetDN)
}

// ErrTargetMissing is the sentinel ProblemError wraps; callers can test for
// it with errors.Is.
var ErrTargetMissing = errors.New("alias: target entry does not exist")

// ProblemError reports an alias whose target does not resolve to a live
// entry.
type ProblemError struct {
	AliasDN  string
	TargetDN string
}

func (e *ProblemError) Error() string {
	return fmt.Sprintf("alias problem: %s -> %s: %v", e.AliasDN, e.TargetDN, ErrTargetMissing)
}

func (e *ProblemError) Unwrap() error { return ErrTargetMissing }
