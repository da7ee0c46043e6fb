package partition

import (
	"errors"
	"fmt"

	"github.com/oba-ldap/obastore/internal/table"
)

// Lifecycle and lookup error kinds raised by the engine.
var (
	// ErrAlreadyInitialized is returned by Init on a second call.
	ErrAlreadyInitialized = errors.New("partition: already initialized")
	// ErrNotInitialized is returned by any operation after Destroy, or
	// before Init.
	ErrNotInitialized = errors.New("partition: not initialized")
	// ErrIndexNotFound is returned by GetUserIndex for an unconfigured OID.
	ErrIndexNotFound = errors.New("partition: index not found")
	// ErrCursorPositionInvalid is what every cursor handed out by the
	// engine returns when accessed off-position; it is the table layer's
	// sentinel re-exported so callers match it without importing
	// internal/table.
	ErrCursorPositionInvalid = table.ErrPositionInvalid
	// ErrNotImplemented is reserved for cross-partition moves.
	ErrNotImplemented = errors.New("partition: not implemented")
	// ErrEntryExists is returned by Add when the normalized DN already
	// resolves to a live entry; admitting it would break the NDN 1-1
	// invariant.
	ErrEntryExists = errors.New("partition: entry already exists")
	// ErrInternal reports an engine-level inconsistency, e.g. an add
	// handed a DN that was never normalized.
	ErrInternal = errors.New("partition: internal error")
)

// NameNotFoundError reports a DN (or id) that does not resolve to a live
// entry.
type NameNotFoundError struct{ DN string }

func (e *NameNotFoundError) Error() string { return fmt.Sprintf("partition: name not found: %s", e.DN) }

func newNameNotFound(d string) error { return &NameNotFoundError{DN: d} }

// SchemaViolationError reports an entry or operation violating a
// structural requirement: missing objectClass, missing entryCSN or
// entryUUID, a non-normalized DN, an invalid RDN change.
type SchemaViolationError struct{ Reason string }

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("partition: schema violation: %s", e.Reason)
}

func newSchemaViolation(reason string) error { return &SchemaViolationError{Reason: reason} }

func idString(id int64) string { return fmt.Sprintf("id=%d", id) }
