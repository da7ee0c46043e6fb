// Package entry holds the directory entry record every other package in
// this module operates on: a server-assigned id, a normalized DN, a
// separate presentation ("user") DN, and a multi-valued attribute map.
package entry

import (
	"strings"

	"github.com/oba-ldap/obastore/internal/dn"
)

// Entry is one record in the master table.
type Entry struct {
	ID int64

	// NormDN is the canonical, schema-normalized DN; equality and index
	// keys are always computed from this form.
	NormDN dn.DN

	// UserDN is the DN as originally presented by the caller, preserved
	// for display.
	UserDN dn.DN

	// Attributes maps a lowercased attribute type to its ordered set of
	// values.
	Attributes map[string][]string
}

// New creates an Entry with empty attributes.
func New(id int64, normDN, userDN dn.DN) *Entry {
	return &Entry{ID: id, NormDN: normDN, UserDN: userDN, Attributes: make(map[string][]string)}
}

// GetAttribute returns the values for the given attribute type, or nil.
func (e *Entry) GetAttribute(attrType string) []string {
	if e.Attributes == nil {
		return nil
	}
	return e.Attributes[strings.ToLower(attrType)]
}

// GetFirstAttribute returns the first value for attrType, or "".
func (e *Entry) GetFirstAttribute(attrType string) string {
	values := e.GetAttribute(attrType)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// HasAttribute reports whether the entry carries at least one value for
// attrType.
func (e *Entry) HasAttribute(attrType string) bool {
	values, ok := e.Attributes[strings.ToLower(attrType)]
	return ok && len(values) > 0
}

// SetAttribute replaces the entire value set for attrType.
func (e *Entry) SetAttribute(attrType string, values ...string) {
	if e.Attributes == nil {
		e.Attributes = make(map[string][]string)
	}
	e.Attributes[strings.ToLower(attrType)] = values
}

// AddAttributeValue appends a single value to attrType.
func (e *Entry) AddAttributeValue(attrType, value string) {
	if e.Attributes == nil {
		e.Attributes = make(map[string][]string)
	}
	attrType = strings.ToLower(attrType)
	e.Attributes[attrType] = append(e.Attributes[attrType], value)
}

// DeleteAttribute removes attrType entirely.
func (e *Entry) DeleteAttribute(attrType string) {
	delete(e.Attributes, strings.ToLower(attrType))
}

// DeleteAttributeValue removes a single value from attrType; if no values
// remain, the attribute itself is removed. Reports whether the attribute
// was removed as a result (used to decide whether Presence should be
// dropped).
func (e *Entry) DeleteAttributeValue(attrType, value string) (removedAttribute bool) {
	attrType = strings.ToLower(attrType)
	values := e.Attributes[attrType]
	if len(values) == 0 {
		return false
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		delete(e.Attributes, attrType)
		return true
	}
	e.Attributes[attrType] = out
	return false
}

// ObjectClasses returns the entry's objectClass values.
func (e *Entry) ObjectClasses() []string { return e.GetAttribute("objectclass") }

// HasObjectClass reports whether the entry's objectClass set contains
// class, case-insensitively.
func (e *Entry) HasObjectClass(class string) bool {
	for _, oc := range e.ObjectClasses() {
		if strings.EqualFold(oc, class) {
			return true
		}
	}
	return false
}

// AttributeNames returns every attribute type present on the entry.
func (e *Entry) AttributeNames() []string {
	names := make([]string, 0, len(e.Attributes))
	for name := range e.Attributes {
		names = append(names, name)
	}
	return names
}

// Clone returns a deep copy. Lookup hands out clones so callers can never
// mutate engine state through a returned entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	clone := &Entry{
		ID:         e.ID,
		NormDN:     e.NormDN,
		UserDN:     e.UserDN,
		Attributes: make(map[string][]string, len(e.Attributes)),
	}
	for k, v := range e.Attributes {
		values := make([]string, len(v))
		copy(values, v)
		clone.Attributes[k] = values
	}
	return clone
}

// ModificationType is the kind of change a Modification applies.
type ModificationType int

const (
	// ModAdd adds values to an attribute.
	ModAdd ModificationType = iota
	// ModDelete removes values from an attribute (or the whole attribute
	// if Values is empty).
	ModDelete
	// ModReplace replaces all of an attribute's values.
	ModReplace
)

func (m ModificationType) String() string {
	switch m {
	case ModAdd:
		return "add"
	case ModDelete:
		return "delete"
	case ModReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Modification is one (ADD | REMOVE | REPLACE, attribute) op in a modify
// request.
type Modification struct {
	Type      ModificationType
	Attribute string
	Values    []string
}

// NewModification constructs a Modification.
func NewModification(modType ModificationType, attr string, values ...string) Modification {
	return Modification{Type: modType, Attribute: attr, Values: values}
}
