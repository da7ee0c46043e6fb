package dn

import "strings"

// Normalizer maps one AVA's attribute type and value to its normalized
// form. The schema package supplies the real implementation (driven by each
// attribute's equality matching rule); this package only consumes the
// function, never the schema itself, to keep dn free of a schema import
// cycle.
type Normalizer func(attrType, value string) (normType, normValue string)

// Normalize applies norm to every AVA in the DN, returning a new,
// normalized DN. Equality and ordering among DNs are only meaningful on
// normalized forms.
func (d DN) Normalize(norm Normalizer) DN {
	out := DN{RDNs: make([]RDN, len(d.RDNs))}
	for i, r := range d.RDNs {
		avas := make([]AVA, len(r.AVAs))
		for j, a := range r.AVAs {
			nt, nv := norm(a.Type, a.Value)
			avas[j] = AVA{Type: nt, Value: nv}
		}
		out.RDNs[i] = RDN{AVAs: avas}
	}
	return out
}

// Equal reports whether two (assumed already normalized) DNs are identical.
func (d DN) Equal(other DN) bool {
	if len(d.RDNs) != len(other.RDNs) {
		return false
	}
	for i := range d.RDNs {
		if !rdnEqual(d.RDNs[i], other.RDNs[i]) {
			return false
		}
	}
	return true
}

func rdnEqual(a, b RDN) bool {
	if len(a.AVAs) != len(b.AVAs) {
		return false
	}
	used := make([]bool, len(b.AVAs))
	for _, x := range a.AVAs {
		found := false
		for j, y := range b.AVAs {
			if used[j] {
				continue
			}
			if x.Type == y.Type && x.Value == y.Value {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether d is a strict ancestor of other, comparing
// normalized RDNs root-down (both DNs are assumed already normalized).
func (d DN) IsAncestorOf(other DN) bool {
	if len(d.RDNs) >= len(other.RDNs) {
		return false
	}
	for i := range d.RDNs {
		if !rdnEqual(d.RDNs[i], other.RDNs[i]) {
			return false
		}
	}
	return true
}

// IsDescendantOf reports whether d is a strict descendant of other.
func (d DN) IsDescendantOf(other DN) bool {
	return other.IsAncestorOf(d)
}

// HasSuffix reports whether d is equal to or a descendant of suffix,
// i.e. whether d lies within the naming context rooted at suffix.
func (d DN) HasSuffix(suffix DN) bool {
	return d.Equal(suffix) || d.IsDescendantOf(suffix)
}

// IsDirectChildOf reports whether d is exactly one RDN below parent.
func (d DN) IsDirectChildOf(parent DN) bool {
	return len(d.RDNs) == len(parent.RDNs)+1 && parent.IsAncestorOf(d)
}

// NormalizeSimple lower-cases the attribute type and trims/lower-cases
// the value. It is the fallback used where no schema-driven matching rule
// is available; string comparisons after it are case- and
// whitespace-insensitive.
func NormalizeSimple(attrType, value string) (string, string) {
	return strings.ToLower(strings.TrimSpace(attrType)), strings.ToLower(strings.TrimSpace(value))
}
