package schema

import (
	"errors"
	"strings"
)

// ValueNormalizer normalizes a single attribute value for equality
// comparison, the form an index's forward table needs before a key is
// inserted or looked up.
type ValueNormalizer func(value string) string

// ErrNoEqualityMatchingRule is returned by EqualityNormalizer when the
// requested attribute type has no equality matching rule configured, the
// schema-side half of the core's NoNormalizerAvailable error.
var ErrNoEqualityMatchingRule = errors.New("schema: attribute has no equality matching rule")

var builtinNormalizers = map[string]ValueNormalizer{
	"caseIgnoreMatch":        normalizeCaseIgnore,
	"caseIgnoreIA5Match":     normalizeCaseIgnore,
	"caseIgnoreListMatch":    normalizeCaseIgnore,
	"distinguishedNameMatch": normalizeCaseIgnore,
	"caseExactMatch":         normalizeCaseExact,
	"caseExactIA5Match":      normalizeCaseExact,
	"integerMatch":           normalizeCaseExact,
	"numericStringMatch":     normalizeNumericString,
}

func normalizeCaseIgnore(v string) string {
	return strings.Join(strings.Fields(strings.ToLower(v)), " ")
}

func normalizeCaseExact(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

func normalizeNumericString(v string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' {
			return -1
		}
		return r
	}, v)
}

// EqualityNormalizer returns the value normalizer implied by attrType's
// equality matching rule. Unregistered-but-present equality rules fall back
// to case-ignore folding (the common default among the directory
// attributes this engine is likely to index); an attribute with no
// equality rule at all is refused.
func (s *Schema) EqualityNormalizer(attrType string) (ValueNormalizer, error) {
	at := s.GetAttributeType(attrType)
	if at == nil || !at.HasEqualityMatching() {
		return nil, ErrNoEqualityMatchingRule
	}
	if fn, ok := builtinNormalizers[at.Equality]; ok {
		return fn, nil
	}
	return normalizeCaseIgnore, nil
}

// DNNormalizer adapts the schema's per-attribute equality normalizers to
// the dn.Normalizer shape dn.DN.Normalize expects. Attribute types are
// always folded to lowercase; values fall back to case-ignore folding when
// the attribute carries no explicit equality rule, matching the
// conventional default for DN component comparison.
func (s *Schema) DNNormalizer() func(attrType, value string) (string, string) {
	return func(attrType, value string) (string, string) {
		nt := strings.ToLower(strings.TrimSpace(attrType))
		normalize, err := s.EqualityNormalizer(attrType)
		if err != nil {
			normalize = normalizeCaseIgnore
		}
		return nt, normalize(strings.TrimSpace(value))
	}
}
