package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSchema() *Schema {
	s := NewSchema()
	cn := NewAttributeType("2.5.4.3", "cn")
	cn.SetMatchingRules("caseIgnoreMatch", "", "")
	s.AddAttributeType(cn)

	noEquality := NewAttributeType("2.5.4.99", "opaque")
	s.AddAttributeType(noEquality)
	return s
}

func TestEqualityNormalizer_FoldsCase(t *testing.T) {
	s := newTestSchema()
	norm, err := s.EqualityNormalizer("cn")
	require.NoError(t, err)
	require.Equal(t, "alice smith", norm("  Alice   Smith "))
}

func TestEqualityNormalizer_NoEqualityRuleIsRefused(t *testing.T) {
	s := newTestSchema()
	_, err := s.EqualityNormalizer("opaque")
	require.ErrorIs(t, err, ErrNoEqualityMatchingRule)
}

func TestEqualityNormalizer_UnknownAttributeIsRefused(t *testing.T) {
	s := newTestSchema()
	_, err := s.EqualityNormalizer("nonexistent")
	require.ErrorIs(t, err, ErrNoEqualityMatchingRule)
}

func TestDNNormalizer_LowercasesTypeAndFoldsValue(t *testing.T) {
	s := newTestSchema()
	normalize := s.DNNormalizer()
	nt, nv := normalize("CN", "  Alice  Smith ")
	require.Equal(t, "cn", nt)
	require.Equal(t, "alice smith", nv)
}
