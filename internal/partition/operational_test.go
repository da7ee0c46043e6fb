package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/entry"
)

func TestStampOperational_FillsMissingAttributes(t *testing.T) {
	d, err := dn.Parse("cn=x,dc=example,dc=com")
	require.NoError(t, err)
	e := entry.New(0, dn.DN{}, d)

	StampOperational(e, 1)

	_, err = uuid.Parse(e.GetFirstAttribute("entryuuid"))
	require.NoError(t, err)
	assert.NotEmpty(t, e.GetFirstAttribute("entrycsn"))
}

func TestStampOperational_KeepsExistingIdentifiers(t *testing.T) {
	d, err := dn.Parse("cn=x,dc=example,dc=com")
	require.NoError(t, err)
	e := entry.New(0, dn.DN{}, d)
	e.SetAttribute("entryuuid", "4a9d3f2e-1111-2222-3333-444455556666")
	e.SetAttribute("entrycsn", "20250101000000.000000Z#000001#001#000000")

	StampOperational(e, 1)

	assert.Equal(t, "4a9d3f2e-1111-2222-3333-444455556666", e.GetFirstAttribute("entryuuid"))
	assert.Equal(t, "20250101000000.000000Z#000001#001#000000", e.GetFirstAttribute("entrycsn"))
}

func TestNewCSN_MonotonicSequence(t *testing.T) {
	a := NewCSN(1)
	b := NewCSN(1)
	assert.Less(t, a, b)
	assert.Regexp(t, `^\d{14}\.\d{6}Z#[0-9a-f]{6}#[0-9a-f]{3}#[0-9a-f]{6}$`, a)
}
