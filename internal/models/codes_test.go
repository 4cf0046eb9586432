package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeMapRoundTrip(t *testing.T) {
	m := NewCodeMap(map[string]string{"ind": "India", "AUS": " Australia "})

	code, ok := m.CodeFor("india")
	require.True(t, ok)
	assert.Equal(t, "IND", code, "codes are uppercased on build")

	code, ok = m.CodeFor("australia")
	require.True(t, ok)
	assert.Equal(t, "AUS", code, "names are trimmed and lowercased for lookup")

	name, ok := m.NameFor("ind")
	require.True(t, ok)
	assert.Equal(t, "India", name)

	_, ok = m.CodeFor("narnia")
	assert.False(t, ok)

	assert.Equal(t, 2, m.Len())
}

func TestDefaultCodeMap(t *testing.T) {
	m := DefaultCodeMap()

	for name, code := range map[string]string{
		"india":       "IND",
		"australia":   "AUS",
		"west indies": "WI",
		"netherlands": "NED",
	} {
		got, ok := m.CodeFor(name)
		require.True(t, ok, name)
		assert.Equal(t, code, got)
	}
}
