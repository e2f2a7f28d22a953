package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	generated, err := Generate(DefaultLength)
	require.NoError(t, err)
	assert.Len(t, generated, DefaultLength)

	for _, r := range generated {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		generated := MustGenerate(DefaultLength)
		assert.False(t, seen[generated], "duplicate id %s", generated)
		seen[generated] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	generated, err := GenerateWithPrefix(PrefixUser, DefaultLength)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(generated, PrefixUser+"_"))
}

func TestParsePrefixedID(t *testing.T) {
	prefix, shortID, err := ParsePrefixedID("usr_abc123XYZ")
	require.NoError(t, err)
	assert.Equal(t, "usr", prefix)
	assert.Equal(t, "abc123XYZ", shortID)
}

func TestParsePrefixedID_Invalid(t *testing.T) {
	_, _, err := ParsePrefixedID("noprefix")
	assert.Error(t, err)
}

func TestValidatePrefix(t *testing.T) {
	sid := MustGenerateWithPrefix(PrefixListing, DefaultLength)
	assert.NoError(t, ValidatePrefix(sid, PrefixListing))
	assert.Error(t, ValidatePrefix(sid, PrefixUser))
}

func TestNewOrderNo(t *testing.T) {
	orderNo, err := NewOrderNo()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(orderNo, PrefixOrder+"_"))
}
