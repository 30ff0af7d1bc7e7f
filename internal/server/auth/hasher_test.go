package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Hasher(t *testing.T) {
	h := SHA256Hasher{}

	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", h.Hash("hello"))
	assert.Equal(t, h.Hash("Journey"), h.Hash("Journey"))
	assert.NotEqual(t, h.Hash("Journey"), h.Hash("journey"))
	assert.Len(t, h.Hash(""), 64)
}

func TestArgon2Hasher(t *testing.T) {
	h := NewArgon2Hasher([]byte("pepper"))
	other := NewArgon2Hasher([]byte("other-pepper"))

	d := h.Hash("Journey")
	assert.Len(t, d, 64)
	assert.Equal(t, d, h.Hash("Journey"))
	assert.NotEqual(t, d, other.Hash("Journey"))
	assert.NotEqual(t, d, SHA256Hasher{}.Hash("Journey"))
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher("", "")
	require.NoError(t, err)
	assert.IsType(t, SHA256Hasher{}, h)

	h, err = NewHasher(AlgorithmArgon2ID, "p")
	require.NoError(t, err)
	assert.IsType(t, &Argon2Hasher{}, h)

	_, err = NewHasher(AlgorithmArgon2ID, "")
	assert.Error(t, err)

	_, err = NewHasher("md5", "")
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("abc", "abc"))
	assert.False(t, Equal("abc", "abd"))
	assert.False(t, Equal("abc", "ab"))
	assert.False(t, Equal("", "a"))
}
