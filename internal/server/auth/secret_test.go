package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	require.NoError(t, err)
	b, err := GenerateSecret()
	require.NoError(t, err)

	assert.Len(t, a, SecretSize*2)
	raw, err := hex.DecodeString(a)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(raw)*8, 128)
	assert.NotEqual(t, a, b)
}
