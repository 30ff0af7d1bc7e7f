package auth

import "github.com/dmitrijs2005/gatekeeper/internal/common"

// SecretSize is the number of random bytes in a per-token signing secret.
const SecretSize = 32

// GenerateSecret returns a fresh hex-encoded signing secret drawn from
// crypto/rand.
func GenerateSecret() (string, error) {
	return common.MakeRandHexString(SecretSize)
}
