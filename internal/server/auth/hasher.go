// Package auth holds the credential and token primitives of the service:
// password digests, per-token secrets and the JWT codec.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Hasher produces a deterministic, fixed-length digest of a plaintext secret.
type Hasher interface {
	Hash(plaintext string) string
}

const (
	AlgorithmSHA256   = "sha256"
	AlgorithmArgon2ID = "argon2id"
)

// NewHasher returns the hasher for algorithm. The pepper is only used by
// argon2id, where it acts as a deployment-wide salt.
func NewHasher(algorithm, pepper string) (Hasher, error) {
	switch algorithm {
	case "", AlgorithmSHA256:
		return SHA256Hasher{}, nil
	case AlgorithmArgon2ID:
		if pepper == "" {
			return nil, fmt.Errorf("argon2id hasher requires a pepper")
		}
		return NewArgon2Hasher([]byte(pepper)), nil
	}
	return nil, fmt.Errorf("unknown password hash algorithm %q", algorithm)
}

// SHA256Hasher hex-encodes the SHA-256 digest of the plaintext.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Argon2Hasher derives a 32-byte argon2id key using a fixed pepper.
type Argon2Hasher struct {
	pepper  []byte
	time    uint32
	memory  uint32
	threads uint8
}

func NewArgon2Hasher(pepper []byte) *Argon2Hasher {
	return &Argon2Hasher{pepper: pepper, time: 1, memory: 64 * 1024, threads: 4}
}

func (h *Argon2Hasher) Hash(plaintext string) string {
	key := argon2.IDKey([]byte(plaintext), h.pepper, h.time, h.memory, h.threads, 32)
	return hex.EncodeToString(key)
}

// Equal compares two digests in constant time. Strings of different length
// never match.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
