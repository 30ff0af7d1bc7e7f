package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSignature is returned by Decode when a token does not validate against
// the supplied secret: it was tampered with, corrupted or signed by someone
// else.
var ErrSignature = errors.New("token signature validation failed")

// Claims carries the subject identity of a session token. Expiry is not
// encoded in the token; it is enforced from the issuance time held by the
// store.
type Claims struct {
	jwt.RegisteredClaims
}

// Encode signs a token for subject with secret (HS256). Every token gets a
// random jti, so two tokens for the same subject never collide as storage
// keys.
func Encode(subject string, secret []byte, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Decode validates tokenString against secret and returns its subject. Any
// failure, including a malformed token, wraps ErrSignature.
func Decode(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSignature, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrSignature
	}

	return claims.Subject, nil
}
