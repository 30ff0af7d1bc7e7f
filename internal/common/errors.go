// Package common defines shared constants and sentinel errors used across
// client and server layers of gatekeeper. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownToken       = errors.New("unknown token")
	ErrInvalidToken       = errors.New("invalid token")

	// Token lifecycle errors. A terminated token is an expired token whose
	// message says why.
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenTerminated = fmt.Errorf("%w: token terminated", ErrTokenExpired)

	// Authorization errors.
	ErrActionForbidden = errors.New("the user lacks the permission to perform this action")

	// ErrPersistence reports an unavailable store or a rejected write. It is
	// the only retryable kind.
	ErrPersistence = errors.New("persistence error")
)

// Stable error codes shared by the transports and the client.
const (
	CodeOK                 = "ok"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnknownToken       = "unknown_token"
	CodeInvalidToken       = "invalid_token"
	CodeTokenExpired       = "token_expired"
	CodeTokenTerminated    = "token_terminated"
	CodeActionForbidden    = "action_forbidden"
	CodePersistence        = "persistence_error"
	CodeValidation         = "validation_error"
	CodeAlreadyExists      = "already_exists"
	CodeInternal           = "internal_error"
)

// order matters: ErrTokenTerminated must be matched before ErrTokenExpired.
var codeTable = []struct {
	err  error
	code string
}{
	{ErrInvalidCredentials, CodeInvalidCredentials},
	{ErrUnknownToken, CodeUnknownToken},
	{ErrInvalidToken, CodeInvalidToken},
	{ErrTokenTerminated, CodeTokenTerminated},
	{ErrTokenExpired, CodeTokenExpired},
	{ErrActionForbidden, CodeActionForbidden},
	{ErrPersistence, CodePersistence},
	{ErrorValidation, CodeValidation},
	{ErrorAlreadyExists, CodeAlreadyExists},
}

// Code returns the stable code for err. A nil error yields CodeOK and any
// error outside the taxonomy yields CodeInternal.
func Code(err error) string {
	if err == nil {
		return CodeOK
	}
	for _, e := range codeTable {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return CodeInternal
}

// ErrorForCode is the inverse of Code. Unknown codes map to ErrorInternal.
func ErrorForCode(code string) error {
	if code == CodeOK {
		return nil
	}
	for _, e := range codeTable {
		if e.code == code {
			return e.err
		}
	}
	return ErrorInternal
}

// Retryable reports whether retrying the same request may succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrPersistence)
}
