// Package models defines server-side data models persisted in the database.
package models

import (
	"math"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
)

// User is an identity record together with its single session token record.
// The token fields are empty until the first successful sign-in.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	RoleID       int64

	Token         string
	TokenSecret   string
	TokenIssuedAt float64 // seconds since epoch; common.TerminatedIssuedAt after sign-out

	CreatedAt time.Time
}

// TokenState is the lifecycle state of a user's token record.
type TokenState int

const (
	TokenAbsent TokenState = iota
	TokenActive
	TokenExpired
	TokenTerminated
)

func (s TokenState) String() string {
	switch s {
	case TokenAbsent:
		return "absent"
	case TokenActive:
		return "active"
	case TokenExpired:
		return "expired"
	case TokenTerminated:
		return "terminated"
	}
	return "unknown"
}

// TokenState classifies the record at now for the given ttl. A token is
// active only while now - issued_at < ttl.
func (u *User) TokenState(now time.Time, ttl time.Duration) TokenState {
	if u.Token == "" {
		return TokenAbsent
	}
	if u.TokenIssuedAt == common.TerminatedIssuedAt {
		return TokenTerminated
	}
	if u.TokenAge(now) >= ttl {
		return TokenExpired
	}
	return TokenActive
}

// TokenAge returns how long ago the token was issued.
func (u *User) TokenAge(now time.Time) time.Duration {
	return now.Sub(FromEpochSeconds(u.TokenIssuedAt))
}

// EpochSeconds converts t to fractional seconds since the Unix epoch.
func EpochSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// IssuePrecision is the resolution of stored issuance times. A float64 near
// the current epoch resolves about 240ns, so times are truncated to whole
// microseconds before storing and FromEpochSeconds rounds back to them.
const IssuePrecision = time.Microsecond

// FromEpochSeconds is the inverse of EpochSeconds for times truncated to
// IssuePrecision.
func FromEpochSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	us := int64(math.Round(frac * 1e6))
	return time.Unix(int64(sec), us*int64(IssuePrecision))
}
