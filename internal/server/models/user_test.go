package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_TokenState(t *testing.T) {
	issued := time.Unix(1_700_000_000, 0)
	ttl := time.Minute

	tests := []struct {
		name string
		user User
		now  time.Time
		want TokenState
	}{
		{"no token", User{}, issued, TokenAbsent},
		{"fresh", User{Token: "t", TokenIssuedAt: EpochSeconds(issued)}, issued, TokenActive},
		{"just before ttl", User{Token: "t", TokenIssuedAt: EpochSeconds(issued)}, issued.Add(ttl - time.Nanosecond), TokenActive},
		{"exactly ttl", User{Token: "t", TokenIssuedAt: EpochSeconds(issued)}, issued.Add(ttl), TokenExpired},
		{"past ttl", User{Token: "t", TokenIssuedAt: EpochSeconds(issued)}, issued.Add(time.Hour), TokenExpired},
		{"terminated", User{Token: "t", TokenIssuedAt: 0}, issued, TokenTerminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.TokenState(tt.now, ttl))
			assert.NotEqual(t, "unknown", tt.want.String())
		})
	}
}

func TestEpochSeconds_RoundTrip(t *testing.T) {
	whole := time.Unix(1_700_000_123, 0)
	assert.True(t, whole.Equal(FromEpochSeconds(EpochSeconds(whole))))

	for ns := int64(0); ns < int64(time.Second); ns += 7_777_777 {
		issued := time.Unix(1_760_000_000, ns).Truncate(IssuePrecision)
		got := FromEpochSeconds(EpochSeconds(issued))
		assert.True(t, issued.Equal(got), "ns=%d: got %v want %v", ns, got, issued)
	}
}

func TestUser_TokenState_FractionalIssueBoundary(t *testing.T) {
	ttl := time.Minute
	for ns := int64(0); ns < int64(time.Second); ns += 7_777_777 {
		issued := time.Unix(1_760_000_000, ns).Truncate(IssuePrecision)
		u := User{Token: "t", TokenIssuedAt: EpochSeconds(issued)}

		assert.Equal(t, TokenActive, u.TokenState(issued.Add(ttl-time.Nanosecond), ttl), "ns=%d", ns)
		assert.Equal(t, TokenExpired, u.TokenState(issued.Add(ttl), ttl), "ns=%d", ns)
		assert.Equal(t, ttl, u.TokenAge(issued.Add(ttl)), "ns=%d", ns)
	}
}
