// Package common contains shared constants and sentinel errors used across
// gatekeeper components.
package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// session token on outbound requests.
const AccessTokenHeaderName = "access_token"

// TerminatedIssuedAt is the issuance time written to a token record on
// sign-out. A record carrying it is never considered live.
const TerminatedIssuedAt float64 = 0
