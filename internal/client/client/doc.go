// Package client contains the gatekeeper gRPC client.
//
// GRPCClient manages one connection, attaches the current access token to
// every call through the access_token metadata key, and maps gRPC statuses
// back to the sentinel errors of package common, so callers can match them
// with errors.Is exactly as they would on the server:
//
//	err := c.VerifyToken(ctx, models.ActionPlaceBid)
//	if errors.Is(err, common.ErrActionForbidden) { ... }
//
// Transport failures that carry no gatekeeper code are reported as
// ErrUnavailable.
package client
