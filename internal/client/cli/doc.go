// Package cli implements the gatectl commands: ping, signin, signout, verify
// and ttl. Each invocation runs a single command against the gRPC endpoint;
// signin reads the password from the terminal without echo.
package cli
