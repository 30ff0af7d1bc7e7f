// Package proto declares the gatekeeper.AuthService wire contract: request
// and response messages, the service descriptor and a client stub. Messages
// travel as JSON through the codec registered in codec.go.
package proto

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token string `json:"token"`
}

// SignOutRequest may leave Token empty and pass it in the access_token
// metadata instead; the same holds for VerifyTokenRequest and TokenTTLRequest.
type SignOutRequest struct {
	Token string `json:"token,omitempty"`
}

type SignOutResponse struct {
	Status string `json:"status"`
}

type VerifyTokenRequest struct {
	Token    string `json:"token,omitempty"`
	ActionId int64  `json:"action_id"`
}

type VerifyTokenResponse struct {
	Status string `json:"status"`
}

type TokenTTLRequest struct {
	Token string `json:"token,omitempty"`
}

type TokenTTLResponse struct {
	TtlSeconds float64 `json:"ttl_seconds"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
