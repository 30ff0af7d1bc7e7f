package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	pb "github.com/dmitrijs2005/gatekeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AuthServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.AccessToken(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewAuthServiceClient(conn)
	return c, nil
}

// SetAccessToken replaces the token sent with subsequent calls.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SignIn authenticates and keeps the returned token for later calls.
func (s *GRPCClient) SignIn(ctx context.Context, userName, password string) (string, error) {

	resp, err := s.client.SignIn(ctx, &pb.SignInRequest{Username: userName, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}

	s.SetAccessToken(resp.Token)
	return resp.Token, nil
}

// SignOut terminates the current token.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	if s.AccessToken() == "" {
		return ErrNoToken
	}

	if _, err := s.client.SignOut(ctx, &pb.SignOutRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// VerifyToken asks whether the current token may perform actionID.
func (s *GRPCClient) VerifyToken(ctx context.Context, actionID int64) error {
	if s.AccessToken() == "" {
		return ErrNoToken
	}

	if _, err := s.client.VerifyToken(ctx, &pb.VerifyTokenRequest{ActionId: actionID}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// TokenTTL returns the remaining lifetime of the current token.
func (s *GRPCClient) TokenTTL(ctx context.Context) (time.Duration, error) {
	if s.AccessToken() == "" {
		return 0, ErrNoToken
	}

	resp, err := s.client.TokenTTL(ctx, &pb.TokenTTLRequest{})
	if err != nil {
		return 0, s.mapError(err)
	}
	return time.Duration(resp.TtlSeconds * float64(time.Second)), nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// mapError recovers the server's error kind from the status message, falling
// back to the status code for transport-level failures.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	if kind := common.ErrorForCode(st.Message()); kind != nil && !errors.Is(kind, common.ErrorInternal) {
		return kind
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
