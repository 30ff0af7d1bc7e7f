package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	pb "github.com/dmitrijs2005/gatekeeper/internal/proto"
	"github.com/dmitrijs2005/gatekeeper/internal/server/metrics"
	"google.golang.org/grpc"
)

// AuthService is the engine surface the transport needs.
type AuthService interface {
	SignIn(ctx context.Context, userName, password string) (string, error)
	SignOut(ctx context.Context, token string) error
	VerifyToken(ctx context.Context, token string, actionID int64) error
	TokenTTL(ctx context.Context, token string) (time.Duration, error)
}

type GRPCServer struct {
	pb.UnimplementedAuthServiceServer
	address string
	auth    AuthService
	logger  logging.Logger
	metrics *metrics.Metrics
}

func NewGRPCServer(a string, l logging.Logger, svc AuthService, m *metrics.Metrics) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		auth:    svc,
		metrics: m,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.observeInterceptor, s.accessTokenInterceptor))
	pb.RegisterAuthServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
