package grpc

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	pb "github.com/dmitrijs2005/gatekeeper/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) SignIn(ctx context.Context, req *pb.SignInRequest) (*pb.SignInResponse, error) {
	token, err := s.auth.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.SignInResponse{Token: token}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *pb.SignOutRequest) (*pb.SignOutResponse, error) {
	if err := s.auth.SignOut(ctx, tokenFrom(ctx, req.Token)); err != nil {
		return nil, toStatus(err)
	}
	return &pb.SignOutResponse{Status: common.CodeOK}, nil
}

func (s *GRPCServer) VerifyToken(ctx context.Context, req *pb.VerifyTokenRequest) (*pb.VerifyTokenResponse, error) {
	if err := s.auth.VerifyToken(ctx, tokenFrom(ctx, req.Token), req.ActionId); err != nil {
		return nil, toStatus(err)
	}
	return &pb.VerifyTokenResponse{Status: common.CodeOK}, nil
}

func (s *GRPCServer) TokenTTL(ctx context.Context, req *pb.TokenTTLRequest) (*pb.TokenTTLResponse, error) {
	left, err := s.auth.TokenTTL(ctx, tokenFrom(ctx, req.Token))
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.TokenTTLResponse{TtlSeconds: left.Seconds()}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

// toStatus converts an engine error into a gRPC status whose message is the
// stable error code, so clients can recover the exact kind.
func toStatus(err error) error {
	code := common.Code(err)
	return status.Error(grpcCode(code), code)
}

func grpcCode(code string) codes.Code {
	switch code {
	case common.CodeOK:
		return codes.OK
	case common.CodeInvalidCredentials, common.CodeUnknownToken, common.CodeInvalidToken,
		common.CodeTokenExpired, common.CodeTokenTerminated:
		return codes.Unauthenticated
	case common.CodeActionForbidden:
		return codes.PermissionDenied
	case common.CodePersistence:
		return codes.Unavailable
	case common.CodeValidation:
		return codes.InvalidArgument
	case common.CodeAlreadyExists:
		return codes.AlreadyExists
	}
	return codes.Internal
}
