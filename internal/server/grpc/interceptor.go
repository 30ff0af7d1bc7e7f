package grpc

import (
	"context"
	"path"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const accessTokenKey ctxKey = "accessToken"

// accessTokenInterceptor copies the access_token metadata value into the
// context so handlers can fall back to it when the request body has none.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 && values[0] != "" {
			ctx = context.WithValue(ctx, accessTokenKey, values[0])
		}
	}

	return handler(ctx, req)
}

// observeInterceptor logs every call with its result code and records it in
// the metrics.
func (s *GRPCServer) observeInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	elapsed := time.Since(start)

	op := path.Base(info.FullMethod)
	code := common.CodeOK
	if err != nil {
		code = status.Convert(err).Message()
	}
	s.metrics.Observe("grpc", op, common.ErrorForCode(code), elapsed)

	if code == common.CodeInternal || code == common.CodePersistence {
		s.logger.Error(ctx, "gRPC call failed", "method", op, "code", code, "duration", elapsed)
	} else {
		s.logger.Info(ctx, "gRPC call", "method", op, "code", code, "duration", elapsed)
	}

	return resp, err
}

func tokenFrom(ctx context.Context, fromRequest string) string {
	if fromRequest != "" {
		return fromRequest
	}
	token, _ := ctx.Value(accessTokenKey).(string)
	return token
}
