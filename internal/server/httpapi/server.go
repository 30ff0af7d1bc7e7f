// Package httpapi is the JSON/HTTP gateway in front of the authorization
// engine. Routes and payload keys follow the legacy gateway so existing
// callers keep working.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/metrics"
	"github.com/gin-gonic/gin"
)

// AuthService is the engine surface the gateway needs.
type AuthService interface {
	SignIn(ctx context.Context, userName, password string) (string, error)
	SignOut(ctx context.Context, token string) error
	VerifyToken(ctx context.Context, token string, actionID int64) error
	TokenTTL(ctx context.Context, token string) (time.Duration, error)
}

type HTTPServer struct {
	address string
	auth    AuthService
	logger  logging.Logger
	metrics *metrics.Metrics
	engine  *gin.Engine
}

func NewHTTPServer(a string, l logging.Logger, svc AuthService, m *metrics.Metrics) *HTTPServer {
	s := &HTTPServer{
		address: a,
		auth:    svc,
		logger:  l.With("module", "http_server"),
		metrics: m,
	}
	s.engine = s.routes()
	return s
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())

	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "OK"}) })

	g := r.Group("/authorization")
	g.POST("/sign_in", s.signIn)
	g.POST("/sign_out", s.signOut)
	g.POST("/perform_action", s.performAction)
	g.GET("/get_jwt_ttl/:jwt", s.tokenTTL)

	return r
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
