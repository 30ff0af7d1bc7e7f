package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/gin-gonic/gin"
)

const codeKey = "gatekeeper.code"

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenRequest struct {
	AuthToken string `json:"auth_token" binding:"required"`
}

type actionRequest struct {
	AuthToken string `json:"auth_token" binding:"required"`
	ActionID  *int64 `json:"action_id" binding:"required"`
}

func (s *HTTPServer) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Authorization: please provide valid credentials in request")
		return
	}

	token, err := s.auth.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Token": token})
}

func (s *HTTPServer) signOut(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Authorization: please provide a valid JWT in request")
		return
	}

	if err := s.auth.SignOut(c.Request.Context(), req.AuthToken); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Token Termination": "Confirmed"})
}

func (s *HTTPServer) performAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Authorization: please provide valid action ID and JWT in request")
		return
	}

	if err := s.auth.VerifyToken(c.Request.Context(), req.AuthToken, *req.ActionID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": fmt.Sprintf("Action %d was successfully performed", *req.ActionID)})
}

func (s *HTTPServer) tokenTTL(c *gin.Context) {
	left, err := s.auth.TokenTTL(c.Request.Context(), c.Param("jwt"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ttl": left.Seconds()})
}

func (s *HTTPServer) badRequest(c *gin.Context, msg string) {
	c.Set(codeKey, common.CodeValidation)
	c.JSON(http.StatusBadRequest, gin.H{"Error": msg, "code": common.CodeValidation})
}

func (s *HTTPServer) fail(c *gin.Context, err error) {
	code := common.Code(err)
	c.Set(codeKey, code)

	msg := err.Error()
	if code == common.CodePersistence || code == common.CodeInternal {
		// store details stay in the server log
		msg = "service temporarily unavailable"
		if code == common.CodeInternal {
			msg = "internal error"
		}
	}
	c.JSON(httpStatus(code), gin.H{"Error": msg, "code": code})
}

func httpStatus(code string) int {
	switch code {
	case common.CodeInvalidCredentials, common.CodeUnknownToken, common.CodeInvalidToken,
		common.CodeTokenExpired, common.CodeTokenTerminated:
		return http.StatusUnauthorized
	case common.CodeActionForbidden:
		return http.StatusForbidden
	case common.CodePersistence:
		return http.StatusServiceUnavailable
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeAlreadyExists:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// observe logs each request by route template (never the raw path, which
// may hold a token) and records it in the metrics.
func (s *HTTPServer) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.GetString(codeKey)
		if code == "" {
			code = common.CodeOK
		}

		s.metrics.Observe("http", route, common.ErrorForCode(code), elapsed)
		s.logger.Info(c.Request.Context(), "HTTP request",
			"method", c.Request.Method, "route", route, "status", c.Writer.Status(), "code", code, "duration", elapsed)
	}
}
