// Package services contains server-side business logic. This file implements
// AuthorizationService, which owns the session token lifecycle: sign-in,
// sign-out, token verification against role permissions and TTL queries.
package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/roles"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/users"
)

// AuthorizationService keeps no state of its own besides configuration; every
// token record lives in the users repository and permission sets are read
// from the roles repository on each call.
type AuthorizationService struct {
	users  users.Repository
	roles  roles.Repository
	hasher auth.Hasher
	ttl    time.Duration
	log    logging.Logger

	tx        Transactor

	now       func() time.Time
	newSecret func() (string, error)
}

// Transactor runs fn with repositories that commit or roll back together.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, u users.Repository, r roles.Repository) error) error
}

// directTx hands out the service's own repositories, for stores where each
// call is already atomic.
type directTx struct {
	users users.Repository
	roles roles.Repository
}

func (d directTx) InTx(ctx context.Context, fn func(ctx context.Context, u users.Repository, r roles.Repository) error) error {
	return fn(ctx, d.users, d.roles)
}

// NewAuthorizationService wires the engine to its store and hasher. ttl is the
// maximum age of a token, measured from its issuance time.
func NewAuthorizationService(u users.Repository, r roles.Repository, h auth.Hasher, ttl time.Duration, log logging.Logger) *AuthorizationService {
	if log == nil {
		log = logging.Nop()
	}
	return &AuthorizationService{
		users:     u,
		roles:     r,
		hasher:    h,
		ttl:       ttl,
		tx:        directTx{users: u, roles: r},
		log:       log.With("module", "authorization"),
		now:       time.Now,
		newSecret: auth.GenerateSecret,
	}
}

// WithTransactor makes multi-step writes such as Provision run through t.
func (s *AuthorizationService) WithTransactor(t Transactor) *AuthorizationService {
	s.tx = t
	return s
}

// TTL returns the configured token lifetime.
func (s *AuthorizationService) TTL() time.Duration {
	return s.ttl
}

// SignIn checks the credentials and issues a new token for userName,
// replacing any previous token record of that user. An unknown user and a
// wrong password both yield common.ErrInvalidCredentials.
func (s *AuthorizationService) SignIn(ctx context.Context, userName, password string) (string, error) {
	candidate := s.hasher.Hash(password)

	user, err := s.users.GetUserByName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Info(ctx, "sign-in rejected", "username", userName)
			return "", common.ErrInvalidCredentials
		}
		return "", s.persistence(ctx, "user lookup", err)
	}

	if !auth.Equal(candidate, user.PasswordHash) {
		s.log.Info(ctx, "sign-in rejected", "username", userName)
		return "", common.ErrInvalidCredentials
	}

	secret, err := s.newSecret()
	if err != nil {
		s.log.Error(ctx, "secret generation failed", "error", err)
		return "", common.ErrorInternal
	}

	issuedAt := s.now().Truncate(models.IssuePrecision)
	token, err := auth.Encode(user.UserName, []byte(secret), issuedAt)
	if err != nil {
		s.log.Error(ctx, "token encoding failed", "error", err)
		return "", common.ErrorInternal
	}

	if err := s.users.UpdateToken(ctx, user.UserName, token, secret, models.EpochSeconds(issuedAt)); err != nil {
		return "", s.persistence(ctx, "token update", err)
	}

	s.log.Info(ctx, "token issued", "username", user.UserName)
	return token, nil
}

// SignOut terminates the record holding token. Terminating an already
// terminated or expired token succeeds.
func (s *AuthorizationService) SignOut(ctx context.Context, token string) error {
	user, err := s.lookup(ctx, token)
	if err != nil {
		return err
	}
	if user.TokenIssuedAt == common.TerminatedIssuedAt {
		return nil
	}

	if err := s.users.TerminateToken(ctx, token); err != nil {
		// the token was replaced by a concurrent sign-in
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUnknownToken
		}
		return s.persistence(ctx, "token termination", err)
	}

	s.log.Info(ctx, "token terminated", "username", user.UserName)
	return nil
}

// VerifyToken confirms that token is live and that its owner's role grants
// actionID. It returns nil on confirmation.
func (s *AuthorizationService) VerifyToken(ctx context.Context, token string, actionID int64) error {
	user, err := s.validate(ctx, token)
	if err != nil {
		return err
	}

	allowed, err := s.roles.AllowedActions(ctx, user.RoleID)
	if err != nil {
		return s.persistence(ctx, "permission lookup", err)
	}
	if !slices.Contains(allowed, actionID) {
		s.log.Info(ctx, "action forbidden", "username", user.UserName, "action", actionID)
		return common.ErrActionForbidden
	}

	return nil
}

// TokenTTL returns how long token stays valid.
func (s *AuthorizationService) TokenTTL(ctx context.Context, token string) (time.Duration, error) {
	user, err := s.validate(ctx, token)
	if err != nil {
		return 0, err
	}
	return s.ttl - user.TokenAge(s.now()), nil
}

// Provision creates a user with the given role, storing only the password
// digest.
func (s *AuthorizationService) Provision(ctx context.Context, userName, password string, roleID int64) (*models.User, error) {
	if userName == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	var user *models.User
	err := s.tx.InTx(ctx, func(ctx context.Context, ur users.Repository, rr roles.Repository) error {
		if _, err := rr.GetRole(ctx, roleID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: unknown role %d", common.ErrorValidation, roleID)
			}
			return err
		}

		var err error
		user, err = ur.Create(ctx, &models.User{
			UserName:     userName,
			PasswordHash: s.hasher.Hash(password),
			RoleID:       roleID,
		})
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return nil, err
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.ErrorAlreadyExists
		}
		return nil, s.persistence(ctx, "provision", err)
	}

	s.log.Info(ctx, "user provisioned", "username", userName, "role", roleID)
	return user, nil
}

// lookup resolves token to its owner's record.
func (s *AuthorizationService) lookup(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrUnknownToken
	}
	user, err := s.users.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownToken
		}
		return nil, s.persistence(ctx, "token lookup", err)
	}
	return user, nil
}

// validate runs the checks shared by VerifyToken and TokenTTL: the token must
// exist, validate against its own secret, name the record's owner, and be
// younger than the TTL.
func (s *AuthorizationService) validate(ctx context.Context, token string) (*models.User, error) {
	user, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	subject, err := auth.Decode(token, []byte(user.TokenSecret))
	if err != nil || subject != user.UserName {
		s.log.Warn(ctx, "token rejected", "username", user.UserName)
		return nil, common.ErrInvalidToken
	}

	switch user.TokenState(s.now(), s.ttl) {
	case models.TokenTerminated:
		return nil, common.ErrTokenTerminated
	case models.TokenExpired:
		return nil, common.ErrTokenExpired
	}

	return user, nil
}

func (s *AuthorizationService) persistence(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "store failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrPersistence, op, err)
}
