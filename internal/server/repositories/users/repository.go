// Package users declares the server-side repository contract for user
// identities and their session token records.
package users

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// Repository stores users keyed by username, with the token as a secondary
// lookup key. Lookups return common.ErrorNotFound when nothing matches.
type Repository interface {
	// Create inserts a new user. A taken username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	GetUserByName(ctx context.Context, userName string) (*models.User, error)
	GetUserByToken(ctx context.Context, token string) (*models.User, error)

	// UpdateToken overwrites the token record of userName.
	UpdateToken(ctx context.Context, userName, token, secret string, issuedAt float64) error

	// TerminateToken sets the issuance time of the record holding token to
	// common.TerminatedIssuedAt.
	TerminateToken(ctx context.Context, token string) error
}
