// Package roles declares read access to the static role/action reference data.
package roles

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

type Repository interface {
	// AllowedActions returns the action ids granted to roleID, in ascending
	// order. An unknown role has no actions.
	AllowedActions(ctx context.Context, roleID int64) ([]int64, error)

	// GetRole returns common.ErrorNotFound for an unknown id.
	GetRole(ctx context.Context, roleID int64) (*models.Role, error)
}
