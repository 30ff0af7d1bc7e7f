package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// DemoUser is a development account provisioned at startup when enabled.
type DemoUser struct {
	UserName string
	Password string
	RoleID   int64
}

// DemoUsers is the development account set.
var DemoUsers = []DemoUser{
	{UserName: "Greg Bradly", Password: "Pigs", RoleID: models.RoleBorrower},
	{UserName: "Joe Anderson", Password: "Truth", RoleID: models.RoleLender},
	{UserName: "Mary Poppins", Password: "Journey", RoleID: models.RoleLender},
	{UserName: "Andrew Levi", Password: "Pass", RoleID: models.RoleAdmin},
}

// Seed provisions accounts, skipping those that already exist. It returns the
// number of users created.
func (s *AuthorizationService) Seed(ctx context.Context, accounts []DemoUser) (int, error) {
	created := 0
	for _, a := range accounts {
		_, err := s.Provision(ctx, a.UserName, a.Password, a.RoleID)
		switch {
		case err == nil:
			created++
		case errors.Is(err, common.ErrorAlreadyExists):
		default:
			return created, err
		}
	}
	return created, nil
}
