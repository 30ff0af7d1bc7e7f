// Package memory provides a process-local Store implementing both the users
// and roles repository contracts. It is seeded with the same reference data
// as the SQL migrations.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/roles"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/users"
)

var (
	_ users.Repository = (*Store)(nil)
	_ roles.Repository = (*Store)(nil)
)

// Store keeps users by username, with a token index for secondary lookups.
// All methods are safe for concurrent use; writes to the same user are
// serialised and the last writer wins.
type Store struct {
	mu          sync.RWMutex
	nextID      int64
	users       map[string]*models.User
	byToken     map[string]string // token -> username
	roles       map[int64]models.Role
	roleActions map[int64][]int64
}

// NewStore returns a store holding the reference roles and actions.
func NewStore() *Store {
	return NewStoreWithRoles(DefaultRoles(), DefaultRoleActions())
}

// NewStoreWithRoles returns an empty store with custom reference data.
func NewStoreWithRoles(rs []models.Role, grants map[int64][]int64) *Store {
	s := &Store{
		users:       make(map[string]*models.User),
		byToken:     make(map[string]string),
		roles:       make(map[int64]models.Role, len(rs)),
		roleActions: make(map[int64][]int64, len(grants)),
	}
	for _, r := range rs {
		s.roles[r.ID] = r
	}
	for roleID, actions := range grants {
		sorted := slices.Clone(actions)
		slices.Sort(sorted)
		s.roleActions[roleID] = sorted
	}
	return s
}

// DefaultRoles mirrors the roles table seeded by the migrations.
func DefaultRoles() []models.Role {
	return []models.Role{
		{ID: models.RoleBorrower, Name: "Borrower"},
		{ID: models.RoleLender, Name: "Lender"},
		{ID: models.RoleAdmin, Name: "Admin"},
	}
}

// DefaultRoleActions mirrors the role_actions table seeded by the migrations.
func DefaultRoleActions() map[int64][]int64 {
	return map[int64][]int64{
		models.RoleBorrower: {models.ActionPlaceBid, models.ActionRequestLoan, models.ActionRepayLoan},
		models.RoleLender:   {models.ActionPlaceBid, models.ActionCancelBid, models.ActionFundLoan, models.ActionViewReports},
		models.RoleAdmin: {
			models.ActionPlaceBid, models.ActionPlaceOffer, models.ActionCancelBid, models.ActionRequestLoan,
			models.ActionFundLoan, models.ActionRepayLoan, models.ActionViewReports,
		},
	}
}

func (s *Store) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := s.roles[user.RoleID]; !ok {
		return nil, fmt.Errorf("%w: unknown role %d", common.ErrorValidation, user.RoleID)
	}

	s.nextID++
	stored := &models.User{
		ID:           s.nextID,
		UserName:     user.UserName,
		PasswordHash: user.PasswordHash,
		RoleID:       user.RoleID,
		CreatedAt:    time.Now(),
	}
	s.users[stored.UserName] = stored

	out := *stored
	return &out, nil
}

func (s *Store) GetUserByName(ctx context.Context, userName string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (s *Store) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.byToken[token]
	if !ok || token == "" {
		return nil, common.ErrorNotFound
	}
	out := *s.users[name]
	return &out, nil
}

func (s *Store) UpdateToken(ctx context.Context, userName, token, secret string, issuedAt float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userName]
	if !ok {
		return common.ErrorNotFound
	}
	if owner, taken := s.byToken[token]; taken && owner != userName {
		return common.ErrorAlreadyExists
	}

	delete(s.byToken, u.Token)
	u.Token = token
	u.TokenSecret = secret
	u.TokenIssuedAt = issuedAt
	s.byToken[token] = userName

	return nil
}

func (s *Store) TerminateToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.byToken[token]
	if !ok || token == "" {
		return common.ErrorNotFound
	}
	s.users[name].TokenIssuedAt = common.TerminatedIssuedAt

	return nil
}

func (s *Store) AllowedActions(ctx context.Context, roleID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.roleActions[roleID]), nil
}

func (s *Store) GetRole(ctx context.Context, roleID int64) (*models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roles[roleID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &r, nil
}
