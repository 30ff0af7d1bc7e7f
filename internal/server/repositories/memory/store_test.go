package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	u, err := s.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h", RoleID: models.RoleLender})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = s.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h2", RoleID: models.RoleLender})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = s.Create(ctx, &models.User{UserName: "bob", PasswordHash: "h", RoleID: 42})
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.EqualError(t, err, "validation error: unknown role 42")

	got, err := s.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h", got.PasswordHash)

	_, err = s.GetUserByName(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h", RoleID: models.RoleLender})
	require.NoError(t, err)

	got, err := s.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	got.PasswordHash = "mutated"

	again, err := s.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h", again.PasswordHash)
}

func TestStore_TokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h", RoleID: models.RoleLender})
	require.NoError(t, err)

	_, err = s.GetUserByToken(ctx, "")
	assert.ErrorIs(t, err, common.ErrorNotFound, "users without a token must not match the empty token")

	require.NoError(t, s.UpdateToken(ctx, "alice", "t1", "s1", 100))
	u, err := s.GetUserByToken(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "s1", u.TokenSecret)
	assert.Equal(t, 100.0, u.TokenIssuedAt)

	// re-issuance replaces the previous record
	require.NoError(t, s.UpdateToken(ctx, "alice", "t2", "s2", 200))
	_, err = s.GetUserByToken(ctx, "t1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, s.TerminateToken(ctx, "t2"))
	u, err = s.GetUserByToken(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, common.TerminatedIssuedAt, u.TokenIssuedAt)

	assert.ErrorIs(t, s.TerminateToken(ctx, "t1"), common.ErrorNotFound)
	assert.ErrorIs(t, s.UpdateToken(ctx, "ghost", "t3", "s3", 1), common.ErrorNotFound)
}

func TestStore_Roles(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	actions, err := s.AllowedActions(ctx, models.RoleLender)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 5, 7}, actions)

	actions, err = s.AllowedActions(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, actions)

	r, err := s.GetRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Admin", r.Name)

	_, err = s.GetRole(ctx, 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestStore_ConcurrentUpdatesLastWriterWins(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h", RoleID: models.RoleLender})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.UpdateToken(ctx, "alice", fmt.Sprintf("t%d", i), "s", float64(i+1))
		}(i)
	}
	wg.Wait()

	u, err := s.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	got, err := s.GetUserByToken(ctx, u.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserName)
	assert.Len(t, s.byToken, 1, "only the winning token stays indexed")
}
