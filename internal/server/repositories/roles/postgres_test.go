package roles

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

const (
	actionsQ = `(?s)^SELECT\s+action_id\s+FROM\s+role_actions\s+WHERE\s+role_id\s*=\s*\$1\s+ORDER\s+BY\s+action_id\s*$`
	roleQ    = `(?s)^SELECT\s+id,\s*name\s+FROM\s+roles\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func TestAllowedActions(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"action_id"}).AddRow(int64(1)).AddRow(int64(3)).AddRow(int64(5)).AddRow(int64(7))
	mock.ExpectQuery(actionsQ).WithArgs(int64(2)).WillReturnRows(rows)

	got, err := repo.AllowedActions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 5, 7}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAllowedActions_UnknownRoleIsEmpty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(actionsQ).WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows([]string{"action_id"}))

	got, err := repo.AllowedActions(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAllowedActions_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(actionsQ).WithArgs(int64(2)).WillReturnError(errors.New("db down"))

	_, err := repo.AllowedActions(context.Background(), 2)
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestAllowedActions_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"action_id"}).AddRow(int64(1)).RowError(0, errors.New("broken row"))
	mock.ExpectQuery(actionsQ).WithArgs(int64(2)).WillReturnRows(rows)

	_, err := repo.AllowedActions(context.Background(), 2)
	require.Error(t, err)
}

func TestGetRole(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(roleQ).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(2), "Lender"))

	role, err := repo.GetRole(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Lender", role.Name)
}

func TestGetRole_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(roleQ).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetRole(context.Background(), 9)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
