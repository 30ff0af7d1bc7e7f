package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/dbx"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectUser = `SELECT id, username, password_hash, role_id, jwt_token, token_secret, token_issued_at, created_at
		 FROM users`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, password_hash, role_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (username) DO NOTHING
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.PasswordHash, user.RoleID).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByName(ctx context.Context, userName string) (*models.User, error) {
	return r.getUser(ctx, selectUser+`
		 WHERE username = $1`, userName)
}

func (r *PostgresRepository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return r.getUser(ctx, selectUser+`
		 WHERE jwt_token = $1`, token)
}

func (r *PostgresRepository) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.UserName, &user.PasswordHash, &user.RoleID,
		&user.Token, &user.TokenSecret, &user.TokenIssuedAt, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdateToken(ctx context.Context, userName, token, secret string, issuedAt float64) error {
	query :=
		`UPDATE users SET jwt_token = $2, token_secret = $3, token_issued_at = $4
		 WHERE username = $1
		 `

	return r.execOne(ctx, query, userName, token, secret, issuedAt)
}

func (r *PostgresRepository) TerminateToken(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrorNotFound
	}

	query :=
		`UPDATE users SET token_issued_at = $2
		 WHERE jwt_token = $1
		 `

	return r.execOne(ctx, query, token, common.TerminatedIssuedAt)
}

// execOne runs an update expected to touch exactly one row.
func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
