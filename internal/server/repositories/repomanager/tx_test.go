package repomanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/roles"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/users"
)

func TestTxRunner_CommitsOnSuccess(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name FROM roles`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Lender"))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "digest", int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))
	mock.ExpectCommit()

	r := NewTxRunner(db, NewPostgresRepositoryManager())
	err := r.InTx(context.Background(), func(ctx context.Context, u users.Repository, rr roles.Repository) error {
		if _, err := rr.GetRole(ctx, 2); err != nil {
			return err
		}
		_, err := u.Create(ctx, &models.User{UserName: "alice", PasswordHash: "digest", RoleID: 2})
		return err
	})
	if err != nil {
		t.Fatalf("InTx error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTxRunner_RollsBackOnError(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))
	mock.ExpectRollback()

	r := NewTxRunner(db, NewPostgresRepositoryManager())
	err := r.InTx(context.Background(), func(ctx context.Context, u users.Repository, _ roles.Repository) error {
		_, err := u.Create(ctx, &models.User{UserName: "alice", PasswordHash: "digest", RoleID: 2})
		return err
	})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTxRunner_BeginError(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("begin failed"))

	called := false
	r := NewTxRunner(db, NewPostgresRepositoryManager())
	err := r.InTx(context.Background(), func(context.Context, users.Repository, roles.Repository) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("expected begin error without calling fn, err=%v called=%v", err, called)
	}
}
