package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gatekeeper/internal/dbx"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/roles"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/users"
)

// TxRunner binds repositories from a RepositoryManager to one transaction.
type TxRunner struct {
	db *sql.DB
	m  RepositoryManager
}

func NewTxRunner(db *sql.DB, m RepositoryManager) *TxRunner {
	return &TxRunner{db: db, m: m}
}

// InTx runs fn with repositories sharing a single transaction, committed when
// fn returns nil and rolled back otherwise.
func (r *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context, u users.Repository, rr roles.Repository) error) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, r.m.Users(tx), r.m.Roles(tx))
	})
}
