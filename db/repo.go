package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"library-lending/lending"
)

// Repo implements lending.Store on top of GORM/Postgres.
//
// Atomically wraps a database transaction; the store views it hands out
// take FOR UPDATE row locks on single-record reads, so two concurrent
// borrows of the same book (or by the same member) serialize instead of
// both passing validation. The partial unique index created in Migrate
// backstops the one-open-transaction-per-book invariant.
type Repo struct {
	DB   *gorm.DB
	inTx bool
}

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

func (r *Repo) Books() lending.BookStore               { return bookStore{r} }
func (r *Repo) Members() lending.MemberStore           { return memberStore{r} }
func (r *Repo) Transactions() lending.TransactionStore { return transactionStore{r} }

func (r *Repo) Atomically(ctx context.Context, fn func(lending.Store) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repo{DB: tx, inTx: true})
	})
}

// scoped applies the context and, inside a unit of work, a row lock.
func (r *Repo) scoped(ctx context.Context) *gorm.DB {
	tx := r.DB.WithContext(ctx)
	if r.inTx {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func normalizeNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lending.ErrNotFound
	}
	return err
}
