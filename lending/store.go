package lending

import (
	"context"
	"errors"
	"time"

	"library-lending/models"
)

// ErrNotFound is returned by GetByID/FindOpen when no record matches.
// Store implementations normalize their own not-found errors to this one.
var ErrNotFound = errors.New("record not found")

type BookStore interface {
	GetAll(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	Add(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id string) error
	// Search matches case-insensitive substrings; empty filters are ignored
	// and the provided ones are ANDed.
	Search(ctx context.Context, title, author, category string) ([]models.Book, error)
	// GetBorrowedByMember returns books with an open transaction for the member.
	GetBorrowedByMember(ctx context.Context, memberID string) ([]models.Book, error)
}

type MemberStore interface {
	GetAll(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, id string) (*models.Member, error)
	Add(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id string) error
}

type TransactionStore interface {
	GetAll(ctx context.Context) ([]models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	Add(ctx context.Context, txn *models.Transaction) error
	Update(ctx context.Context, txn *models.Transaction) error
	// FindOpen returns the open transaction matching both ids, or ErrNotFound.
	FindOpen(ctx context.Context, bookID, memberID string) (*models.Transaction, error)
	// ListOverdue returns open transactions whose due date is strictly before now.
	ListOverdue(ctx context.Context, now time.Time) ([]models.Transaction, error)
}

// Store groups the three record stores behind one atomic boundary.
// Atomically runs fn against a store view whose reads and writes commit as
// a single unit; when fn returns an error nothing is persisted.
type Store interface {
	Books() BookStore
	Members() MemberStore
	Transactions() TransactionStore
	Atomically(ctx context.Context, fn func(Store) error) error
}
