package lending

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"library-lending/loggers"
	"library-lending/models"
)

// BorrowLimit caps how many books a member may have out at once.
const BorrowLimit = 5

// LoanPeriod is how long a member may keep a book before it is overdue.
const LoanPeriod = 14 * 24 * time.Hour

var (
	// ErrCannotBorrow covers every failed borrow precondition: unknown book,
	// unknown member, book already out, or member at the borrow limit.
	// Callers that need the sub-reason must re-read the records.
	ErrCannotBorrow = errors.New("cannot borrow the book")

	// ErrNoActiveTransaction means no open transaction matches the given
	// book and member pair.
	ErrNoActiveTransaction = errors.New("no active transaction found for the book and member")
)

// Engine mediates borrowing and returning books across the record stores.
type Engine struct {
	store Store
	now   func() time.Time
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// BorrowBook lends the book to the member: availability flips to false, the
// member's count goes up by one and a fresh open transaction due in 14 days
// is recorded. The three writes commit as one unit.
func (e *Engine) BorrowBook(ctx context.Context, bookID, memberID string) error {
	return e.store.Atomically(ctx, func(s Store) error {
		book, err := s.Books().GetByID(ctx, bookID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		member, err := s.Members().GetByID(ctx, memberID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		if book == nil || member == nil || !book.Available || member.BorrowedBooksCount >= BorrowLimit {
			return ErrCannotBorrow
		}

		book.Available = false
		member.BorrowedBooksCount++

		now := e.now().UTC()
		txn := &models.Transaction{
			ID:         uuid.NewString(),
			BookID:     bookID,
			MemberID:   memberID,
			BorrowedAt: now,
			DueAt:      now.Add(LoanPeriod),
		}

		if err := s.Transactions().Add(ctx, txn); err != nil {
			return err
		}
		if err := s.Books().Update(ctx, book); err != nil {
			return err
		}
		return s.Members().Update(ctx, member)
	})
}

// ReturnBook closes the open transaction matching both ids, frees the book
// and decrements the member's count, all as one unit. Closing is terminal:
// a second return for the same pair fails with ErrNoActiveTransaction.
func (e *Engine) ReturnBook(ctx context.Context, bookID, memberID string) error {
	return e.store.Atomically(ctx, func(s Store) error {
		txn, err := s.Transactions().FindOpen(ctx, bookID, memberID)
		if errors.Is(err, ErrNotFound) {
			return ErrNoActiveTransaction
		}
		if err != nil {
			return err
		}

		book, err := s.Books().GetByID(ctx, bookID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		member, err := s.Members().GetByID(ctx, memberID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		// An open transaction whose book or member record is gone is left
		// untouched and the return reports success. Kept for compatibility
		// with the original service.
		if book == nil || member == nil {
			loggers.Logger.WithFields(map[string]interface{}{
				"transactionId": txn.ID,
				"bookId":        bookID,
				"memberId":      memberID,
			}).Warn("return matched an open transaction but book or member is missing; skipping updates")
			return nil
		}

		now := e.now().UTC()
		txn.ReturnedAt = &now
		book.Available = true
		member.BorrowedBooksCount--

		if err := s.Transactions().Update(ctx, txn); err != nil {
			return err
		}
		if err := s.Books().Update(ctx, book); err != nil {
			return err
		}
		return s.Members().Update(ctx, member)
	})
}

// GetOverdueTransactions returns every open transaction past its due date.
func (e *Engine) GetOverdueTransactions(ctx context.Context) ([]models.Transaction, error) {
	return e.store.Transactions().ListOverdue(ctx, e.now().UTC())
}
