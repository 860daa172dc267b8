package lending

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-lending/models"
)

func newTestEngine(t *testing.T) (*Engine, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewEngine(store), store
}

func seedBook(t *testing.T, store *MemoryStore, title string) *models.Book {
	t.Helper()
	book := &models.Book{
		ID:        uuid.NewString(),
		Title:     title,
		Author:    "Author",
		Category:  "Fiction",
		Available: true,
	}
	require.NoError(t, store.Books().Add(context.Background(), book))
	return book
}

func seedMember(t *testing.T, store *MemoryStore, name string) *models.Member {
	t.Helper()
	member := &models.Member{ID: uuid.NewString(), Name: name}
	require.NoError(t, store.Members().Add(context.Background(), member))
	return member
}

func TestBorrowBook(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh book and member", func(t *testing.T) {
		engine, store := newTestEngine(t)
		borrowedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		engine.now = func() time.Time { return borrowedAt }

		book := seedBook(t, store, "The Go Programming Language")
		member := seedMember(t, store, "Alice")

		require.NoError(t, engine.BorrowBook(ctx, book.ID, member.ID))

		gotBook, err := store.Books().GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.False(t, gotBook.Available)

		gotMember, err := store.Members().GetByID(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, gotMember.BorrowedBooksCount)

		txns, err := store.Transactions().GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, book.ID, txns[0].BookID)
		assert.Equal(t, member.ID, txns[0].MemberID)
		assert.True(t, txns[0].Open())
		assert.Equal(t, borrowedAt, txns[0].BorrowedAt)
		assert.Equal(t, borrowedAt.Add(14*24*time.Hour), txns[0].DueAt)
	})

	t.Run("book already borrowed", func(t *testing.T) {
		engine, store := newTestEngine(t)
		book := seedBook(t, store, "Dune")
		alice := seedMember(t, store, "Alice")
		bob := seedMember(t, store, "Bob")

		require.NoError(t, engine.BorrowBook(ctx, book.ID, alice.ID))

		err := engine.BorrowBook(ctx, book.ID, bob.ID)
		assert.ErrorIs(t, err, ErrCannotBorrow)

		// Still exactly one open transaction for the book.
		txns, err2 := store.Transactions().GetAll(ctx)
		require.NoError(t, err2)
		assert.Len(t, txns, 1)
	})

	t.Run("member at the borrow limit", func(t *testing.T) {
		engine, store := newTestEngine(t)
		member := seedMember(t, store, "Collector")
		for i := 0; i < BorrowLimit; i++ {
			book := seedBook(t, store, "Volume")
			require.NoError(t, engine.BorrowBook(ctx, book.ID, member.ID))
		}

		extra := seedBook(t, store, "One Too Many")
		err := engine.BorrowBook(ctx, extra.ID, member.ID)
		assert.ErrorIs(t, err, ErrCannotBorrow)

		gotMember, err2 := store.Members().GetByID(ctx, member.ID)
		require.NoError(t, err2)
		assert.Equal(t, BorrowLimit, gotMember.BorrowedBooksCount)

		gotBook, err3 := store.Books().GetByID(ctx, extra.ID)
		require.NoError(t, err3)
		assert.True(t, gotBook.Available)
	})

	t.Run("unknown book", func(t *testing.T) {
		engine, store := newTestEngine(t)
		member := seedMember(t, store, "Alice")
		err := engine.BorrowBook(ctx, uuid.NewString(), member.ID)
		assert.ErrorIs(t, err, ErrCannotBorrow)
	})

	t.Run("unknown member", func(t *testing.T) {
		engine, store := newTestEngine(t)
		book := seedBook(t, store, "Orphaned")
		err := engine.BorrowBook(ctx, book.ID, uuid.NewString())
		assert.ErrorIs(t, err, ErrCannotBorrow)
	})
}

func TestReturnBook(t *testing.T) {
	ctx := context.Background()

	t.Run("matching open transaction", func(t *testing.T) {
		engine, store := newTestEngine(t)
		returnedAt := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

		book := seedBook(t, store, "Neuromancer")
		member := seedMember(t, store, "Alice")
		require.NoError(t, engine.BorrowBook(ctx, book.ID, member.ID))

		engine.now = func() time.Time { return returnedAt }
		require.NoError(t, engine.ReturnBook(ctx, book.ID, member.ID))

		gotBook, err := store.Books().GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, gotBook.Available)

		gotMember, err := store.Members().GetByID(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, gotMember.BorrowedBooksCount)

		txns, err := store.Transactions().GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		require.NotNil(t, txns[0].ReturnedAt)
		assert.Equal(t, returnedAt, *txns[0].ReturnedAt)
	})

	t.Run("second return fails", func(t *testing.T) {
		engine, store := newTestEngine(t)
		book := seedBook(t, store, "Snow Crash")
		member := seedMember(t, store, "Alice")
		require.NoError(t, engine.BorrowBook(ctx, book.ID, member.ID))
		require.NoError(t, engine.ReturnBook(ctx, book.ID, member.ID))

		err := engine.ReturnBook(ctx, book.ID, member.ID)
		assert.ErrorIs(t, err, ErrNoActiveTransaction)

		gotMember, err2 := store.Members().GetByID(ctx, member.ID)
		require.NoError(t, err2)
		assert.Equal(t, 0, gotMember.BorrowedBooksCount)
	})

	t.Run("wrong member", func(t *testing.T) {
		engine, store := newTestEngine(t)
		book := seedBook(t, store, "Hyperion")
		alice := seedMember(t, store, "Alice")
		bob := seedMember(t, store, "Bob")
		require.NoError(t, engine.BorrowBook(ctx, book.ID, alice.ID))

		err := engine.ReturnBook(ctx, book.ID, bob.ID)
		assert.ErrorIs(t, err, ErrNoActiveTransaction)
	})

	t.Run("no transaction at all", func(t *testing.T) {
		engine, store := newTestEngine(t)
		book := seedBook(t, store, "Untouched")
		member := seedMember(t, store, "Alice")

		err := engine.ReturnBook(ctx, book.ID, member.ID)
		assert.ErrorIs(t, err, ErrNoActiveTransaction)
	})

	t.Run("book record missing leaves the transaction open", func(t *testing.T) {
		engine, store := newTestEngine(t)
		book := seedBook(t, store, "Ghost Copy")
		member := seedMember(t, store, "Alice")
		require.NoError(t, engine.BorrowBook(ctx, book.ID, member.ID))

		require.NoError(t, store.Books().Delete(ctx, book.ID))

		// Succeeds without touching anything.
		require.NoError(t, engine.ReturnBook(ctx, book.ID, member.ID))

		txns, err := store.Transactions().GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.True(t, txns[0].Open())

		gotMember, err := store.Members().GetByID(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, gotMember.BorrowedBooksCount)
	})
}

func TestGetOverdueTransactions(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return base }

	lateBook := seedBook(t, store, "Late")
	freshBook := seedBook(t, store, "Fresh")
	member := seedMember(t, store, "Alice")

	require.NoError(t, engine.BorrowBook(ctx, lateBook.ID, member.ID))

	// Second borrow ten days later: still within its loan period at query time.
	engine.now = func() time.Time { return base.Add(10 * 24 * time.Hour) }
	require.NoError(t, engine.BorrowBook(ctx, freshBook.ID, member.ID))

	// Query 15 days after the first borrow.
	engine.now = func() time.Time { return base.Add(15 * 24 * time.Hour) }

	overdue, err := engine.GetOverdueTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, lateBook.ID, overdue[0].BookID)

	// Returning the late book removes it from the report.
	require.NoError(t, engine.ReturnBook(ctx, lateBook.ID, member.ID))
	overdue, err = engine.GetOverdueTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestGetOverdueTransactions_DueExactlyNow(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return base }

	book := seedBook(t, store, "Boundary")
	member := seedMember(t, store, "Alice")
	require.NoError(t, engine.BorrowBook(ctx, book.ID, member.ID))

	// Strictly-before comparison: due == now is not overdue.
	engine.now = func() time.Time { return base.Add(LoanPeriod) }
	overdue, err := engine.GetOverdueTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestBorrowBook_ConcurrentSameBook(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	book := seedBook(t, store, "Contested")
	members := make([]*models.Member, 10)
	for i := range members {
		members[i] = seedMember(t, store, "Member")
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for _, m := range members {
		wg.Add(1)
		go func(memberID string) {
			defer wg.Done()
			if err := engine.BorrowBook(ctx, book.ID, memberID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(m.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	txns, err := store.Transactions().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestBorrowBook_ConcurrentSameMember(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	member := seedMember(t, store, "Eager")
	books := make([]*models.Book, 10)
	for i := range books {
		books[i] = seedBook(t, store, "Copy")
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for _, b := range books {
		wg.Add(1)
		go func(bookID string) {
			defer wg.Done()
			if err := engine.BorrowBook(ctx, bookID, member.ID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(b.ID)
	}
	wg.Wait()

	assert.Equal(t, BorrowLimit, succeeded)
	gotMember, err := store.Members().GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, BorrowLimit, gotMember.BorrowedBooksCount)
}
