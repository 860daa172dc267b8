package lending

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-lending/models"
)

func TestMemoryStoreAtomicallyRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	book := &models.Book{ID: uuid.NewString(), Title: "Before", Available: true}
	require.NoError(t, store.Books().Add(ctx, book))

	boom := errors.New("boom")
	err := store.Atomically(ctx, func(s Store) error {
		changed := *book
		changed.Available = false
		if err := s.Books().Update(ctx, &changed); err != nil {
			return err
		}
		if err := s.Members().Add(ctx, &models.Member{ID: uuid.NewString(), Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Books().GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, got.Available, "book write should have rolled back")

	members, err := store.Members().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, members, "member write should have rolled back")
}

func TestMemoryStoreUpdateIgnoresUnknownID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Books().Update(ctx, &models.Book{ID: uuid.NewString(), Title: "Nobody"}))

	books, err := store.Books().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestMemoryStoreSearch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	add := func(title, author, category string) {
		require.NoError(t, store.Books().Add(ctx, &models.Book{
			ID: uuid.NewString(), Title: title, Author: author, Category: category, Available: true,
		}))
	}
	add("The Left Hand of Darkness", "Ursula K. Le Guin", "Science Fiction")
	add("A Wizard of Earthsea", "Ursula K. Le Guin", "Fantasy")
	add("The Dispossessed", "Ursula K. Le Guin", "Science Fiction")
	add("Dune", "Frank Herbert", "Science Fiction")

	t.Run("case-insensitive substring", func(t *testing.T) {
		books, err := store.Books().Search(ctx, "darkness", "", "")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "The Left Hand of Darkness", books[0].Title)
	})

	t.Run("filters are ANDed", func(t *testing.T) {
		books, err := store.Books().Search(ctx, "", "le guin", "science")
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("no filters returns everything", func(t *testing.T) {
		books, err := store.Books().Search(ctx, "", "", "")
		require.NoError(t, err)
		assert.Len(t, books, 4)
	})

	t.Run("no match", func(t *testing.T) {
		books, err := store.Books().Search(ctx, "dune", "le guin", "")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestMemoryStoreGetBorrowedByMember(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	engine := NewEngine(store)

	alice := &models.Member{ID: uuid.NewString(), Name: "Alice"}
	bob := &models.Member{ID: uuid.NewString(), Name: "Bob"}
	require.NoError(t, store.Members().Add(ctx, alice))
	require.NoError(t, store.Members().Add(ctx, bob))

	var aliceBooks []string
	for i := 0; i < 3; i++ {
		b := &models.Book{ID: uuid.NewString(), Title: "Book", Available: true}
		require.NoError(t, store.Books().Add(ctx, b))
		require.NoError(t, engine.BorrowBook(ctx, b.ID, alice.ID))
		aliceBooks = append(aliceBooks, b.ID)
	}
	bobBook := &models.Book{ID: uuid.NewString(), Title: "Bob's", Available: true}
	require.NoError(t, store.Books().Add(ctx, bobBook))
	require.NoError(t, engine.BorrowBook(ctx, bobBook.ID, bob.ID))

	got, err := store.Books().GetBorrowedByMember(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, b := range got {
		assert.Contains(t, aliceBooks, b.ID)
	}

	// Returned books drop out.
	require.NoError(t, engine.ReturnBook(ctx, aliceBooks[0], alice.ID))
	got, err = store.Books().GetBorrowedByMember(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
