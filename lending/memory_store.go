package lending

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"library-lending/models"
)

// MemoryStore is an in-memory Store. A single mutex serializes units of
// work and the state is snapshotted on entry so a failed unit rolls back
// completely. Useful for tests and for running the engine without Postgres.
type MemoryStore struct {
	mu    sync.Mutex
	state memoryState
}

type memoryState struct {
	books        map[string]models.Book
	members      map[string]models.Member
	transactions map[string]models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: memoryState{
		books:        map[string]models.Book{},
		members:      map[string]models.Member{},
		transactions: map[string]models.Transaction{},
	}}
}

func (s memoryState) clone() memoryState {
	c := memoryState{
		books:        make(map[string]models.Book, len(s.books)),
		members:      make(map[string]models.Member, len(s.members)),
		transactions: make(map[string]models.Transaction, len(s.transactions)),
	}
	for k, v := range s.books {
		c.books[k] = v
	}
	for k, v := range s.members {
		c.members[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	return c
}

func (m *MemoryStore) Books() BookStore               { return memBooks{m: m, lock: true} }
func (m *MemoryStore) Members() MemberStore           { return memMembers{m: m, lock: true} }
func (m *MemoryStore) Transactions() TransactionStore { return memTransactions{m: m, lock: true} }

func (m *MemoryStore) Atomically(_ context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.state.clone()
	if err := fn(txView{m: m}); err != nil {
		m.state = snap
		return err
	}
	return nil
}

// txView hands out store views that skip locking; the unit-of-work mutex is
// already held.
type txView struct{ m *MemoryStore }

func (v txView) Books() BookStore               { return memBooks{m: v.m} }
func (v txView) Members() MemberStore           { return memMembers{m: v.m} }
func (v txView) Transactions() TransactionStore { return memTransactions{m: v.m} }

func (v txView) Atomically(_ context.Context, fn func(Store) error) error {
	return fn(v)
}

type memBooks struct {
	m    *MemoryStore
	lock bool
}

func (b memBooks) acquire() func() {
	if !b.lock {
		return func() {}
	}
	b.m.mu.Lock()
	return b.m.mu.Unlock
}

func (b memBooks) GetAll(context.Context) ([]models.Book, error) {
	defer b.acquire()()
	out := make([]models.Book, 0, len(b.m.state.books))
	for _, bk := range b.m.state.books {
		out = append(out, bk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b memBooks) GetByID(_ context.Context, id string) (*models.Book, error) {
	defer b.acquire()()
	bk, ok := b.m.state.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &bk, nil
}

func (b memBooks) Add(_ context.Context, book *models.Book) error {
	defer b.acquire()()
	b.m.state.books[book.ID] = *book
	return nil
}

func (b memBooks) Update(_ context.Context, book *models.Book) error {
	defer b.acquire()()
	if _, ok := b.m.state.books[book.ID]; !ok {
		return nil // full replace by id; silently ignores unknown ids
	}
	b.m.state.books[book.ID] = *book
	return nil
}

func (b memBooks) Delete(_ context.Context, id string) error {
	defer b.acquire()()
	delete(b.m.state.books, id)
	return nil
}

func (b memBooks) Search(_ context.Context, title, author, category string) ([]models.Book, error) {
	defer b.acquire()()
	matches := func(field, filter string) bool {
		return filter == "" || strings.Contains(strings.ToLower(field), strings.ToLower(filter))
	}
	var out []models.Book
	for _, bk := range b.m.state.books {
		if matches(bk.Title, title) && matches(bk.Author, author) && matches(bk.Category, category) {
			out = append(out, bk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b memBooks) GetBorrowedByMember(_ context.Context, memberID string) ([]models.Book, error) {
	defer b.acquire()()
	var out []models.Book
	for _, t := range b.m.state.transactions {
		if t.MemberID == memberID && t.ReturnedAt == nil {
			if bk, ok := b.m.state.books[t.BookID]; ok {
				out = append(out, bk)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memMembers struct {
	m    *MemoryStore
	lock bool
}

func (s memMembers) acquire() func() {
	if !s.lock {
		return func() {}
	}
	s.m.mu.Lock()
	return s.m.mu.Unlock
}

func (s memMembers) GetAll(context.Context) ([]models.Member, error) {
	defer s.acquire()()
	out := make([]models.Member, 0, len(s.m.state.members))
	for _, mb := range s.m.state.members {
		out = append(out, mb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memMembers) GetByID(_ context.Context, id string) (*models.Member, error) {
	defer s.acquire()()
	mb, ok := s.m.state.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &mb, nil
}

func (s memMembers) Add(_ context.Context, member *models.Member) error {
	defer s.acquire()()
	s.m.state.members[member.ID] = *member
	return nil
}

func (s memMembers) Update(_ context.Context, member *models.Member) error {
	defer s.acquire()()
	if _, ok := s.m.state.members[member.ID]; !ok {
		return nil
	}
	s.m.state.members[member.ID] = *member
	return nil
}

func (s memMembers) Delete(_ context.Context, id string) error {
	defer s.acquire()()
	delete(s.m.state.members, id)
	return nil
}

type memTransactions struct {
	m    *MemoryStore
	lock bool
}

func (s memTransactions) acquire() func() {
	if !s.lock {
		return func() {}
	}
	s.m.mu.Lock()
	return s.m.mu.Unlock
}

func (s memTransactions) GetAll(context.Context) ([]models.Transaction, error) {
	defer s.acquire()()
	out := make([]models.Transaction, 0, len(s.m.state.transactions))
	for _, t := range s.m.state.transactions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowedAt.Before(out[j].BorrowedAt) })
	return out, nil
}

func (s memTransactions) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	defer s.acquire()()
	t, ok := s.m.state.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s memTransactions) Add(_ context.Context, txn *models.Transaction) error {
	defer s.acquire()()
	s.m.state.transactions[txn.ID] = *txn
	return nil
}

func (s memTransactions) Update(_ context.Context, txn *models.Transaction) error {
	defer s.acquire()()
	if _, ok := s.m.state.transactions[txn.ID]; !ok {
		return nil
	}
	s.m.state.transactions[txn.ID] = *txn
	return nil
}

func (s memTransactions) FindOpen(_ context.Context, bookID, memberID string) (*models.Transaction, error) {
	defer s.acquire()()
	for _, t := range s.m.state.transactions {
		if t.BookID == bookID && t.MemberID == memberID && t.ReturnedAt == nil {
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (s memTransactions) ListOverdue(_ context.Context, now time.Time) ([]models.Transaction, error) {
	defer s.acquire()()
	var out []models.Transaction
	for _, t := range s.m.state.transactions {
		if t.ReturnedAt == nil && t.DueAt.Before(now) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowedAt.Before(out[j].BorrowedAt) })
	return out, nil
}
