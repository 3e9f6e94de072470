// Package memory is an in-process store used by the memory storage driver and by tests.
// It keeps committed records in maps guarded by a RWMutex and admits one write unit
// at a time, so units are serializable.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// ErrUnitClosed is returned when a unit is used after Commit or Rollback.
var ErrUnitClosed = errors.New("memory: unit already closed")

type accountRecord struct {
	account.Account
	seq uint64
}

type transactionRecord struct {
	transaction.Transaction
	seq uint64
}

type Store struct {
	mu           sync.RWMutex
	accounts     map[uuid.UUID]*accountRecord
	transactions map[uuid.UUID]*transactionRecord
	seq          uint64

	// writeSlot admits a single open unit.
	writeSlot chan struct{}
	now       func() time.Time
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		accounts:     make(map[uuid.UUID]*accountRecord),
		transactions: make(map[uuid.UUID]*transactionRecord),
		writeSlot:    make(chan struct{}, 1),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Accounts() *AccountReader {
	return &AccountReader{store: s}
}

func (s *Store) Transactions() *TransactionReader {
	return &TransactionReader{store: s}
}

// Begin opens a write unit, waiting for any other open unit to finish.
func (s *Store) Begin(ctx context.Context) (*Unit, error) {
	select {
	case s.writeSlot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &Unit{
		store:        s,
		accounts:     make(map[uuid.UUID]*accountRecord),
		transactions: make(map[uuid.UUID]*transactionRecord),
	}, nil
}

func (s *Store) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func (s *Store) committedAccount(id uuid.UUID) (*accountRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	c := *rec
	return &c, true
}

func (s *Store) committedTransaction(id uuid.UUID) (*transactionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.transactions[id]
	if !ok {
		return nil, false
	}
	c := *rec
	return &c, true
}

func (s *Store) snapshotAccounts() map[uuid.UUID]*accountRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]*accountRecord, len(s.accounts))
	for id, rec := range s.accounts {
		c := *rec
		out[id] = &c
	}
	return out
}

func (s *Store) snapshotTransactions() map[uuid.UUID]*transactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]*transactionRecord, len(s.transactions))
	for id, rec := range s.transactions {
		c := *rec
		out[id] = &c
	}
	return out
}

func listAccounts(records map[uuid.UUID]*accountRecord, filter *account.AccountFilter) []*account.Account {
	result := make([]*account.Account, 0, len(records))
	for _, rec := range records {
		if filter != nil && filter.UserID != nil && rec.UserID != *filter.UserID {
			continue
		}
		a := rec.Account
		result = append(result, &a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result
}

func listTransactions(records map[uuid.UUID]*transactionRecord, filter *transaction.TransactionFilter) []*transaction.Transaction {
	matched := make([]*transactionRecord, 0, len(records))
	for _, rec := range records {
		if filter != nil {
			if filter.UserID != nil && rec.UserID != *filter.UserID {
				continue
			}
			if filter.AccountID != nil && rec.AccountID != *filter.AccountID {
				continue
			}
			if filter.Status != nil && rec.Status != *filter.Status {
				continue
			}
		}
		matched = append(matched, rec)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	result := make([]*transaction.Transaction, len(matched))
	for i, rec := range matched {
		result[i] = cloneTransaction(&rec.Transaction)
	}
	return result
}

func cloneTransaction(t *transaction.Transaction) *transaction.Transaction {
	c := *t
	if t.SubcategoryID != nil {
		v := *t.SubcategoryID
		c.SubcategoryID = &v
	}
	if t.RecurrencePattern != nil {
		v := *t.RecurrencePattern
		c.RecurrencePattern = &v
	}
	return &c
}

type AccountReader struct {
	store *Store
}

var _ account.IAccountReader = (*AccountReader)(nil)

func (r *AccountReader) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	rec, ok := r.store.committedAccount(id)
	if !ok {
		return nil, account.ErrNotFound
	}
	return &rec.Account, nil
}

func (r *AccountReader) List(_ context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	return listAccounts(r.store.snapshotAccounts(), filter), nil
}

type TransactionReader struct {
	store *Store
}

var _ transaction.ITransactionReader = (*TransactionReader)(nil)

func (r *TransactionReader) FindByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	rec, ok := r.store.committedTransaction(id)
	if !ok {
		return nil, transaction.ErrNotFound
	}
	return cloneTransaction(&rec.Transaction), nil
}

func (r *TransactionReader) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	return listTransactions(r.store.snapshotTransactions(), filter), nil
}
