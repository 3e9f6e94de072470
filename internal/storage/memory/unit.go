package memory

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Unit stages writes until Commit. Reads through a unit see its own staged writes.
type Unit struct {
	store *Store

	mu           sync.Mutex
	closed       bool
	accounts     map[uuid.UUID]*accountRecord
	transactions map[uuid.UUID]*transactionRecord
}

func (u *Unit) Accounts() account.IAccountWriter {
	return &unitAccounts{unit: u}
}

func (u *Unit) Transactions() transaction.ITransactionWriter {
	return &unitTransactions{unit: u}
}

func (u *Unit) Commit(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return ErrUnitClosed
	}

	u.store.mu.Lock()
	for id, rec := range u.accounts {
		u.store.accounts[id] = rec
	}
	for id, rec := range u.transactions {
		u.store.transactions[id] = rec
	}
	u.store.mu.Unlock()

	u.release()
	return nil
}

func (u *Unit) Rollback(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return ErrUnitClosed
	}
	u.release()
	return nil
}

// release must be called with u.mu held.
func (u *Unit) release() {
	u.closed = true
	u.accounts = nil
	u.transactions = nil
	<-u.store.writeSlot
}

func (u *Unit) account(id uuid.UUID) (*accountRecord, bool) {
	if rec, ok := u.accounts[id]; ok {
		c := *rec
		return &c, true
	}
	return u.store.committedAccount(id)
}

type unitAccounts struct {
	unit *Unit
}

var _ account.IAccountWriter = (*unitAccounts)(nil)

func (a *unitAccounts) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a.unit.mu.Lock()
	defer a.unit.mu.Unlock()
	if a.unit.closed {
		return nil, ErrUnitClosed
	}

	rec, ok := a.unit.account(id)
	if !ok {
		return nil, account.ErrNotFound
	}
	return &rec.Account, nil
}

// FindByIDForUpdate is FindByID; the unit already holds the store's only write slot.
func (a *unitAccounts) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return a.FindByID(ctx, id)
}

func (a *unitAccounts) List(_ context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	a.unit.mu.Lock()
	defer a.unit.mu.Unlock()
	if a.unit.closed {
		return nil, ErrUnitClosed
	}

	records := a.unit.store.snapshotAccounts()
	for id, rec := range a.unit.accounts {
		records[id] = rec
	}
	return listAccounts(records, filter), nil
}

func (a *unitAccounts) Insert(_ context.Context, create *account.AccountCreate) (uuid.UUID, error) {
	a.unit.mu.Lock()
	defer a.unit.mu.Unlock()
	if a.unit.closed {
		return uuid.Nil, ErrUnitClosed
	}

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	now := a.unit.store.now()
	a.unit.accounts[id] = &accountRecord{
		Account: account.Account{
			ID:             id,
			UserID:         create.UserID,
			Name:           create.Name,
			Type:           create.Type,
			CurrentBalance: create.CurrentBalance,
			Currency:       create.Currency,
			IsActive:       create.IsActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		seq: a.unit.store.nextSeq(),
	}
	return id, nil
}

func (a *unitAccounts) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	a.unit.mu.Lock()
	defer a.unit.mu.Unlock()
	if a.unit.closed {
		return ErrUnitClosed
	}

	rec, ok := a.unit.account(id)
	if !ok {
		return account.ErrNotFound
	}
	rec.CurrentBalance = balance
	rec.UpdatedAt = a.unit.store.now()
	a.unit.accounts[id] = rec
	return nil
}

type unitTransactions struct {
	unit *Unit
}

var _ transaction.ITransactionWriter = (*unitTransactions)(nil)

func (t *unitTransactions) FindByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	t.unit.mu.Lock()
	defer t.unit.mu.Unlock()
	if t.unit.closed {
		return nil, ErrUnitClosed
	}

	if rec, ok := t.unit.transactions[id]; ok {
		return cloneTransaction(&rec.Transaction), nil
	}
	rec, ok := t.unit.store.committedTransaction(id)
	if !ok {
		return nil, transaction.ErrNotFound
	}
	return cloneTransaction(&rec.Transaction), nil
}

func (t *unitTransactions) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	t.unit.mu.Lock()
	defer t.unit.mu.Unlock()
	if t.unit.closed {
		return nil, ErrUnitClosed
	}

	records := t.unit.store.snapshotTransactions()
	for id, rec := range t.unit.transactions {
		records[id] = rec
	}
	return listTransactions(records, filter), nil
}

func (t *unitTransactions) Insert(_ context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	t.unit.mu.Lock()
	defer t.unit.mu.Unlock()
	if t.unit.closed {
		return uuid.Nil, ErrUnitClosed
	}

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	now := t.unit.store.now()
	rec := &transactionRecord{
		Transaction: *cloneTransaction(&transaction.Transaction{
			ID:                id,
			UserID:            create.UserID,
			AccountID:         create.AccountID,
			Amount:            create.Amount,
			Type:              create.Type,
			Category:          create.Category,
			SubcategoryID:     create.SubcategoryID,
			Description:       create.Description,
			TransactionDate:   create.TransactionDate,
			IsRecurring:       create.IsRecurring,
			RecurrencePattern: create.RecurrencePattern,
			Status:            create.Status,
			CreatedAt:         now,
			UpdatedAt:         now,
		}),
		seq: t.unit.store.nextSeq(),
	}
	t.unit.transactions[id] = rec
	return id, nil
}
