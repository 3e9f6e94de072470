package actions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/memory"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// perform runs the action in its own unit, committing only on success.
func perform(ctx context.Context, s *storage.Storage, action IAction) error {
	w, err := s.Write(ctx)
	if err != nil {
		return err
	}
	if err := action.Perform(ctx, w); err != nil {
		_ = w.Rollback(ctx)
		return err
	}
	return w.Commit(ctx)
}

func seedAccount(t *testing.T, s *storage.Storage, userID, balance string) uuid.UUID {
	t.Helper()
	create := &CreateAccount{
		UserID:          userID,
		Name:            "Checking",
		Type:            account.AccountTypeChecking,
		StartingBalance: decimal.RequireFromString(balance),
		Currency:        "USD",
		IsActive:        true,
	}
	require.NoError(t, perform(context.Background(), s, create))
	return create.CreatedID
}

func expense(userID string, accountID uuid.UUID, amount string) *CreateTransaction {
	return &CreateTransaction{
		UserID:          userID,
		AccountID:       accountID,
		Amount:          decimal.RequireFromString(amount),
		Type:            transaction.TypeExpense,
		Category:        "Food",
		Description:     "lunch",
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func balanceOf(t *testing.T, s *storage.Storage, id uuid.UUID) decimal.Decimal {
	t.Helper()
	acc, err := s.Accounts.FindByID(context.Background(), id)
	require.NoError(t, err)
	return acc.CurrentBalance
}

// -- CreateAccount tests --

func TestCreateAccount_SetsCreatedID(t *testing.T) {
	s := storage.NewMemoryStorage(memory.New())
	id := seedAccount(t, s, "u1", "100.50")

	assert.NotEqual(t, uuid.Nil, id)
	assert.True(t, balanceOf(t, s, id).Equal(decimal.RequireFromString("100.50")))
}

// -- CreateTransaction tests --

func TestCreateTransaction_ExpenseReducesBalance(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStorage(memory.New())
	accountID := seedAccount(t, s, "u1", "100")

	action := expense("u1", accountID, "30")
	require.NoError(t, perform(ctx, s, action))

	assert.True(t, action.NewBalance.Equal(decimal.NewFromInt(70)))
	assert.True(t, balanceOf(t, s, accountID).Equal(decimal.NewFromInt(70)))

	saved, err := s.Transactions.FindByID(ctx, action.CreatedID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusActive, saved.Status)
	assert.Equal(t, transaction.TypeExpense, saved.Type)
	assert.False(t, saved.IsRecurring)
	assert.Nil(t, saved.RecurrencePattern)
}

func TestCreateTransaction_IncomeIncreasesBalance(t *testing.T) {
	s := storage.NewMemoryStorage(memory.New())
	accountID := seedAccount(t, s, "u1", "0")

	action := expense("u1", accountID, "12.34")
	action.Type = transaction.TypeIncome
	require.NoError(t, perform(context.Background(), s, action))

	assert.True(t, balanceOf(t, s, accountID).Equal(decimal.RequireFromString("12.34")))
}

func TestCreateTransaction_ExactBalanceAllowed(t *testing.T) {
	s := storage.NewMemoryStorage(memory.New())
	accountID := seedAccount(t, s, "u1", "70")

	require.NoError(t, perform(context.Background(), s, expense("u1", accountID, "70")))
	assert.True(t, balanceOf(t, s, accountID).IsZero())
}

func TestCreateTransaction_InsufficientFundsWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStorage(memory.New())
	accountID := seedAccount(t, s, "u1", "70")

	err := perform(ctx, s, expense("u1", accountID, "200"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.True(t, balanceOf(t, s, accountID).Equal(decimal.NewFromInt(70)))
	txs, err := s.Transactions.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCreateTransaction_AccountNotFound(t *testing.T) {
	s := storage.NewMemoryStorage(memory.New())

	err := perform(context.Background(), s, expense("u1", uuid.Must(uuid.NewV4()), "1"))
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCreateTransaction_OtherUsersAccountNotFound(t *testing.T) {
	s := storage.NewMemoryStorage(memory.New())
	accountID := seedAccount(t, s, "u2", "100")

	err := perform(context.Background(), s, expense("u1", accountID, "1"))
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.True(t, balanceOf(t, s, accountID).Equal(decimal.NewFromInt(100)))
}

func TestCreateTransaction_IdenticalCallsApplyTwice(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStorage(memory.New())
	accountID := seedAccount(t, s, "u1", "100")

	first := expense("u1", accountID, "10")
	second := expense("u1", accountID, "10")
	require.NoError(t, perform(ctx, s, first))
	require.NoError(t, perform(ctx, s, second))

	assert.NotEqual(t, first.CreatedID, second.CreatedID)
	assert.True(t, balanceOf(t, s, accountID).Equal(decimal.NewFromInt(80)))
}

func TestCreateTransaction_ConcurrentWithdrawalsSerialize(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStorage(memory.New())
	accountID := seedAccount(t, s, "u1", "100")

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := perform(ctx, s, expense("u1", accountID, "30"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			assert.ErrorIs(t, err, ErrInsufficientFunds)
			rejected++
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, workers-3, rejected)
	assert.True(t, balanceOf(t, s, accountID).Equal(decimal.NewFromInt(10)))

	txs, err := s.Transactions.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}
