//go:build integration

package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/finance-server/internal/events"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/migrations"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// newPostgresService starts a throwaway Postgres, migrates it and wires a Service on top.
func newPostgresService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("finance"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("testpassword"),
		tcpostgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	result, err := migrations.Up(db, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, uint(0), result.PreMigrationVersion)
	assert.Equal(t, uint(2), result.PostMigrationVersion)
	require.NoError(t, db.Close())

	store, err := storage.NewPostgresStorage(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ping(ctx))

	return NewService(store, events.NopPublisher{}, quietLogger())
}

func createPostgresAccount(t *testing.T, svc *Service, userID, name, balance string) Account {
	t.Helper()
	ctx := context.Background()
	id, err := svc.Account.CreateAccount(ctx, Account{
		UserID:         userID,
		Name:           name,
		Type:           account.AccountTypeChecking,
		CurrentBalance: decimal.RequireFromString(balance),
		Currency:       "USD",
		IsActive:       true,
	})
	require.NoError(t, err)
	acc, err := svc.Account.GetAccount(ctx, id)
	require.NoError(t, err)
	return *acc
}

func postgresExpense(userID string, acc Account, amount string) Transaction {
	return Transaction{
		UserID:          userID,
		AccountID:       acc.ID,
		Amount:          decimal.RequireFromString(amount),
		Type:            transaction.TypeExpense,
		Category:        "Food",
		Description:     "lunch",
		TransactionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPostgres_AccountsAndTransactions(t *testing.T) {
	ctx := context.Background()
	svc := newPostgresService(t)

	savings := createPostgresAccount(t, svc, "u1", "Savings", "250.00")
	checking := createPostgresAccount(t, svc, "u1", "Checking", "100.00")
	createPostgresAccount(t, svc, "u2", "Other", "5.00")

	userID := "u1"
	accounts, err := svc.Account.ListAccounts(ctx, &userID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Checking", accounts[0].Name)
	assert.Equal(t, "Savings", accounts[1].Name)

	all, err := svc.Account.ListAccounts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	firstID, err := svc.Transaction.CreateTransaction(ctx, postgresExpense("u1", checking, "30.25"))
	require.NoError(t, err)
	income := postgresExpense("u1", savings, "10")
	income.Type = transaction.TypeIncome
	secondID, err := svc.Transaction.CreateTransaction(ctx, income)
	require.NoError(t, err)

	_, err = svc.Transaction.CreateTransaction(ctx, postgresExpense("u1", checking, "500"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = svc.Transaction.CreateTransaction(ctx, postgresExpense("u2", checking, "1"))
	assert.ErrorIs(t, err, ErrAccountNotFound)

	got, err := svc.Account.GetAccount(ctx, checking.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.RequireFromString("69.75")), got.CurrentBalance.String())

	got, err = svc.Account.GetAccount(ctx, savings.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.RequireFromString("260")))

	txs, err := svc.Transaction.ListTransactions(ctx, TransactionQuery{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, secondID, txs[0].ID)
	assert.Equal(t, firstID, txs[1].ID)
	assert.Equal(t, transaction.StatusActive, txs[0].Status)

	txs, err = svc.Transaction.ListTransactions(ctx, TransactionQuery{UserID: "u1", AccountID: &checking.ID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, firstID, txs[0].ID)
}

func TestPostgres_ConcurrentWithdrawalsSerialize(t *testing.T) {
	ctx := context.Background()
	svc := newPostgresService(t)
	acc := createPostgresAccount(t, svc, "u1", "Checking", "100")

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Transaction.CreateTransaction(ctx, postgresExpense("u1", acc, "30"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			assert.ErrorIs(t, err, ErrInsufficientFunds)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	got, err := svc.Account.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(10)))

	txs, err := svc.Transaction.ListTransactions(ctx, TransactionQuery{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}
