package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

type CreateTransaction struct {
	UserID            string
	AccountID         uuid.UUID
	Amount            decimal.Decimal
	Type              transaction.Type
	Category          string
	SubcategoryID     *string
	Description       string
	TransactionDate   time.Time
	IsRecurring       bool
	RecurrencePattern *transaction.RecurrencePattern

	// Set by Perform.
	CreatedID  uuid.UUID
	NewBalance decimal.Decimal
}

var _ IAction = (*CreateTransaction)(nil)

// Perform locks the account, applies the amount to its balance and records the
// transaction. A negative result aborts before anything is written.
func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Account.FindByIDForUpdate(ctx, t.AccountID)
	if errors.Is(err, account.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}
	if acc.UserID != t.UserID {
		return ErrAccountNotFound
	}

	newBalance := t.Type.Apply(acc.CurrentBalance, t.Amount)
	if newBalance.IsNegative() {
		return fmt.Errorf("%w: balance %s, %s %s", ErrInsufficientFunds, acc.CurrentBalance, t.Type, t.Amount)
	}

	err = writer.Account.UpdateBalance(ctx, t.AccountID, newBalance)
	if err != nil {
		return err
	}

	id, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		UserID:            t.UserID,
		AccountID:         t.AccountID,
		Amount:            t.Amount,
		Type:              t.Type,
		Category:          t.Category,
		SubcategoryID:     t.SubcategoryID,
		Description:       t.Description,
		TransactionDate:   t.TransactionDate,
		IsRecurring:       t.IsRecurring,
		RecurrencePattern: t.RecurrencePattern,
		Status:            transaction.StatusActive,
	})
	if err != nil {
		return err
	}

	t.CreatedID = id
	t.NewBalance = newBalance
	return nil
}
