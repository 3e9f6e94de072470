package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

type CreateAccount struct {
	UserID          string
	Name            string
	Type            account.AccountType
	StartingBalance decimal.Decimal
	Currency        string
	IsActive        bool

	// CreatedID is set by Perform.
	CreatedID uuid.UUID
}

var _ IAction = (*CreateAccount)(nil)

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Account.Insert(ctx, &account.AccountCreate{
		UserID:         c.UserID,
		Name:           c.Name,
		Type:           c.Type,
		CurrentBalance: c.StartingBalance,
		Currency:       c.Currency,
		IsActive:       c.IsActive,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
