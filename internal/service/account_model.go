package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/storage/account"
)

type AccountType = account.AccountType

func ParseAccountType(s string) (AccountType, error) {
	return account.ParseAccountType(s)
}

// Account represents an account in the service layer.
type Account struct {
	ID             uuid.UUID
	UserID         string
	Name           string
	Type           AccountType
	CurrentBalance decimal.Decimal
	Currency       string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type accountCreatedEvent struct {
	AccountID      uuid.UUID       `json:"account_id"`
	UserID         string          `json:"user_id"`
	Type           AccountType     `json:"type"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Currency       string          `json:"currency"`
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:             row.ID,
		UserID:         row.UserID,
		Name:           row.Name,
		Type:           row.Type,
		CurrentBalance: row.CurrentBalance,
		Currency:       row.Currency,
		IsActive:       row.IsActive,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
