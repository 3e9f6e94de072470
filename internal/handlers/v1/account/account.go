package account

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID             string `json:"id" doc:"Account UUID"`
	UserID         string `json:"user_id" doc:"Owning user"`
	Name           string `json:"name" doc:"Account name"`
	Type           string `json:"type" doc:"checking, savings, credit_card, cash, investment, loan or other"`
	CurrentBalance string `json:"current_balance" doc:"Decimal balance"`
	Currency       string `json:"currency" doc:"ISO 4217 currency code"`
	IsActive       bool   `json:"is_active" doc:"Whether the account is active"`
	CreatedAt      string `json:"created_at" doc:"RFC3339 creation time"`
	UpdatedAt      string `json:"updated_at" doc:"RFC3339 last update time"`
}

func accountFromService(a service.Account) Account {
	return Account{
		ID:             a.ID.String(),
		UserID:         a.UserID,
		Name:           a.Name,
		Type:           string(a.Type),
		CurrentBalance: a.CurrentBalance.String(),
		Currency:       a.Currency,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}
