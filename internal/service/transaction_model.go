package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

type (
	TransactionType   = transaction.Type
	TransactionStatus = transaction.Status
	RecurrencePattern = transaction.RecurrencePattern
)

// ParseTransactionType accepts expense/income and the debit/credit aliases.
func ParseTransactionType(s string) (TransactionType, error) {
	return transaction.ParseType(s)
}

func ParseRecurrencePattern(s string) (RecurrencePattern, error) {
	return transaction.ParseRecurrencePattern(s)
}

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID                uuid.UUID
	UserID            string
	AccountID         uuid.UUID
	Amount            decimal.Decimal
	Type              TransactionType
	Category          string
	SubcategoryID     *string
	Description       string
	TransactionDate   time.Time
	IsRecurring       bool
	RecurrencePattern *RecurrencePattern
	Status            TransactionStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TransactionQuery selects the active transactions of one user, optionally for one account.
type TransactionQuery struct {
	UserID    string
	AccountID *uuid.UUID
}

type transactionCreatedEvent struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"transaction_type"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:                row.ID,
		UserID:            row.UserID,
		AccountID:         row.AccountID,
		Amount:            row.Amount,
		Type:              row.Type,
		Category:          row.Category,
		SubcategoryID:     row.SubcategoryID,
		Description:       row.Description,
		TransactionDate:   row.TransactionDate,
		IsRecurring:       row.IsRecurring,
		RecurrencePattern: row.RecurrencePattern,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
