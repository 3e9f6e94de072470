package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "transactions"

// ErrNotFound is returned when no transaction matches the requested ID.
var ErrNotFound = errors.New("transaction not found")

// Type is the direction of a transaction relative to its account.
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

// ParseType accepts expense/income and the older debit/credit names.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "debit":
		return TypeExpense, nil
	case "income", "credit":
		return TypeIncome, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Apply returns balance after a transaction of amount and type t.
func (t Type) Apply(balance, amount decimal.Decimal) decimal.Decimal {
	if t == TypeExpense {
		return balance.Sub(amount)
	}
	return balance.Add(amount)
}

// Status is the lifecycle state of a transaction. Only active transactions count.
type Status string

const (
	StatusActive Status = "active"
	StatusVoided Status = "voided"
)

type RecurrencePattern string

const (
	RecurrenceDaily       RecurrencePattern = "daily"
	RecurrenceWeekly      RecurrencePattern = "weekly"
	RecurrenceFortnightly RecurrencePattern = "fortnightly"
	RecurrenceMonthly     RecurrencePattern = "monthly"
	RecurrenceYearly      RecurrencePattern = "yearly"
)

func ParseRecurrencePattern(s string) (RecurrencePattern, error) {
	switch p := RecurrencePattern(strings.ToLower(strings.TrimSpace(s))); p {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceFortnightly, RecurrenceMonthly, RecurrenceYearly:
		return p, nil
	}
	return "", fmt.Errorf("unknown recurrence pattern %q", s)
}

// Transaction represents a transaction record.
type Transaction struct {
	ID                uuid.UUID          `db:"id"`
	UserID            string             `db:"user_id"`
	AccountID         uuid.UUID          `db:"account_id"`
	Amount            decimal.Decimal    `db:"amount"`
	Type              Type               `db:"transaction_type"`
	Category          string             `db:"category"`
	SubcategoryID     *string            `db:"subcategory_id"`
	Description       string             `db:"description"`
	TransactionDate   time.Time          `db:"transaction_date"`
	IsRecurring       bool               `db:"is_recurring"`
	RecurrencePattern *RecurrencePattern `db:"recurrence_pattern"`
	Status            Status             `db:"status"`
	CreatedAt         time.Time          `db:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID            string
	AccountID         uuid.UUID
	Amount            decimal.Decimal
	Type              Type
	Category          string
	SubcategoryID     *string
	Description       string
	TransactionDate   time.Time
	IsRecurring       bool
	RecurrencePattern *RecurrencePattern
	Status            Status
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	UserID    *string
	AccountID *uuid.UUID
	Status    *Status
}

// ITransactionReader defines the read side of transaction storage.
type ITransactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}

// ITransactionWriter defines transaction operations available inside a unit of work.
type ITransactionWriter interface {
	ITransactionReader
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
}
