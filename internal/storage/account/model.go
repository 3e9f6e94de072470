package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "accounts"

// ErrNotFound is returned when no account matches the requested ID.
var ErrNotFound = errors.New("account not found")

// Account represents an account record.
type Account struct {
	ID             uuid.UUID       `db:"id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Type           AccountType     `db:"type"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	Currency       string          `db:"currency"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// AccountFilter specifies filters for listing accounts. A nil UserID lists every user's accounts.
type AccountFilter struct {
	UserID *string
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID         string
	Name           string
	Type           AccountType
	CurrentBalance decimal.Decimal
	Currency       string
	IsActive       bool
}

// IAccountReader defines the read side of account storage.
type IAccountReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
}

// IAccountWriter defines account operations available inside a unit of work.
// This abstraction allows swapping the implementation (Postgres, memory) without changing callers.
type IAccountWriter interface {
	IAccountReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeCash       AccountType = "cash"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeOther      AccountType = "other"
)

// ParseAccountType accepts the canonical names plus the spellings the web form
// sends ("Credit Card", "credit-card").
func ParseAccountType(s string) (AccountType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch t := AccountType(normalized); t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard, AccountTypeCash,
		AccountTypeInvestment, AccountTypeLoan, AccountTypeOther:
		return t, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}
