package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/events"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

// AccountService handles account business logic.
type AccountService struct {
	operator  Processor
	accounts  account.IAccountReader
	publisher events.Publisher
	log       *logrus.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(op Processor, accounts account.IAccountReader, publisher events.Publisher, log *logrus.Logger) *AccountService {
	return &AccountService{
		operator:  op,
		accounts:  accounts,
		publisher: publisher,
		log:       log,
	}
}

// CreateAccount creates a new account and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, acc Account) (uuid.UUID, error) {
	action := &actions.CreateAccount{
		UserID:          acc.UserID,
		Name:            acc.Name,
		Type:            acc.Type,
		StartingBalance: acc.CurrentBalance,
		Currency:        acc.Currency,
		IsActive:        acc.IsActive,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, fmt.Errorf("create account: %w", err)
	}

	publish(ctx, s.publisher, s.log, events.AccountCreated, accountCreatedEvent{
		AccountID:      action.CreatedID,
		UserID:         acc.UserID,
		Type:           acc.Type,
		CurrentBalance: acc.CurrentBalance,
		Currency:       acc.Currency,
	})

	return action.CreatedID, nil
}

// GetAccount retrieves an account by ID. A missing account yields ErrAccountNotFound.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.accounts.FindByID(ctx, id)
	if errors.Is(err, account.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrAccountNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	acc := accountFromStorage(row)
	return &acc, nil
}

// ListAccounts returns the accounts owned by userID, or every account when userID is nil.
func (s *AccountService) ListAccounts(ctx context.Context, userID *string) ([]Account, error) {
	rows, err := s.accounts.List(ctx, &account.AccountFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]Account, len(rows))
	for i, row := range rows {
		accounts[i] = accountFromStorage(row)
	}
	return accounts, nil
}
