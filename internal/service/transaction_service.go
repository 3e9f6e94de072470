package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/events"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	operator     Processor
	transactions transaction.ITransactionReader
	publisher    events.Publisher
	log          *logrus.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(op Processor, transactions transaction.ITransactionReader, publisher events.Publisher, log *logrus.Logger) *TransactionService {
	return &TransactionService{
		operator:     op,
		transactions: transactions,
		publisher:    publisher,
		log:          log,
	}
}

// CreateTransaction records the transaction and applies it to the account balance
// in one unit of work. It returns ErrAccountNotFound or ErrInsufficientFunds
// (wrapped) when the unit is rejected.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx Transaction) (uuid.UUID, error) {
	action := &actions.CreateTransaction{
		UserID:            tx.UserID,
		AccountID:         tx.AccountID,
		Amount:            tx.Amount,
		Type:              tx.Type,
		Category:          tx.Category,
		SubcategoryID:     tx.SubcategoryID,
		Description:       tx.Description,
		TransactionDate:   tx.TransactionDate,
		IsRecurring:       tx.IsRecurring,
		RecurrencePattern: tx.RecurrencePattern,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, fmt.Errorf("create transaction: %w", err)
	}

	publish(ctx, s.publisher, s.log, events.TransactionCreated, transactionCreatedEvent{
		TransactionID: action.CreatedID,
		AccountID:     tx.AccountID,
		UserID:        tx.UserID,
		Amount:        tx.Amount,
		Type:          tx.Type,
		NewBalance:    action.NewBalance,
	})

	return action.CreatedID, nil
}

// ListTransactions returns active transactions newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, query TransactionQuery) ([]Transaction, error) {
	active := transaction.StatusActive
	rows, err := s.transactions.List(ctx, &transaction.TransactionFilter{
		UserID:    &query.UserID,
		AccountID: query.AccountID,
		Status:    &active,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	transactions := make([]Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = transactionFromStorage(row)
	}
	return transactions, nil
}
