package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/events"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
)

var (
	ErrAccountNotFound   = actions.ErrAccountNotFound
	ErrInsufficientFunds = actions.ErrInsufficientFunds
)

// Processor runs an action inside a unit of work. *operator.Operator satisfies it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, publisher events.Publisher, log *logrus.Logger) *Service {
	op := operator.NewOperator(store)
	return &Service{
		Transaction: NewTransactionService(op, store.Transactions, publisher, log),
		Account:     NewAccountService(op, store.Accounts, publisher, log),
	}
}

// publish is best effort; the unit of work has already committed.
func publish(ctx context.Context, publisher events.Publisher, log *logrus.Logger, eventType string, data any) {
	if err := publisher.Publish(ctx, eventType, data); err != nil {
		log.WithError(err).WithField("eventType", eventType).Warn("Service.publish.failed")
	}
}
