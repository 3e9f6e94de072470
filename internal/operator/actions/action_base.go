package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/finance-server/internal/storage"
)

var (
	// ErrAccountNotFound is returned when the target account does not exist or
	// belongs to another user.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientFunds is returned when a transaction would leave the account negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// IAction is a unit of work body. Perform runs inside an open writer; returning
// an error rolls the whole unit back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
