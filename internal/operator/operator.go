package operator

import (
	"context"

	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
)

// WriterOpener opens units of work. *storage.Storage satisfies it.
type WriterOpener interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator runs actions inside units of work on the caller's goroutine.
type Operator struct {
	storage WriterOpener
}

func NewOperator(s WriterOpener) *Operator {
	return &Operator{
		storage: s,
	}
}

// Process commits the action's writes, or rolls all of them back if Perform
// fails or panics.
func (o *Operator) Process(ctx context.Context, action actions.IAction) error {
	writer, err := o.storage.Write(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = writer.Rollback(ctx)
		}
	}()

	err = action.Perform(ctx, writer)
	if err != nil {
		return err
	}

	err = writer.Commit(ctx)
	if err != nil {
		return err
	}
	committed = true
	return nil
}
