package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Tx is the commit/abort half of a unit of work.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer is an open unit of work. Reads through it see its own writes, and
// nothing is visible to other readers until Commit.
type Writer struct {
	tx          Tx
	Account     account.IAccountWriter
	Transaction transaction.ITransactionWriter
}

func NewWriter(tx Tx, accounts account.IAccountWriter, transactions transaction.ITransactionWriter) *Writer {
	return &Writer{
		tx:          tx,
		Account:     accounts,
		Transaction: transactions,
	}
}

// newSQLWriter builds a Writer whose tables run against a bob transaction.
func newSQLWriter(tx bob.Tx) *Writer {
	return NewWriter(pgTx{tx: tx}, account.NewWriter(tx), transaction.NewWriter(tx))
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}

type pgTx struct {
	tx bob.Tx
}

func (p pgTx) Commit(ctx context.Context) error {
	return p.tx.Commit(ctx)
}

func (p pgTx) Rollback(ctx context.Context) error {
	return p.tx.Rollback(ctx)
}
