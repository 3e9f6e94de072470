package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	Reader
}

var _ ITransactionWriter = (*Writer)(nil)

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	var recurrencePattern *string
	if create.RecurrencePattern != nil {
		p := string(*create.RecurrencePattern)
		recurrencePattern = &p
	}

	query := psql.Insert(
		im.Into(tableName,
			"user_id", "account_id", "amount", "transaction_type", "category",
			"subcategory_id", "description", "transaction_date", "is_recurring",
			"recurrence_pattern", "status",
		),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.AccountID),
			psql.Arg(create.Amount),
			psql.Arg(string(create.Type)),
			psql.Arg(create.Category),
			psql.Arg(create.SubcategoryID),
			psql.Arg(create.Description),
			psql.Arg(create.TransactionDate),
			psql.Arg(create.IsRecurring),
			psql.Arg(recurrencePattern),
			psql.Arg(string(create.Status)),
		),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, w.exec, query, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
