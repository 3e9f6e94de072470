package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Writer runs account statements inside an open database transaction.
type Writer struct {
	Reader
}

var _ IAccountWriter = (*Writer)(nil)

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate locks the account row until the transaction ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return findOne(ctx, w.exec,
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
}

func (w *Writer) Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into(tableName, "user_id", "name", "type", "current_balance", "currency", "is_active"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Name),
			psql.Arg(string(create.Type)),
			psql.Arg(create.CurrentBalance),
			psql.Arg(create.Currency),
			psql.Arg(create.IsActive),
		),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, w.exec, query, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("current_balance").ToArg(balance),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	result, err := bob.Exec(ctx, w.exec, query)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
