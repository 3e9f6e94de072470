package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"id", "user_id", "account_id", "amount", "transaction_type", "category",
	"subcategory_id", "description", "transaction_date", "is_recurring",
	"recurrence_pattern", "status", "created_at", "updated_at",
}

type Reader struct {
	exec bob.Executor
}

var _ ITransactionReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns transactions matching the filter, newest first. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}
	if filter != nil {
		var where []bob.Expression
		if filter.UserID != nil {
			where = append(where, psql.Quote("user_id").EQ(psql.Arg(*filter.UserID)))
		}
		if filter.AccountID != nil {
			where = append(where, psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID)))
		}
		if filter.Status != nil {
			where = append(where, psql.Quote("status").EQ(psql.Arg(string(*filter.Status))))
		}
		if len(where) > 0 {
			queryMods = append(queryMods, sm.Where(psql.And(where...)))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
