package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lenddesk/inventory-service/internal/errs"
	"github.com/lenddesk/inventory-service/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	debitQuery  = `update items set quantity = quantity - $2 where id = $1 and quantity >= $2`
	creditQuery = `update items set quantity = quantity + $2 where id = $1`
	// applies a signed delta, refusing to take quantity below zero
	deltaQuery = `update items set quantity = quantity + $2 where id = $1 and quantity + $2 >= 0`

	itemExistsQuery = `select exists(select 1 from items where id = $1)`
)

var borrowColumns = []string{
	"id", "record_uid", "borrower_name", "item_id",
	"borrowed_date", "return_date", "quantity", "status",
}

type borrowRow struct {
	model.BorrowRecord
	ItemName        sql.NullString `db:"item_name"`
	ItemDescription sql.NullString `db:"item_description"`
	ItemQuantity    sql.NullInt64  `db:"item_quantity"`
}

func (row borrowRow) toRecord() model.BorrowRecord {
	rec := row.BorrowRecord
	if rec.ItemID != nil && row.ItemName.Valid {
		rec.Item = &model.Item{
			ID:          *rec.ItemID,
			Name:        row.ItemName.String,
			Description: row.ItemDescription.String,
			Quantity:    int(row.ItemQuantity.Int64),
		}
	}
	return rec
}

func (r *repository) ListBorrows(ctx context.Context, status model.Status) ([]model.BorrowRecord, error) {
	q := qb.Select(
		"b.id", "b.record_uid", "b.borrower_name", "b.item_id",
		"b.borrowed_date", "b.return_date", "b.quantity", "b.status",
		"i.name as item_name", "i.description as item_description", "i.quantity as item_quantity").
		From(borrowRecordsTableName + " b").
		LeftJoin(itemsTableName + " i on i.id = b.item_id").
		OrderBy("b.id")

	if status != "" {
		q = q.Where(sq.Eq{"b.status": status})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []borrowRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	records := make([]model.BorrowRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// CreateBorrow debits the item and inserts the record in one
// transaction. The conditional debit is the §5-style guard: it fails
// the whole operation instead of ever taking quantity negative.
func (r *repository) CreateBorrow(ctx context.Context, draft model.BorrowDraft) (model.BorrowRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	if err := debitItem(ctx, tx, draft.ItemID, draft.Quantity); err != nil {
		return model.BorrowRecord{}, err
	}

	query, args, err := qb.Insert(borrowRecordsTableName).
		Columns("record_uid", "borrower_name", "item_id", "borrowed_date", "quantity", "status").
		Values(uuid.New(), draft.BorrowerName, draft.ItemID, draft.BorrowedDate, draft.Quantity, model.StatusPending).
		Suffix("returning " + columnList()).
		ToSql()
	if err != nil {
		return model.BorrowRecord{}, err
	}

	var rec model.BorrowRecord
	if err := tx.GetContext(ctx, &rec, query, args...); err != nil {
		r.log.Error("CreateBorrow", zap.String("q", query), zap.Any("args", args))
		return model.BorrowRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.BorrowRecord{}, err
	}
	return rec, nil
}

// UpdateBorrow re-applies the inventory debit as a delta against the
// original record: restore the old quantity, then debit the new one,
// possibly against a different item. Only pending records may change.
func (r *repository) UpdateBorrow(ctx context.Context, id int, draft model.BorrowDraft) (model.BorrowRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	var orig model.BorrowRecord
	lockQuery := `select id, record_uid, borrower_name, item_id, borrowed_date, return_date, quantity, status
		from borrow_records where id = $1 for update`
	if err := tx.GetContext(ctx, &orig, lockQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BorrowRecord{}, errs.ErrNotFound
		}
		return model.BorrowRecord{}, err
	}
	if orig.Status != model.StatusPending {
		return model.BorrowRecord{}, errs.ErrInvalidTransition
	}

	switch {
	case orig.ItemID != nil && *orig.ItemID == draft.ItemID:
		res, err := tx.ExecContext(ctx, deltaQuery, draft.ItemID, orig.Quantity-draft.Quantity)
		if err != nil {
			return model.BorrowRecord{}, err
		}
		if n, err := res.RowsAffected(); err != nil {
			return model.BorrowRecord{}, err
		} else if n == 0 {
			return model.BorrowRecord{}, errs.ErrInsufficientStock
		}
	default:
		if orig.ItemID != nil {
			if _, err := tx.ExecContext(ctx, creditQuery, *orig.ItemID, orig.Quantity); err != nil {
				return model.BorrowRecord{}, err
			}
		}
		if err := debitItem(ctx, tx, draft.ItemID, draft.Quantity); err != nil {
			return model.BorrowRecord{}, err
		}
	}

	query, args, err := qb.Update(borrowRecordsTableName).
		Set("borrower_name", draft.BorrowerName).
		Set("item_id", draft.ItemID).
		Set("borrowed_date", draft.BorrowedDate).
		Set("quantity", draft.Quantity).
		Where(sq.Eq{"id": id}).
		Suffix("returning " + columnList()).
		ToSql()
	if err != nil {
		return model.BorrowRecord{}, err
	}

	var rec model.BorrowRecord
	if err := tx.GetContext(ctx, &rec, query, args...); err != nil {
		r.log.Error("UpdateBorrow", zap.String("q", query), zap.Any("args", args))
		return model.BorrowRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.BorrowRecord{}, err
	}
	return rec, nil
}

func (r *repository) ReturnBorrow(ctx context.Context, id int, returnDate model.Date) (model.BorrowRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	q := `update borrow_records
		set status = $2, return_date = $3
		where id = $1 and status = $4
		returning ` + columnList()

	var rec model.BorrowRecord
	if err := tx.GetContext(ctx, &rec, q, id, model.StatusReturned, returnDate, model.StatusPending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.GetContext(ctx, &exists,
				`select exists(select 1 from borrow_records where id = $1)`, id); err != nil {
				return model.BorrowRecord{}, err
			}
			if exists {
				return model.BorrowRecord{}, errs.ErrInvalidTransition
			}
			return model.BorrowRecord{}, errs.ErrNotFound
		}
		return model.BorrowRecord{}, err
	}

	if rec.ItemID != nil {
		if _, err := tx.ExecContext(ctx, creditQuery, *rec.ItemID, rec.Quantity); err != nil {
			return model.BorrowRecord{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.BorrowRecord{}, err
	}
	return rec, nil
}

// DeleteBorrow removes the record in any state. Inventory is left
// untouched, matching the write-off behavior the product observed.
func (r *repository) DeleteBorrow(ctx context.Context, id int) (model.BorrowRecord, error) {
	query, args, err := qb.Delete(borrowRecordsTableName).
		Where(sq.Eq{"id": id}).
		Suffix("returning " + columnList()).
		ToSql()
	if err != nil {
		return model.BorrowRecord{}, err
	}

	var rec model.BorrowRecord
	if err := r.db.GetContext(ctx, &rec, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BorrowRecord{}, errs.ErrNotFound
		}
		return model.BorrowRecord{}, err
	}
	return rec, nil
}

func debitItem(ctx context.Context, tx *sqlx.Tx, itemID, quantity int) error {
	res, err := tx.ExecContext(ctx, debitQuery, itemID, quantity)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, itemExistsQuery, itemID); err != nil {
			return err
		}
		if !exists {
			return errs.ErrNotFound
		}
		return errs.ErrInsufficientStock
	}
	return nil
}

func columnList() string {
	cols := borrowColumns[0]
	for _, c := range borrowColumns[1:] {
		cols += ", " + c
	}
	return cols
}
