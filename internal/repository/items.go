package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/lenddesk/inventory-service/internal/errs"
	"github.com/lenddesk/inventory-service/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (r *repository) ListItems(ctx context.Context) ([]model.Item, error) {
	query, args, err := qb.Select("id", "name", "description", "quantity").
		From(itemsTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CreateItem(ctx context.Context, draft model.ItemDraft) (model.Item, error) {
	query, args, err := qb.Insert(itemsTableName).
		Columns("name", "description", "quantity").
		Values(draft.Name, draft.Description, draft.Quantity).
		Suffix("returning id, name, description, quantity").
		ToSql()
	if err != nil {
		return model.Item{}, err
	}

	var item model.Item
	if err := r.db.GetContext(ctx, &item, query, args...); err != nil {
		r.log.Error("CreateItem", zap.String("q", query), zap.Any("args", args))
		return model.Item{}, err
	}
	return item, nil
}

func (r *repository) UpdateItem(ctx context.Context, id int, draft model.ItemDraft) (model.Item, error) {
	query, args, err := qb.Update(itemsTableName).
		Set("name", draft.Name).
		Set("description", draft.Description).
		Set("quantity", draft.Quantity).
		Where(sq.Eq{"id": id}).
		Suffix("returning id, name, description, quantity").
		ToSql()
	if err != nil {
		return model.Item{}, err
	}

	var item model.Item
	if err := r.db.GetContext(ctx, &item, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, errs.ErrNotFound
		}
		return model.Item{}, err
	}
	return item, nil
}

// DeleteItem removes the catalog entry. Borrow records referencing it
// survive with a null item_id (fk is on delete set null) and render as
// "Unknown" downstream.
func (r *repository) DeleteItem(ctx context.Context, id int) error {
	query, args, err := qb.Delete(itemsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
