package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lenddesk/inventory-service/internal/model"
	"go.uber.org/zap"
)

type Repository interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	CreateItem(ctx context.Context, draft model.ItemDraft) (model.Item, error)
	UpdateItem(ctx context.Context, id int, draft model.ItemDraft) (model.Item, error)
	DeleteItem(ctx context.Context, id int) error

	ListBorrows(ctx context.Context, status model.Status) ([]model.BorrowRecord, error)
	CreateBorrow(ctx context.Context, draft model.BorrowDraft) (model.BorrowRecord, error)
	UpdateBorrow(ctx context.Context, id int, draft model.BorrowDraft) (model.BorrowRecord, error)
	ReturnBorrow(ctx context.Context, id int, returnDate model.Date) (model.BorrowRecord, error)
	DeleteBorrow(ctx context.Context, id int) (model.BorrowRecord, error)

	CreateUser(ctx context.Context, name, email, passwordHash string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	itemsTableName         = `items`
	borrowRecordsTableName = `borrow_records`
	usersTableName         = `users`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
