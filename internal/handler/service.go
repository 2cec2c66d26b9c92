package handler

import (
	"context"

	"github.com/lenddesk/inventory-service/internal/model"
	"github.com/lenddesk/inventory-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type InventoryService interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	CreateItem(ctx context.Context, draft model.ItemDraft) (model.Item, error)
	UpdateItem(ctx context.Context, id int, draft model.ItemDraft) (model.Item, error)
	DeleteItem(ctx context.Context, id int) error
}

type LedgerService interface {
	ListBorrows(ctx context.Context, status model.Status) ([]model.BorrowRecord, error)
	CreateBorrow(ctx context.Context, draft model.BorrowDraft) (model.BorrowRecord, error)
	UpdateBorrow(ctx context.Context, id int, draft model.BorrowDraft) (model.BorrowRecord, error)
	ReturnBorrow(ctx context.Context, id int) (model.BorrowRecord, error)
	DeleteBorrow(ctx context.Context, id int) error
}

type ReportService interface {
	Snapshot(ctx context.Context) (model.ReportSnapshot, error)
}

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
	Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error)
}

var (
	_ InventoryService = (*service.Service)(nil)
	_ LedgerService    = (*service.Service)(nil)
	_ ReportService    = (*service.Service)(nil)
	_ AuthService      = (*service.Service)(nil)
)
