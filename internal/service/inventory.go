package service

import (
	"context"

	"github.com/lenddesk/inventory-service/internal/model"
	"github.com/lenddesk/inventory-service/internal/validate"
)

func (s *Service) ListItems(ctx context.Context) ([]model.Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *Service) CreateItem(ctx context.Context, draft model.ItemDraft) (model.Item, error) {
	if ve := validate.ItemDraft(draft); len(ve) > 0 {
		return model.Item{}, ve
	}
	return s.repo.CreateItem(ctx, draft)
}

func (s *Service) UpdateItem(ctx context.Context, id int, draft model.ItemDraft) (model.Item, error) {
	if ve := validate.ItemDraft(draft); len(ve) > 0 {
		return model.Item{}, ve
	}
	return s.repo.UpdateItem(ctx, id, draft)
}

func (s *Service) DeleteItem(ctx context.Context, id int) error {
	return s.repo.DeleteItem(ctx, id)
}
