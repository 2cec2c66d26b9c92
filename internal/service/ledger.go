package service

import (
	"context"

	"github.com/lenddesk/inventory-service/internal/events"
	"github.com/lenddesk/inventory-service/internal/model"
	"github.com/lenddesk/inventory-service/internal/validate"
	"go.uber.org/zap"
)

// The borrow ledger. Every state transition of a borrow record and its
// inventory side effect goes through these four operations; the
// repository applies each one as a single transaction.

func (s *Service) ListBorrows(ctx context.Context, status model.Status) ([]model.BorrowRecord, error) {
	return s.repo.ListBorrows(ctx, status)
}

func (s *Service) CreateBorrow(ctx context.Context, draft model.BorrowDraft) (model.BorrowRecord, error) {
	if ve := validate.BorrowDraft(draft); len(ve) > 0 {
		return model.BorrowRecord{}, ve
	}

	rec, err := s.repo.CreateBorrow(ctx, draft)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	s.log.Info("borrow created",
		zap.Int("id", rec.ID), zap.Int("item_id", draft.ItemID), zap.Int("quantity", rec.Quantity))

	s.events.Publish(events.BorrowEvent{
		Type:       events.TypeBorrowed,
		RecordUid:  rec.RecordUid,
		ItemID:     rec.ItemID,
		Quantity:   rec.Quantity,
		OccurredAt: s.now(),
	})
	return rec, nil
}

func (s *Service) UpdateBorrow(ctx context.Context, id int, draft model.BorrowDraft) (model.BorrowRecord, error) {
	if ve := validate.BorrowDraft(draft); len(ve) > 0 {
		return model.BorrowRecord{}, ve
	}
	return s.repo.UpdateBorrow(ctx, id, draft)
}

func (s *Service) ReturnBorrow(ctx context.Context, id int) (model.BorrowRecord, error) {
	rec, err := s.repo.ReturnBorrow(ctx, id, model.NewDate(s.now()))
	if err != nil {
		return model.BorrowRecord{}, err
	}
	s.log.Info("borrow returned", zap.Int("id", rec.ID), zap.Int("quantity", rec.Quantity))

	s.events.Publish(events.BorrowEvent{
		Type:       events.TypeReturned,
		RecordUid:  rec.RecordUid,
		ItemID:     rec.ItemID,
		Quantity:   rec.Quantity,
		OccurredAt: s.now(),
	})
	return rec, nil
}

// DeleteBorrow removes the record without touching inventory; the
// outstanding debit of a pending record is written off, not restored.
func (s *Service) DeleteBorrow(ctx context.Context, id int) error {
	rec, err := s.repo.DeleteBorrow(ctx, id)
	if err != nil {
		return err
	}
	s.log.Info("borrow deleted", zap.Int("id", id), zap.String("status", string(rec.Status)))

	s.events.Publish(events.BorrowEvent{
		Type:       events.TypeDeleted,
		RecordUid:  rec.RecordUid,
		ItemID:     rec.ItemID,
		Quantity:   rec.Quantity,
		OccurredAt: s.now(),
	})
	return nil
}
