package service

import (
	"context"

	"github.com/lenddesk/inventory-service/internal/model"
	"golang.org/x/sync/errgroup"
)

// Snapshot recomputes the report from full scans of both collections,
// fetched concurrently. Fine at admin-tool scale.
func (s *Service) Snapshot(ctx context.Context) (model.ReportSnapshot, error) {
	var (
		items   []model.Item
		records []model.BorrowRecord
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.ListItems(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.repo.ListBorrows(ctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return model.ReportSnapshot{}, err
	}

	return BuildSnapshot(items, records), nil
}

// BuildSnapshot derives the aggregate view. Pure; mutates neither input.
func BuildSnapshot(items []model.Item, records []model.BorrowRecord) model.ReportSnapshot {
	var snap model.ReportSnapshot

	snap.TotalItems = len(items)
	for _, item := range items {
		snap.TotalStock += item.Quantity
		if item.Quantity > 0 {
			snap.AvailableCount++
		}
	}

	for _, rec := range records {
		switch rec.Status {
		case model.StatusPending:
			snap.PendingCount++
			if !rec.BorrowedDate.IsZero() {
				snap.MonthlyBorrowed[int(rec.BorrowedDate.Month())-1]++
			}
		case model.StatusReturned:
			snap.ReturnedCount++
			if rec.ReturnDate != nil && !rec.ReturnDate.IsZero() {
				snap.MonthlyReturned[int(rec.ReturnDate.Month())-1]++
			}
		}
	}
	return snap
}
