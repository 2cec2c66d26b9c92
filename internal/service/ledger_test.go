package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lenddesk/inventory-service/internal/errs"
	"github.com/lenddesk/inventory-service/internal/events"
	"github.com/lenddesk/inventory-service/internal/model"
	"github.com/lenddesk/inventory-service/pkg/auth"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo mirrors the repository's documented transition contract in
// memory: conditional debits, pending-only edits, no inventory effect
// on delete.
type fakeRepo struct {
	items    map[int]model.Item
	records  map[int]model.BorrowRecord
	nextItem int
	nextRec  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:    make(map[int]model.Item),
		records:  make(map[int]model.BorrowRecord),
		nextItem: 1,
		nextRec:  1,
	}
}

func (f *fakeRepo) addItem(name string, quantity int) int {
	id := f.nextItem
	f.nextItem++
	f.items[id] = model.Item{ID: id, Name: name, Quantity: quantity}
	return id
}

func (f *fakeRepo) ListItems(context.Context) ([]model.Item, error) {
	items := make([]model.Item, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeRepo) CreateItem(_ context.Context, draft model.ItemDraft) (model.Item, error) {
	id := f.addItem(draft.Name, draft.Quantity)
	return f.items[id], nil
}

func (f *fakeRepo) UpdateItem(_ context.Context, id int, draft model.ItemDraft) (model.Item, error) {
	if _, ok := f.items[id]; !ok {
		return model.Item{}, errs.ErrNotFound
	}
	f.items[id] = model.Item{ID: id, Name: draft.Name, Description: draft.Description, Quantity: draft.Quantity}
	return f.items[id], nil
}

func (f *fakeRepo) DeleteItem(_ context.Context, id int) error {
	if _, ok := f.items[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.items, id)
	for rid, rec := range f.records {
		if rec.ItemID != nil && *rec.ItemID == id {
			rec.ItemID = nil
			f.records[rid] = rec
		}
	}
	return nil
}

func (f *fakeRepo) ListBorrows(_ context.Context, status model.Status) ([]model.BorrowRecord, error) {
	records := make([]model.BorrowRecord, 0, len(f.records))
	for _, rec := range f.records {
		if status == "" || rec.Status == status {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (f *fakeRepo) debit(itemID, quantity int) error {
	item, ok := f.items[itemID]
	if !ok {
		return errs.ErrNotFound
	}
	if item.Quantity < quantity {
		return errs.ErrInsufficientStock
	}
	item.Quantity -= quantity
	f.items[itemID] = item
	return nil
}

func (f *fakeRepo) credit(itemID, quantity int) {
	if item, ok := f.items[itemID]; ok {
		item.Quantity += quantity
		f.items[itemID] = item
	}
}

func (f *fakeRepo) CreateBorrow(_ context.Context, draft model.BorrowDraft) (model.BorrowRecord, error) {
	if err := f.debit(draft.ItemID, draft.Quantity); err != nil {
		return model.BorrowRecord{}, err
	}
	id := f.nextRec
	f.nextRec++
	itemID := draft.ItemID
	rec := model.BorrowRecord{
		ID:           id,
		RecordUid:    fmt.Sprintf("rec-%d", id),
		BorrowerName: draft.BorrowerName,
		ItemID:       &itemID,
		BorrowedDate: draft.BorrowedDate,
		Quantity:     draft.Quantity,
		Status:       model.StatusPending,
	}
	f.records[id] = rec
	return rec, nil
}

func (f *fakeRepo) UpdateBorrow(_ context.Context, id int, draft model.BorrowDraft) (model.BorrowRecord, error) {
	orig, ok := f.records[id]
	if !ok {
		return model.BorrowRecord{}, errs.ErrNotFound
	}
	if orig.Status != model.StatusPending {
		return model.BorrowRecord{}, errs.ErrInvalidTransition
	}

	if orig.ItemID != nil && *orig.ItemID == draft.ItemID {
		item := f.items[draft.ItemID]
		if item.Quantity+orig.Quantity-draft.Quantity < 0 {
			return model.BorrowRecord{}, errs.ErrInsufficientStock
		}
		item.Quantity += orig.Quantity - draft.Quantity
		f.items[draft.ItemID] = item
	} else {
		newItem, ok := f.items[draft.ItemID]
		if !ok {
			return model.BorrowRecord{}, errs.ErrNotFound
		}
		if newItem.Quantity < draft.Quantity {
			return model.BorrowRecord{}, errs.ErrInsufficientStock
		}
		if orig.ItemID != nil {
			f.credit(*orig.ItemID, orig.Quantity)
		}
		newItem.Quantity -= draft.Quantity
		f.items[draft.ItemID] = newItem
	}

	itemID := draft.ItemID
	orig.BorrowerName = draft.BorrowerName
	orig.ItemID = &itemID
	orig.BorrowedDate = draft.BorrowedDate
	orig.Quantity = draft.Quantity
	f.records[id] = orig
	return orig, nil
}

func (f *fakeRepo) ReturnBorrow(_ context.Context, id int, returnDate model.Date) (model.BorrowRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return model.BorrowRecord{}, errs.ErrNotFound
	}
	if rec.Status != model.StatusPending {
		return model.BorrowRecord{}, errs.ErrInvalidTransition
	}
	rec.Status = model.StatusReturned
	rec.ReturnDate = &returnDate
	f.records[id] = rec
	if rec.ItemID != nil {
		f.credit(*rec.ItemID, rec.Quantity)
	}
	return rec, nil
}

func (f *fakeRepo) DeleteBorrow(_ context.Context, id int) (model.BorrowRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return model.BorrowRecord{}, errs.ErrNotFound
	}
	delete(f.records, id)
	return rec, nil
}

func (f *fakeRepo) CreateUser(context.Context, string, string, string) (model.User, error) {
	return model.User{}, errs.ErrNotFound
}

func (f *fakeRepo) GetUserByEmail(context.Context, string) (model.User, error) {
	return model.User{}, errs.ErrNotFound
}

func newTestService(repo *fakeRepo) *Service {
	log := zap.NewExample().Named("test")
	svc := NewService(repo, events.NewPublisher(nil, log), auth.Config{JWTKey: "test"}, log)
	svc.now = func() time.Time {
		return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func date(s string) model.Date {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return model.NewDate(t)
}

func TestBorrowLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo()
	itemID := repo.addItem("Projector", 5)
	svc := newTestService(repo)

	rec, err := svc.CreateBorrow(ctx, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       itemID,
		BorrowedDate: date("2024-03-01"),
		Quantity:     2,
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, rec.Status)
	require.Nil(t, rec.ReturnDate)
	require.Equal(t, 3, repo.items[itemID].Quantity)

	returned, err := svc.ReturnBorrow(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	require.Equal(t, "2024-03-15", returned.ReturnDate.Format(time.DateOnly))
	require.Equal(t, 5, repo.items[itemID].Quantity)

	_, err = svc.ReturnBorrow(ctx, rec.ID)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, 5, repo.items[itemID].Quantity)
}

func TestCreateBorrowInsufficientStock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo()
	itemID := repo.addItem("Cable", 1)
	svc := newTestService(repo)

	_, err := svc.CreateBorrow(ctx, model.BorrowDraft{
		BorrowerName: "Ben",
		ItemID:       itemID,
		BorrowedDate: date("2024-03-02"),
		Quantity:     2,
	})
	require.ErrorIs(t, err, errs.ErrInsufficientStock)
	require.Equal(t, 1, repo.items[itemID].Quantity)
	require.Empty(t, repo.records)
}

func TestCreateBorrowUnknownItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(newFakeRepo())

	_, err := svc.CreateBorrow(ctx, model.BorrowDraft{
		BorrowerName: "Ben",
		ItemID:       42,
		BorrowedDate: date("2024-03-02"),
		Quantity:     1,
	})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreateBorrowValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo()
	itemID := repo.addItem("Projector", 5)
	svc := newTestService(repo)

	_, err := svc.CreateBorrow(ctx, model.BorrowDraft{
		ItemID:   itemID,
		Quantity: 0,
	})

	var ve errs.ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve, "borrower_name")
	require.Contains(t, ve, "quantity")
	// rejected drafts must leave both collections untouched
	require.Equal(t, 5, repo.items[itemID].Quantity)
	require.Empty(t, repo.records)
}

func TestUpdateBorrowQuantityDelta(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo()
	itemID := repo.addItem("Projector", 5)
	svc := newTestService(repo)

	rec, err := svc.CreateBorrow(ctx, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       itemID,
		BorrowedDate: date("2024-03-01"),
		Quantity:     3,
	})
	require.NoError(t, err)
	require.Equal(t, 2, repo.items[itemID].Quantity)

	// 3 -> 1 restores the difference: 2 + 3 - 1 = 4
	updated, err := svc.UpdateBorrow(ctx, rec.ID, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       itemID,
		BorrowedDate: date("2024-03-01"),
		Quantity:     1,
	})
	require.NoError(t, err)
	require.Equal(t, 1, updated.Quantity)
	require.Equal(t, 4, repo.items[itemID].Quantity)

	// 1 -> 5 debits the difference: 4 + 1 - 5 = 0
	_, err = svc.UpdateBorrow(ctx, rec.ID, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       itemID,
		BorrowedDate: date("2024-03-01"),
		Quantity:     5,
	})
	require.NoError(t, err)
	require.Equal(t, 0, repo.items[itemID].Quantity)

	// 5 -> 6 would go negative
	_, err = svc.UpdateBorrow(ctx, rec.ID, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       itemID,
		BorrowedDate: date("2024-03-01"),
		Quantity:     6,
	})
	require.ErrorIs(t, err, errs.ErrInsufficientStock)
	require.Equal(t, 0, repo.items[itemID].Quantity)
}

func TestUpdateBorrowAcrossItems(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo()
	first := repo.addItem("Projector", 5)
	second := repo.addItem("Screen", 2)
	svc := newTestService(repo)

	rec, err := svc.CreateBorrow(ctx, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       first,
		BorrowedDate: date("2024-03-01"),
		Quantity:     2,
	})
	require.NoError(t, err)

	_, err = svc.UpdateBorrow(ctx, rec.ID, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       second,
		BorrowedDate: date("2024-03-01"),
		Quantity:     1,
	})
	require.NoError(t, err)
	require.Equal(t, 5, repo.items[first].Quantity)
	require.Equal(t, 1, repo.items[second].Quantity)
}

func TestUpdateBorrowReturnedRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo()
	itemID := repo.addItem("Projector", 5)
	svc := newTestService(repo)

	rec, err := svc.CreateBorrow(ctx, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       itemID,
		BorrowedDate: date("2024-03-01"),
		Quantity:     2,
	})
	require.NoError(t, err)
	_, err = svc.ReturnBorrow(ctx, rec.ID)
	require.NoError(t, err)

	_, err = svc.UpdateBorrow(ctx, rec.ID, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       itemID,
		BorrowedDate: date("2024-03-01"),
		Quantity:     1,
	})
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, 5, repo.items[itemID].Quantity)
}

func TestDeleteBorrowLeavesInventory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo()
	itemID := repo.addItem("Projector", 5)
	svc := newTestService(repo)

	rec, err := svc.CreateBorrow(ctx, model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       itemID,
		BorrowedDate: date("2024-03-01"),
		Quantity:     2,
	})
	require.NoError(t, err)
	require.Equal(t, 3, repo.items[itemID].Quantity)

	require.NoError(t, svc.DeleteBorrow(ctx, rec.ID))

	records, err := svc.ListBorrows(ctx, "")
	require.NoError(t, err)
	require.Empty(t, records)
	// deletion is a write-off: the debit stays
	require.Equal(t, 3, repo.items[itemID].Quantity)

	require.ErrorIs(t, svc.DeleteBorrow(ctx, rec.ID), errs.ErrNotFound)
}
