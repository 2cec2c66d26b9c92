// Package validate holds the pure draft-validation rules. No I/O and
// no side effects; stock sufficiency is the ledger's concern because
// it needs the live item row.
package validate

import (
	"strings"

	"github.com/lenddesk/inventory-service/internal/errs"
	"github.com/lenddesk/inventory-service/internal/model"
)

func BorrowDraft(d model.BorrowDraft) errs.ValidationErrors {
	ve := errs.ValidationErrors{}
	if strings.TrimSpace(d.BorrowerName) == "" {
		ve["borrower_name"] = "Borrower Name is required"
	}
	if d.ItemID <= 0 {
		ve["item_id"] = "Please select an item"
	}
	if d.BorrowedDate.IsZero() {
		ve["borrowed_date"] = "Borrowed Date is required"
	}
	if d.Quantity < 1 {
		ve["quantity"] = "Quantity must be at least 1"
	}
	if d.Status != "" && d.Status != model.StatusPending && d.Status != model.StatusReturned {
		ve["status"] = "Status must be pending or returned"
	}
	return ve
}

func ItemDraft(d model.ItemDraft) errs.ValidationErrors {
	ve := errs.ValidationErrors{}
	if strings.TrimSpace(d.Name) == "" {
		ve["name"] = "Item Name is required"
	}
	if d.Quantity < 1 {
		ve["quantity"] = "Quantity must be at least 1"
	}
	return ve
}
