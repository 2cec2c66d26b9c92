package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type Item struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Quantity    int    `json:"quantity" db:"quantity"`
}

type ItemDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusReturned Status = "returned"
)

// Date is a calendar date marshalled as "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(`"`+time.DateOnly+`"`, s)
	if err != nil {
		return fmt.Errorf("date %s: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		d.Time = v
	case string:
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return err
		}
		d.Time = t
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
	return nil
}

type BorrowRecord struct {
	ID           int    `json:"id" db:"id"`
	RecordUid    string `json:"record_uid" db:"record_uid"`
	BorrowerName string `json:"borrower_name" db:"borrower_name"`
	ItemID       *int   `json:"item_id" db:"item_id"`
	BorrowedDate Date   `json:"borrowed_date" db:"borrowed_date"`
	ReturnDate   *Date  `json:"return_date" db:"return_date"`
	Quantity     int    `json:"quantity" db:"quantity"`
	Status       Status `json:"status" db:"status"`

	// Item is the referenced catalog entry, nil when it has been
	// deleted since the record was written.
	Item *Item `json:"item,omitempty"`
}

// BorrowDraft is the caller-supplied shape of a borrow record, used
// for both create and edit.
type BorrowDraft struct {
	BorrowerName string `json:"borrower_name"`
	ItemID       int    `json:"item_id"`
	BorrowedDate Date   `json:"borrowed_date"`
	Quantity     int    `json:"quantity"`
	Status       Status `json:"status"`
}

// ReportSnapshot is derived from full scans of items and borrow
// records; it carries no lifecycle of its own.
type ReportSnapshot struct {
	TotalItems      int     `json:"total_items"`
	TotalStock      int     `json:"total_stock"`
	AvailableCount  int     `json:"available_count"`
	PendingCount    int     `json:"pending_count"`
	ReturnedCount   int     `json:"returned_count"`
	MonthlyBorrowed [12]int `json:"monthly_borrowed"`
	MonthlyReturned [12]int `json:"monthly_returned"`
}

type User struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsAdmin      bool   `json:"is_admin" db:"is_admin"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
