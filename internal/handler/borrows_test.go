package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/lenddesk/inventory-service/internal/errs"
	"github.com/lenddesk/inventory-service/internal/handler"
	"github.com/lenddesk/inventory-service/internal/model"
	"github.com/lenddesk/inventory-service/pkg/auth"
	"github.com/lenddesk/inventory-service/pkg/validate"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/lenddesk/inventory-service/internal/handler/mocks"
)

func date(s string) model.Date {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return model.NewDate(t)
}

func newTestRouter(t *testing.T) (*echo.Echo, *service_mocks.MockLedgerService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)

	ledger := service_mocks.NewMockLedgerService(c)
	log := zap.NewExample().Named("test")
	h := handler.New(
		service_mocks.NewMockInventoryService(c),
		ledger,
		service_mocks.NewMockReportService(c),
		service_mocks.NewMockAuthService(c),
		auth.Config{JWTKey: "test"},
		log,
	)

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/borrowed-items", h.CreateBorrow)
	e.POST("/borrowed-items/:id/return", h.ReturnBorrow)
	e.PUT("/borrowed-items/:id", h.UpdateBorrow)
	e.DELETE("/borrowed-items/:id", h.DeleteBorrow)
	e.GET("/borrowed-items", h.ListBorrows)
	return e, ledger
}

func TestHandler_CreateBorrow(t *testing.T) {
	t.Parallel()

	draft := model.BorrowDraft{
		BorrowerName: "Ana",
		ItemID:       1,
		BorrowedDate: date("2024-03-01"),
		Quantity:     2,
		Status:       model.StatusPending,
	}
	itemID := 1

	var tests = []struct {
		name         string
		body         string
		mockBehavior func(r *service_mocks.MockLedgerService)
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			body: `{"borrower_name":"Ana","item_id":1,"borrowed_date":"2024-03-01","quantity":2,"status":"pending"}`,
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					CreateBorrow(context.Background(), draft).
					Return(model.BorrowRecord{
						ID:           7,
						RecordUid:    "8a9f2c31-9f0e-4a6d-8f34-9a2d0a3cf1aa",
						BorrowerName: "Ana",
						ItemID:       &itemID,
						BorrowedDate: date("2024-03-01"),
						Quantity:     2,
						Status:       model.StatusPending,
					}, nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: `{"id":7,"record_uid":"8a9f2c31-9f0e-4a6d-8f34-9a2d0a3cf1aa","borrower_name":"Ana","item_id":1,"borrowed_date":"2024-03-01","return_date":null,"quantity":2,"status":"pending"}`,
		},
		{
			name: "err. insufficient stock",
			body: `{"borrower_name":"Ana","item_id":1,"borrowed_date":"2024-03-01","quantity":2,"status":"pending"}`,
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					CreateBorrow(context.Background(), draft).
					Return(model.BorrowRecord{}, errs.ErrInsufficientStock)
			},
			expectedCode: http.StatusConflict,
			expectedBody: `{"message":"insufficient stock"}`,
		},
		{
			name: "err. validation map",
			body: `{"item_id":1,"borrowed_date":"2024-03-01","quantity":0}`,
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					CreateBorrow(context.Background(), gomock.Any()).
					Return(model.BorrowRecord{}, errs.ValidationErrors{
						"borrower_name": "Borrower Name is required",
						"quantity":      "Quantity must be at least 1",
					})
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"validation failed","errors":{"borrower_name":"Borrower Name is required","quantity":"Quantity must be at least 1"}}`,
		},
		{
			name: "err. unknown item",
			body: `{"borrower_name":"Ana","item_id":1,"borrowed_date":"2024-03-01","quantity":2,"status":"pending"}`,
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					CreateBorrow(context.Background(), draft).
					Return(model.BorrowRecord{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"not found"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, ledger := newTestRouter(t)
			tt.mockBehavior(ledger)

			r := httptest.NewRequest(http.MethodPost, "/borrowed-items", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ReturnBorrow(t *testing.T) {
	t.Parallel()

	itemID := 1
	returnDate := date("2024-03-15")

	var tests = []struct {
		name         string
		target       string
		mockBehavior func(r *service_mocks.MockLedgerService)
		expectedCode int
		expectedBody string
	}{
		{
			name:   "ok",
			target: "/borrowed-items/7/return",
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					ReturnBorrow(context.Background(), 7).
					Return(model.BorrowRecord{
						ID:           7,
						RecordUid:    "8a9f2c31-9f0e-4a6d-8f34-9a2d0a3cf1aa",
						BorrowerName: "Ana",
						ItemID:       &itemID,
						BorrowedDate: date("2024-03-01"),
						ReturnDate:   &returnDate,
						Quantity:     2,
						Status:       model.StatusReturned,
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":7,"record_uid":"8a9f2c31-9f0e-4a6d-8f34-9a2d0a3cf1aa","borrower_name":"Ana","item_id":1,"borrowed_date":"2024-03-01","return_date":"2024-03-15","quantity":2,"status":"returned"}`,
		},
		{
			name:   "err. already returned",
			target: "/borrowed-items/7/return",
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					ReturnBorrow(context.Background(), 7).
					Return(model.BorrowRecord{}, errs.ErrInvalidTransition)
			},
			expectedCode: http.StatusConflict,
			expectedBody: `{"message":"invalid status transition"}`,
		},
		{
			name:   "err. not found",
			target: "/borrowed-items/99/return",
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					ReturnBorrow(context.Background(), 99).
					Return(model.BorrowRecord{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"not found"}`,
		},
		{
			name:         "err. bad id",
			target:       "/borrowed-items/abc/return",
			mockBehavior: func(r *service_mocks.MockLedgerService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"id is invalid"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, ledger := newTestRouter(t)
			tt.mockBehavior(ledger)

			r := httptest.NewRequest(http.MethodPost, tt.target, http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListBorrows(t *testing.T) {
	t.Parallel()

	t.Run("status filter", func(t *testing.T) {
		t.Parallel()
		e, ledger := newTestRouter(t)
		ledger.EXPECT().
			ListBorrows(context.Background(), model.StatusReturned).
			Return([]model.BorrowRecord{}, nil)

		r := httptest.NewRequest(http.MethodGet, "/borrowed-items?status=returned", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `[]`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("err. invalid status", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestRouter(t)

		r := httptest.NewRequest(http.MethodGet, "/borrowed-items?status=lost", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_DeleteBorrow(t *testing.T) {
	t.Parallel()
	e, ledger := newTestRouter(t)
	ledger.EXPECT().
		DeleteBorrow(context.Background(), 7).
		Return(nil)

	r := httptest.NewRequest(http.MethodDelete, "/borrowed-items/7", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
}
