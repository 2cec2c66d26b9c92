package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lenddesk/inventory-service/internal/model"
)

func (h *Handler) ListBorrows(c echo.Context) error {
	var status model.Status
	switch s := c.QueryParam("status"); s {
	case "", string(model.StatusPending), string(model.StatusReturned):
		status = model.Status(s)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}

	records, err := h.ledgerSvc.ListBorrows(c.Request().Context(), status)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) CreateBorrow(c echo.Context) error {
	var draft model.BorrowDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.ledgerSvc.CreateBorrow(c.Request().Context(), draft)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) UpdateBorrow(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var draft model.BorrowDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.ledgerSvc.UpdateBorrow(c.Request().Context(), id, draft)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ReturnBorrow(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.ledgerSvc.ReturnBorrow(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteBorrow(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.ledgerSvc.DeleteBorrow(c.Request().Context(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
