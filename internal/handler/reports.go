package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetReport(c echo.Context) error {
	snap, err := h.reportSvc.Snapshot(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}
