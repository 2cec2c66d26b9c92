package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lenddesk/inventory-service/internal/errs"
	"github.com/lenddesk/inventory-service/pkg/auth"
	md "github.com/lenddesk/inventory-service/pkg/middleware"
	"github.com/lenddesk/inventory-service/pkg/validate"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	inventorySvc InventoryService
	ledgerSvc    LedgerService
	reportSvc    ReportService
	authSvc      AuthService
	authCfg      auth.Config
	log          *zap.Logger
}

func New(inventorySvc InventoryService, ledgerSvc LedgerService, reportSvc ReportService, authSvc AuthService, authCfg auth.Config, log *zap.Logger) *Handler {
	return &Handler{
		inventorySvc: inventorySvc,
		ledgerSvc:    ledgerSvc,
		reportSvc:    reportSvc,
		authSvc:      authSvc,
		authCfg:      authCfg,
		log:          log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	protected := api.Group("", md.JwtAuthentication(h.authCfg))

	protected.GET("/items", h.ListItems)
	protected.POST("/items", h.CreateItem)
	protected.PUT("/items/:id", h.UpdateItem)
	protected.DELETE("/items/:id", h.DeleteItem)

	protected.GET("/borrowed-items", h.ListBorrows)
	protected.POST("/borrowed-items", h.CreateBorrow)
	protected.PUT("/borrowed-items/:id", h.UpdateBorrow)
	protected.POST("/borrowed-items/:id/return", h.ReturnBorrow)
	protected.DELETE("/borrowed-items/:id", h.DeleteBorrow)

	protected.GET("/reports", h.GetReport)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// respondError maps engine outcomes onto the wire. Validation results
// keep their field map; everything else collapses to message-only.
func (h *Handler) respondError(c echo.Context, err error) error {
	var ve errs.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, errs.ValidationErrorResponse{
			Message: "validation failed",
			Errors:  ve,
		})
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
