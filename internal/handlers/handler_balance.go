package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
	"github.com/SscSPs/ledger_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler serves the derived account balances of a fiscal period.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(balanceService portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: balanceService}
}

// listBalances godoc
// @Summary List account balances of a fiscal period
// @Tags balances
// @Produce json
// @Param periodID path string true "Fiscal period ID"
// @Success 200 {object} dto.ListAccountBalancesResponse
// @Failure 400 {object} map[string]string "Unknown fiscal period"
// @Security BearerAuth
// @Router /fiscal-periods/{periodID}/balances [get]
func (h *balanceHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	balances, err := h.balanceService.ListPeriodBalances(c.Request.Context(), periodID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("fiscal_period_id", periodID)), err, "Failed to list balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountBalancesResponse(balances))
}

// getBalance godoc
// @Summary Get the balance of an account in a fiscal period
// @Tags balances
// @Produce json
// @Param periodID path string true "Fiscal period ID"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} map[string]string "No balance recorded"
// @Security BearerAuth
// @Router /fiscal-periods/{periodID}/balances/{accountID} [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")
	accountID := c.Param("accountID")

	balance, err := h.balanceService.GetBalance(c.Request.Context(), accountID, periodID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("fiscal_period_id", periodID), slog.String("account_id", accountID)), err, "Failed to retrieve balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(*balance))
}

// rebuildBalances godoc
// @Summary Rebuild the balances of a fiscal period
// @Description Recomputes every balance row of the period from its posted, non-reversal entries
// @Tags balances
// @Produce json
// @Param periodID path string true "Fiscal period ID"
// @Success 200 {object} dto.RebuildBalancesResponse
// @Failure 400 {object} map[string]string "Unknown fiscal period"
// @Security BearerAuth
// @Router /fiscal-periods/{periodID}/balances/rebuild [post]
func (h *balanceHandler) rebuildBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	if _, ok := requireUserID(c, logger); !ok {
		return
	}

	rows, err := h.balanceService.RebuildPeriodBalances(c.Request.Context(), periodID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("fiscal_period_id", periodID)), err, "Failed to rebuild balances")
		return
	}

	logger.Info("Balances rebuilt", slog.String("fiscal_period_id", periodID), slog.Int64("rows", rows))
	c.JSON(http.StatusOK, dto.RebuildBalancesResponse{FiscalPeriodID: periodID, Rows: rows})
}

// RegisterBalanceRoutes registers balance specific routes.
func RegisterBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/fiscal-periods/:periodID/balances")
	{
		balances.GET("", h.listBalances)
		balances.GET("/:accountID", h.getBalance)
		balances.POST("/rebuild", h.rebuildBalances)
	}
}
