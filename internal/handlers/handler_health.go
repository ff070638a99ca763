package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthPingTimeout = 2 * time.Second

// RegisterHealthRoutes registers the public /health probe. It reports the
// database reachability and the circuit breaker state of each post-commit hook.
// An open breaker degrades nothing but is surfaced for operators.
func RegisterHealthRoutes(r gin.IRoutes, db Pinger, hooks portssvc.HookStatusReporter) {
	r.GET("/health", func(c *gin.Context) {
		resp := gin.H{"status": "ok"}
		status := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check database ping failed", slog.String("error", err.Error()))
				resp["status"] = "unavailable"
				resp["database"] = "down"
				status = http.StatusServiceUnavailable
			} else {
				resp["database"] = "up"
			}
		}
		if hooks != nil {
			resp["hooks"] = hooks.HookStates()
		}

		c.JSON(status, resp)
	})
}
