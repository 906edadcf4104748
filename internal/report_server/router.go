package report_server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hisab-backoffice/internal/report_server/handler"
	"github.com/hisab-backoffice/internal/report_server/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	statementHandler *handler.StatementHandler,
	journalHandler *handler.JournalHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints, all tenant scoped
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Session(logger))
	{
		// Financial statements
		reports := v1.Group("/reports")
		{
			reports.GET("/income-statement", statementHandler.IncomeStatement)
			reports.GET("/balance-sheet", statementHandler.BalanceSheet)
		}

		// Journal entry operations
		entries := v1.Group("/journal-entries")
		{
			entries.POST("", journalHandler.Create)
			entries.GET("/:id", journalHandler.GetByID)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
