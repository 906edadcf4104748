package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hisab-backoffice/internal/domain/journal"
	"github.com/hisab-backoffice/internal/domain/shared"
	"github.com/hisab-backoffice/internal/report_server/middleware"
	"github.com/hisab-backoffice/internal/report_server/service"
)

// JournalHandler handles HTTP requests for journal entry operations
type JournalHandler struct {
	postingService service.PostingService
	logger         *slog.Logger
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(logger *slog.Logger, postingService service.PostingService) *JournalHandler {
	return &JournalHandler{
		postingService: postingService,
		logger:         logger,
	}
}

// Create validates a posting request and hands it to the async pipeline
func (h *JournalHandler) Create(c *gin.Context) {
	tenant, ok := middleware.GetTenant(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var req CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	var costCenterID *uuid.UUID
	if req.CostCenterID != "" {
		parsed, err := uuid.Parse(req.CostCenterID)
		if err != nil {
			RespondBadRequest(c, "Invalid cost center ID")
			return
		}
		costCenterID = &parsed
	}

	entryDate, err := time.Parse(dateLayout, req.EntryDate)
	if err != nil {
		RespondBadRequest(c, "Invalid entry_date, expected YYYY-MM-DD")
		return
	}

	sourceType := shared.SourceType(req.SourceType)
	request := &shared.PostingRequest{
		EntryID:       uuid.New(),
		CompanyID:     tenant.CompanyID,
		AccountID:     accountID,
		CostCenterID:  costCenterID,
		Debit:         decimal.NewFromFloat(req.Debit),
		Credit:        decimal.NewFromFloat(req.Credit),
		EntryDate:     entryDate,
		SourceType:    sourceType,
		Description:   req.Description,
		CorrelationID: middleware.GetCorrelationID(c),
		Timestamp:     time.Now(),
	}

	if err := h.postingService.SubmitEntry(c.Request.Context(), request); err != nil {
		if errors.Is(err, shared.ErrInvalidAmount) ||
			errors.Is(err, shared.ErrTwoSidedAmount) ||
			errors.Is(err, shared.ErrUnknownSource) ||
			errors.Is(err, shared.ErrMissingAccount) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to submit journal entry", "error", err)
		RespondInternalError(c)
		return
	}

	RespondAccepted(c, gin.H{
		"entry_id": request.EntryID.String(),
		"status":   "PENDING",
	})
}

// GetByID retrieves a posted journal entry, returns 404 if not found
func (h *JournalHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid entry ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.postingService.GetEntryByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get journal entry", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	if entry == nil {
		RespondNotFound(c, "Journal entry not found")
		return
	}

	RespondOK(c, mapEntryToResponse(entry))
}

// mapEntryToResponse maps a journal entry to its response DTO
func mapEntryToResponse(entry *journal.Entry) JournalEntryResponse {
	response := JournalEntryResponse{
		EntryID:     entry.ID.String(),
		CompanyID:   entry.CompanyID.String(),
		AccountID:   entry.AccountID.String(),
		Debit:       entry.Debit.InexactFloat64(),
		Credit:      entry.Credit.InexactFloat64(),
		EntryDate:   entry.EntryDate.Format(dateLayout),
		SourceType:  string(entry.SourceType),
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}

	if entry.CostCenterID != nil {
		response.CostCenterID = entry.CostCenterID.String()
	}

	return response
}
