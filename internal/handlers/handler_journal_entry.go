package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
	"github.com/SscSPs/ledger_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalEntryHandler handles HTTP requests related to journal entries.
type journalEntryHandler struct {
	entryService portssvc.JournalEntrySvcFacade
	bankService  portssvc.BankTransactionReaderSvc
}

// newJournalEntryHandler creates a new journalEntryHandler.
func newJournalEntryHandler(entryService portssvc.JournalEntrySvcFacade, bankService portssvc.BankTransactionReaderSvc) *journalEntryHandler {
	return &journalEntryHandler{
		entryService: entryService,
		bankService:  bankService,
	}
}

// requireUserID reads the authenticated actor, answering 401 when it is missing.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a new draft journal entry with its lines. The entry number is generated when omitted.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request format or lines"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate entry number"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists journal entries, newest first, with token based pagination
// @Tags journal-entries
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param nextToken query string false "Token from the previous page"
// @Param status query string false "draft, posted or reversed"
// @Param fiscalPeriodID query string false "Fiscal period filter"
// @Param sourceDocumentType query string false "Source document type filter"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalEntryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry and its lines by ID
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *journalEntryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Replaces the header and all lines of a draft journal entry
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Journal entry"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request format or lines"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [put]
func (h *journalEntryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to update journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Tags journal-entries
// @Param entryID path string true "Journal entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [delete]
func (h *journalEntryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), entryID, userID); err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to delete journal entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Posts a balanced draft entry into an open fiscal period and updates account balances
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or the period is closed"
// @Failure 422 {object} map[string]string "Entry is not balanced"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/post [post]
func (h *journalEntryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.PostEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to post journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates and posts the compensating CANC entry and marks the original as reversed
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Param reversal body dto.ReverseJournalEntryRequest true "Reversal reason"
// @Success 200 {object} dto.ReverseJournalEntryResponse
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry cannot be reversed"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/reverse [post]
func (h *journalEntryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	original, reversal, err := h.entryService.ReverseEntry(c.Request.Context(), entryID, userID, req.Reason)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to reverse journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ReverseJournalEntryResponse{
		Original: dto.ToJournalEntryResponse(original),
		Reversal: dto.ToJournalEntryResponse(reversal),
	})
}

// addLine godoc
// @Summary Add a line to a draft journal entry
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Param line body dto.UpsertJournalEntryLineRequest true "Line"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid line"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/lines [post]
func (h *journalEntryHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpsertJournalEntryLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddJournalEntryLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.AddLine(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to add journal entry line")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateLine godoc
// @Summary Update a line of a draft journal entry
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Param lineID path string true "Line ID"
// @Param line body dto.UpsertJournalEntryLineRequest true "Line"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid line"
// @Failure 404 {object} map[string]string "Line not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/lines/{lineID} [put]
func (h *journalEntryHandler) updateLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	lineID := c.Param("lineID")

	var req dto.UpsertJournalEntryLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournalEntryLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.UpdateLine(c.Request.Context(), entryID, lineID, req, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID), slog.String("line_id", lineID)), err, "Failed to update journal entry line")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteLine godoc
// @Summary Delete a line of a draft journal entry
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Param lineID path string true "Line ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Line not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/lines/{lineID} [delete]
func (h *journalEntryHandler) deleteLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	lineID := c.Param("lineID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.DeleteLine(c.Request.Context(), entryID, lineID, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID), slog.String("line_id", lineID)), err, "Failed to delete journal entry line")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reorderLines godoc
// @Summary Reorder the lines of a draft journal entry
// @Description Applies the given order, or renumbers the current order densely when lineIDs is empty
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Param order body dto.ReorderJournalEntryLinesRequest false "Line order"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Line IDs are not a permutation of the entry's lines"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/lines/reorder [post]
func (h *journalEntryHandler) reorderLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ReorderJournalEntryLinesRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ReorderJournalEntryLines", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.ReorderLines(c.Request.Context(), entryID, req.LineIDs, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to reorder journal entry lines")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listBankTransactions godoc
// @Summary List bank transactions of a journal entry
// @Description Lists the bank account movements mirrored from a posted entry
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Success 200 {array} dto.BankTransactionResponse
// @Failure 500 {object} map[string]string "Failed to list bank transactions"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/bank-transactions [get]
func (h *journalEntryHandler) listBankTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	txs, err := h.bankService.ListBankTransactionsByEntry(c.Request.Context(), entryID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to list bank transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankTransactionResponses(txs))
}

// nextEntryNumber godoc
// @Summary Preview the next entry number
// @Description Reserves and returns the next {TYPE}-{YYYY}-{NNNNN} number for a type and date
// @Tags journal-entries
// @Produce json
// @Param entryType query string false "Entry type, defaults to JE"
// @Param date query string false "Entry date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid date"
// @Security BearerAuth
// @Router /entry-numbers/next [get]
func (h *journalEntryHandler) nextEntryNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	number, err := h.entryService.GenerateEntryNumber(c.Request.Context(), c.Query("entryType"), date)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate entry number")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entryNumber": number})
}

// RegisterJournalEntryRoutes registers journal entry specific routes.
func RegisterJournalEntryRoutes(rg *gin.RouterGroup, entryService portssvc.JournalEntrySvcFacade, bankService portssvc.BankTransactionReaderSvc) {
	RegisterValidators()
	h := newJournalEntryHandler(entryService, bankService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
		entries.POST("/:entryID/lines", h.addLine)
		entries.PUT("/:entryID/lines/:lineID", h.updateLine)
		entries.DELETE("/:entryID/lines/:lineID", h.deleteLine)
		entries.POST("/:entryID/lines/reorder", h.reorderLines)
		entries.GET("/:entryID/bank-transactions", h.listBankTransactions)
	}

	rg.GET("/entry-numbers/next", h.nextEntryNumber)
}
