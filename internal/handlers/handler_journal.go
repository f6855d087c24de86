package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	portssvc "github.com/generalbooks/general_ledger_app/internal/core/ports/services"
	"github.com/generalbooks/general_ledger_app/internal/dto"
	"github.com/generalbooks/general_ledger_app/internal/middleware"
)

// entryHandler handles HTTP requests for journal entries.
type entryHandler struct {
	postingService   portssvc.PostingSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(postingService portssvc.PostingSvcFacade, reportingService portssvc.ReportingSvcFacade) *entryHandler {
	return &entryHandler{
		postingService:   postingService,
		reportingService: reportingService,
	}
}

// createEntry godoc
// @Summary Submit a journal entry
// @Description Validates and posts a journal entry, or saves it as a draft when ?draft=true
// @Tags entries
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param draft query bool false "Save as draft instead of posting"
// @Param entry body dto.CreateJournalEntryRequest true "Entry with lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request or validation failure"
// @Failure 422 {object} map[string]string "Entry does not balance"
// @Router /workplaces/{workplace_id}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	createReq := dto.CreateJournalEntryRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asDraft, _ := strconv.ParseBool(c.DefaultQuery("draft", "false"))

	entry, err := h.postingService.CreateEntry(c.Request.Context(), workplaceID, createReq, creatorUserID, asDraft)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create entry")
		return
	}

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.String("status", string(entry.Status)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries in a date range ordered by (entry date, journal number), paginated
// @Tags entries
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param from query string false "Start date (yyyy-mm-dd)"
// @Param to query string false "End date (yyyy-mm-dd)"
// @Param status query string false "Filter by status (DRAFT, POSTED, REVERSED)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListEntriesResponse
// @Router /workplaces/{workplace_id}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	from, ok := parseDateQuery(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to", time.Now().UTC())
	if !ok {
		return
	}

	params := dto.ListEntriesParams{FromDate: from, ToDate: to}

	if rawStatus := c.Query("status"); rawStatus != "" {
		status := domain.EntryStatus(rawStatus)
		if status != domain.Draft && status != domain.Posted && status != domain.Reversed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		params.Status = &status
	}
	if rawLimit := c.Query("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.reportingService.ListEntries(c.Request.Context(), workplaceID, params)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines, totals and balance flag
// @Tags entries
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /workplaces/{workplace_id}/entries/{entry_id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	entryID := c.Param("entry_id")

	entry, err := h.postingService.GetEntry(c.Request.Context(), workplaceID, entryID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a draft entry
// @Description Edits a draft entry's header or lines; posted entries are immutable
// @Tags entries
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Entry is no longer a draft"
// @Router /workplaces/{workplace_id}/entries/{entry_id} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	entryID := c.Param("entry_id")

	updateReq := dto.UpdateJournalEntryRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.postingService.UpdateDraftEntry(c.Request.Context(), workplaceID, entryID, updateReq, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to update entry")
		return
	}

	logger.Info("Draft entry updated", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Description Removes a draft entry; posted entries are immutable
// @Tags entries
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Entry is no longer a draft"
// @Router /workplaces/{workplace_id}/entries/{entry_id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.postingService.DeleteDraftEntry(c.Request.Context(), workplaceID, entryID, userID); err != nil {
		handleServiceError(c, logger, err, "Failed to delete entry")
		return
	}

	logger.Info("Draft entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// validateEntry godoc
// @Summary Validate an entry without posting
// @Description Reports the entry's totals and any rule violations
// @Tags entries
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} domain.ValidationResult
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /workplaces/{workplace_id}/entries/{entry_id}/validate [get]
func (h *entryHandler) validateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	entryID := c.Param("entry_id")

	result, err := h.postingService.ValidateDraft(c.Request.Context(), workplaceID, entryID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to validate entry")
		return
	}

	c.JSON(http.StatusOK, result)
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Validates the draft and transitions it to POSTED with the next journal number
// @Tags entries
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Entry already posted"
// @Failure 422 {object} map[string]string "Entry does not balance"
// @Router /workplaces/{workplace_id}/entries/{entry_id}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.postingService.PostEntry(c.Request.Context(), workplaceID, entryID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to post entry")
		return
	}

	logger.Info("Entry posted", slog.String("entry_id", entryID), slog.Int64("journal_number", entry.JournalNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Posts a mirror-image entry and marks the original REVERSED
// @Tags entries
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param entry_id path string true "Entry ID of the entry to reverse"
// @Success 201 {object} dto.JournalEntryResponse "The reversing entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry cannot be reversed"
// @Router /workplaces/{workplace_id}/entries/{entry_id}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.postingService.ReverseEntry(c.Request.Context(), workplaceID, entryID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to reverse entry")
		return
	}

	logger.Info("Entry reversed", slog.String("original_entry_id", entryID), slog.String("reversing_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// registerEntryRoutes registers journal entry routes
func registerEntryRoutes(group *gin.RouterGroup, postingService portssvc.PostingSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newEntryHandler(postingService, reportingService)

	entries := group.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.GET("/:entry_id/validate", h.validateEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
}
