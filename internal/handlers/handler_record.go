package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/stackscoop/coop_ledger_app/internal/core/ports/services"
	"github.com/stackscoop/coop_ledger_app/internal/dto"
	"github.com/stackscoop/coop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recordHandler handles HTTP requests related to ledger records.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

// registerCommunityRecordRoutes registers record submission under a specific
// community.
func registerCommunityRecordRoutes(communityGroup *gin.RouterGroup, recordService portssvc.RecordSvcFacade) {
	h := &recordHandler{recordService: recordService}

	communityGroup.POST("/records", h.submitRecord)
}

// registerRecordRoutes registers record routes addressed by record id.
func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade) {
	h := &recordHandler{recordService: recordService}

	records := rg.Group("/records")
	{
		records.GET("/counter", h.getRecordCounter)
		records.GET("/:record_id", h.getRecord)
		records.POST("/:record_id/verify", h.verifyRecord)
	}
}

// parseRecordID parses the record_id path parameter.
func parseRecordID(c *gin.Context) (int64, bool) {
	recordID, err := strconv.ParseInt(c.Param("record_id"), 10, 64)
	if err != nil || recordID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return 0, false
	}
	return recordID, true
}

// submitRecord handles POST /communities/:community_id/records. The record is
// created in PENDING status and does not affect totals until verified.
func (h *recordHandler) submitRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	communityID, ok := parseCommunityID(c)
	if !ok {
		return
	}

	var req dto.SubmitRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	submitter, ok := middleware.GetAccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.recordService.SubmitRecord(c.Request.Context(), communityID, req, submitter)
	if err != nil {
		respondError(c, logger, err, "Failed to submit record")
		return
	}

	logger.Info("Record submitted",
		slog.Int64("record_id", record.RecordID),
		slog.Int64("community_id", communityID),
		slog.String("record_type", string(record.RecordType)),
	)
	c.JSON(http.StatusCreated, dto.ToRecordResponse(record))
}

// verifyRecord handles POST /records/:record_id/verify. Admin-only; a record
// is verified at most once.
func (h *recordHandler) verifyRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	recordID, ok := parseRecordID(c)
	if !ok {
		return
	}

	verifier, ok := middleware.GetAccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.recordService.VerifyRecord(c.Request.Context(), recordID, verifier); err != nil {
		respondError(c, logger, err, "Failed to verify record")
		return
	}

	logger.Info("Record verified", slog.Int64("record_id", recordID), slog.String("verified_by", verifier))
	c.Status(http.StatusNoContent)
}

// getRecord handles GET /records/:record_id.
func (h *recordHandler) getRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	recordID, ok := parseRecordID(c)
	if !ok {
		return
	}

	record, err := h.recordService.GetRecordByID(c.Request.Context(), recordID)
	if err != nil {
		respondError(c, logger, err, "Failed to get record")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// getRecordCounter handles GET /records/counter. The counter is the number of
// records ever created; ids run from 1 through the counter.
func (h *recordHandler) getRecordCounter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	counter, err := h.recordService.GetRecordCounter(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to read record counter")
		return
	}

	c.JSON(http.StatusOK, dto.RecordCounterResponse{Counter: counter})
}
