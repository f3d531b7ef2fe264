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

// communityHandler handles HTTP requests related to communities.
type communityHandler struct {
	communityService portssvc.CommunitySvcFacade
}

// newCommunityHandler creates a new communityHandler.
func newCommunityHandler(cs portssvc.CommunitySvcFacade) *communityHandler {
	return &communityHandler{
		communityService: cs,
	}
}

// registerCommunityRoutes registers routes related to communities. Membership
// and record routes nested under a specific community are registered here too.
func registerCommunityRoutes(rg *gin.RouterGroup, communityService portssvc.CommunitySvcFacade, membershipService portssvc.MembershipSvcFacade, recordService portssvc.RecordSvcFacade) {
	h := newCommunityHandler(communityService)

	communities := rg.Group("/communities")
	{
		communities.POST("", h.createCommunity)
		communities.GET("/by-name/:name", h.getCommunityIDByName)
	}

	communitySpecific := rg.Group("/communities/:community_id")
	{
		communitySpecific.GET("", h.getCommunity)
		communitySpecific.GET("/totals", h.getCommunityTotals)

		registerMembershipRoutes(communitySpecific, membershipService)
		registerCommunityRecordRoutes(communitySpecific, recordService)
	}
}

// parseCommunityID parses the community_id path parameter.
func parseCommunityID(c *gin.Context) (int64, bool) {
	communityID, err := strconv.ParseInt(c.Param("community_id"), 10, 64)
	if err != nil || communityID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID"})
		return 0, false
	}
	return communityID, true
}

// createCommunity handles POST /communities. The caller becomes the
// community's fixed admin and first member.
func (h *communityHandler) createCommunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCommunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creator, ok := middleware.GetAccountFromContext(c)
	if !ok {
		logger.Error("Creator account not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	community, err := h.communityService.CreateCommunity(c.Request.Context(), req, creator)
	if err != nil {
		respondError(c, logger, err, "Failed to create community")
		return
	}

	logger.Info("Community created", slog.Int64("community_id", community.CommunityID))
	c.JSON(http.StatusCreated, dto.ToCommunityResponse(community))
}

// getCommunity handles GET /communities/:community_id.
func (h *communityHandler) getCommunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	communityID, ok := parseCommunityID(c)
	if !ok {
		return
	}

	community, err := h.communityService.GetCommunityByID(c.Request.Context(), communityID)
	if err != nil {
		respondError(c, logger, err, "Failed to get community")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommunityResponse(community))
}

// getCommunityIDByName handles GET /communities/by-name/:name.
func (h *communityHandler) getCommunityIDByName(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	name := c.Param("name")
	communityID, err := h.communityService.GetCommunityIDByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, logger, err, "Failed to look up community by name")
		return
	}

	c.JSON(http.StatusOK, dto.CommunityIDResponse{CommunityID: communityID})
}

// getCommunityTotals handles GET /communities/:community_id/totals, exposing
// the public verified aggregates.
func (h *communityHandler) getCommunityTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	communityID, ok := parseCommunityID(c)
	if !ok {
		return
	}

	community, err := h.communityService.GetCommunityByID(c.Request.Context(), communityID)
	if err != nil {
		respondError(c, logger, err, "Failed to get community totals")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommunityTotalsResponse(community))
}
