package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/stackscoop/coop_ledger_app/internal/core/ports/services"
	"github.com/stackscoop/coop_ledger_app/internal/dto"
	"github.com/stackscoop/coop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// membershipHandler handles HTTP requests related to community memberships.
type membershipHandler struct {
	membershipService portssvc.MembershipSvcFacade
}

// registerMembershipRoutes registers membership routes under a specific community.
func registerMembershipRoutes(communityGroup *gin.RouterGroup, membershipService portssvc.MembershipSvcFacade) {
	h := &membershipHandler{membershipService: membershipService}

	members := communityGroup.Group("/members")
	{
		members.POST("", h.addMember)
		members.POST("/batch", h.addMembersBatch)
		members.GET("/:account", h.getMember)
		members.PUT("/:account", h.updateMemberRole)
		members.DELETE("/:account", h.removeMember)
		members.GET("/:account/admin", h.isAdmin)
	}
}

// addMember handles POST /communities/:community_id/members. Admin-only.
func (h *membershipHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	communityID, ok := parseCommunityID(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetAccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	membership, err := h.membershipService.AddMember(c.Request.Context(), communityID, req, caller)
	if err != nil {
		respondError(c, logger, err, "Failed to add member")
		return
	}

	logger.Info("Member added", slog.Int64("community_id", communityID), slog.String("account", req.Account))
	c.JSON(http.StatusCreated, dto.ToMembershipResponse(membership))
}

// addMembersBatch handles POST /communities/:community_id/members/batch.
// The batch is applied atomically: either every entry succeeds or none do.
func (h *membershipHandler) addMembersBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	communityID, ok := parseCommunityID(c)
	if !ok {
		return
	}

	var req dto.AddMembersBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMembersBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetAccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	added, err := h.membershipService.AddMembersBatch(c.Request.Context(), communityID, req, caller)
	if err != nil {
		respondError(c, logger, err, "Failed to add members")
		return
	}

	logger.Info("Members added in batch", slog.Int64("community_id", communityID), slog.Int("count", added))
	c.JSON(http.StatusCreated, dto.BatchAddResponse{Added: added})
}

// updateMemberRole handles PUT /communities/:community_id/members/:account. Admin-only.
func (h *membershipHandler) updateMemberRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	communityID, ok := parseCommunityID(c)
	if !ok {
		return
	}
	account := c.Param("account")

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateMemberRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetAccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.membershipService.UpdateMemberRole(c.Request.Context(), communityID, account, req.Role, caller); err != nil {
		respondError(c, logger, err, "Failed to update member role")
		return
	}

	logger.Info("Member role updated", slog.Int64("community_id", communityID), slog.String("account", account))
	c.Status(http.StatusNoContent)
}

// removeMember handles DELETE /communities/:community_id/members/:account.
// The membership is deactivated, not deleted. Admin-only.
func (h *membershipHandler) removeMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	communityID, ok := parseCommunityID(c)
	if !ok {
		return
	}
	account := c.Param("account")

	caller, ok := middleware.GetAccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.membershipService.RemoveMember(c.Request.Context(), communityID, account, caller); err != nil {
		respondError(c, logger, err, "Failed to remove member")
		return
	}

	logger.Info("Member removed", slog.Int64("community_id", communityID), slog.String("account", account))
	c.Status(http.StatusNoContent)
}

// getMember handles GET /communities/:community_id/members/:account.
func (h *membershipHandler) getMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	communityID, ok := parseCommunityID(c)
	if !ok {
		return
	}
	account := c.Param("account")

	membership, err := h.membershipService.GetMember(c.Request.Context(), communityID, account)
	if err != nil {
		respondError(c, logger, err, "Failed to get member")
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipResponse(membership))
}

// isAdmin handles GET /communities/:community_id/members/:account/admin.
func (h *membershipHandler) isAdmin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	communityID, ok := parseCommunityID(c)
	if !ok {
		return
	}
	account := c.Param("account")

	isAdmin, err := h.membershipService.IsAdmin(c.Request.Context(), communityID, account)
	if err != nil {
		respondError(c, logger, err, "Failed to check admin status")
		return
	}

	c.JSON(http.StatusOK, dto.IsAdminResponse{
		CommunityID: communityID,
		Account:     account,
		IsAdmin:     isAdmin,
	})
}
