package dto

import (
	"time"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
)

// --- Membership DTOs ---

// AddMemberRequest defines data for adding an account to a community.
type AddMemberRequest struct {
	Account string               `json:"account" binding:"required,max=128"`
	Role    domain.CommunityRole `json:"role" binding:"required,communityrole"`
}

// BatchMemberEntry is one (account, role) pair in a batch addition.
type BatchMemberEntry struct {
	Account string               `json:"account" binding:"required,max=128"`
	Role    domain.CommunityRole `json:"role" binding:"required,communityrole"`
}

// AddMembersBatchRequest defines data for adding several members atomically.
type AddMembersBatchRequest struct {
	Members []BatchMemberEntry `json:"members" binding:"required,min=1,max=50,dive"`
}

// UpdateMemberRoleRequest defines data for changing a member's role.
type UpdateMemberRoleRequest struct {
	Role domain.CommunityRole `json:"role" binding:"required,communityrole"`
}

// MembershipResponse defines data returned about a community membership.
type MembershipResponse struct {
	CommunityID int64                `json:"communityID"`
	Account     string               `json:"account"`
	Role        domain.CommunityRole `json:"role"`
	Active      bool                 `json:"active"`
	JoinedAt    time.Time            `json:"joinedAt"`
}

// ToMembershipResponse converts domain.Membership to DTO.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		CommunityID: m.CommunityID,
		Account:     m.Account,
		Role:        m.Role,
		Active:      m.Active,
		JoinedAt:    m.JoinedAt,
	}
}

// BatchAddResponse reports how many members a batch addition created.
type BatchAddResponse struct {
	Added int `json:"added"`
}

// IsAdminResponse reports whether an account is an effective admin.
type IsAdminResponse struct {
	CommunityID int64  `json:"communityID"`
	Account     string `json:"account"`
	IsAdmin     bool   `json:"isAdmin"`
}
