package dto

import (
	"time"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	"github.com/stackscoop/coop_ledger_app/internal/utils"
)

// --- Community DTOs ---

// CreateCommunityRequest defines data for creating a new community.
type CreateCommunityRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CommunityResponse defines data returned for a community.
type CommunityResponse struct {
	CommunityID           int64                  `json:"communityID"`
	Name                  string                 `json:"name"`
	Admin                 string                 `json:"admin"`
	Status                domain.CommunityStatus `json:"status"`
	TotalDonations        int64                  `json:"totalDonations"`
	TotalDonationsDisplay string                 `json:"totalDonationsDisplay"`
	TotalSpending         int64                  `json:"totalSpending"`
	TotalSpendingDisplay  string                 `json:"totalSpendingDisplay"`
	MemberCount           int64                  `json:"memberCount"`
	CreatedAt             time.Time              `json:"createdAt"`
}

// ToCommunityResponse converts domain.Community to DTO.
func ToCommunityResponse(c *domain.Community) CommunityResponse {
	return CommunityResponse{
		CommunityID:           c.CommunityID,
		Name:                  c.Name,
		Admin:                 c.Admin,
		Status:                c.Status,
		TotalDonations:        c.TotalDonations,
		TotalDonationsDisplay: utils.FormatMicroAmount(c.TotalDonations),
		TotalSpending:         c.TotalSpending,
		TotalSpendingDisplay:  utils.FormatMicroAmount(c.TotalSpending),
		MemberCount:           c.MemberCount,
		CreatedAt:             c.CreatedAt,
	}
}

// CommunityIDResponse wraps a community ID lookup result.
type CommunityIDResponse struct {
	CommunityID int64 `json:"communityID"`
}

// CommunityTotalsResponse carries only the public aggregate totals.
type CommunityTotalsResponse struct {
	CommunityID           int64  `json:"communityID"`
	TotalDonations        int64  `json:"totalDonations"`
	TotalDonationsDisplay string `json:"totalDonationsDisplay"`
	TotalSpending         int64  `json:"totalSpending"`
	TotalSpendingDisplay  string `json:"totalSpendingDisplay"`
}

// ToCommunityTotalsResponse converts domain.Community to a totals DTO.
func ToCommunityTotalsResponse(c *domain.Community) CommunityTotalsResponse {
	return CommunityTotalsResponse{
		CommunityID:           c.CommunityID,
		TotalDonations:        c.TotalDonations,
		TotalDonationsDisplay: utils.FormatMicroAmount(c.TotalDonations),
		TotalSpending:         c.TotalSpending,
		TotalSpendingDisplay:  utils.FormatMicroAmount(c.TotalSpending),
	}
}
