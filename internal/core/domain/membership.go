package domain

import "time"

// CommunityRole defines the possible roles an account can hold within a community.
type CommunityRole string

const (
	RoleAdmin       CommunityRole = "ADMIN"
	RoleContributor CommunityRole = "CONTRIBUTOR"
	RoleViewer      CommunityRole = "VIEWER"
)

// Valid reports whether the role is one of the known community roles.
func (r CommunityRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleContributor, RoleViewer:
		return true
	}
	return false
}

// Membership binds one account to one community with a role. Removal flips
// Active to false; the row itself is never deleted, so history survives.
type Membership struct {
	CommunityID int64         `json:"communityID"`
	Account     string        `json:"account"`
	Role        CommunityRole `json:"role"`
	Active      bool          `json:"active"`
	JoinedAt    time.Time     `json:"joinedAt"`
}
