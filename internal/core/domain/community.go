package domain

import "time"

// CommunityStatus indicates the lifecycle state of a community.
type CommunityStatus string

const (
	CommunityActive   CommunityStatus = "ACTIVE"
	CommunityArchived CommunityStatus = "ARCHIVED" // reserved for soft-delete, no operation sets it yet
)

// MaxCommunityNameLength bounds community names; names are unique for all
// time, so a once-taken name can never be reused.
const MaxCommunityNameLength = 100

// Community is a named organizational scope owning members and records.
// The admin account is fixed at creation. TotalDonations and TotalSpending
// only ever grow, and only through record verification. MemberCount tracks
// cumulative member additions (the creator included) and is never decremented
// when a member is removed.
type Community struct {
	CommunityID    int64           `json:"communityID"`
	Name           string          `json:"name"`
	Admin          string          `json:"admin"` // creator account address, immutable
	Status         CommunityStatus `json:"status"`
	TotalDonations int64           `json:"totalDonations"` // verified donations, micro-units
	TotalSpending  int64           `json:"totalSpending"`  // verified spending, micro-units
	MemberCount    int64           `json:"memberCount"`
	CreatedAt      time.Time       `json:"createdAt"`
}
