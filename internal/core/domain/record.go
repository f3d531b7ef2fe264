package domain

import "time"

// RecordType classifies a ledger record.
type RecordType string

const (
	RecordDonation RecordType = "DONATION"
	RecordSpending RecordType = "SPENDING"
	RecordProject  RecordType = "PROJECT"
	RecordGrant    RecordType = "GRANT"
)

// Valid reports whether the type is one of the known record types.
func (t RecordType) Valid() bool {
	switch t {
	case RecordDonation, RecordSpending, RecordProject, RecordGrant:
		return true
	}
	return false
}

// Aggregates reports whether verified records of this type fold their amount
// into a community total. Only donations and spending do; projects and grants
// change status on verification but leave the totals untouched.
func (t RecordType) Aggregates() bool {
	return t == RecordDonation || t == RecordSpending
}

// RecordStatus indicates the verification state of a record.
type RecordStatus string

const (
	RecordPending  RecordStatus = "PENDING"
	RecordVerified RecordStatus = "VERIFIED"
	RecordRejected RecordStatus = "REJECTED" // reserved, no operation sets it yet
)

// MaxRecordDescriptionLength bounds record descriptions.
const MaxRecordDescriptionLength = 500

// Record is a single income/expense/project/grant entry awaiting or having
// received verification. Amounts are integers in the smallest currency unit
// (micro-units); display scaling is a client concern. Once verified a record
// is immutable.
type Record struct {
	RecordID    int64        `json:"recordID"`
	CommunityID int64        `json:"communityID"`
	RecordType  RecordType   `json:"recordType"`
	Amount      int64        `json:"amount"` // micro-units, never negative
	Description string       `json:"description"`
	Submitter   string       `json:"submitter"`
	Timestamp   time.Time    `json:"timestamp"`
	Status      RecordStatus `json:"status"`
	VerifiedBy  *string      `json:"verifiedBy,omitempty"`
	ProjectID   *int64       `json:"projectID,omitempty"` // soft reference, not validated against existence
}
