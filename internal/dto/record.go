package dto

import (
	"time"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	"github.com/stackscoop/coop_ledger_app/internal/utils"
)

// --- Record DTOs ---

// SubmitRecordRequest defines data for submitting a new ledger record.
// Amount is a pointer so that a missing amount and an explicit zero are
// distinguishable; zero is a valid amount.
type SubmitRecordRequest struct {
	RecordType  domain.RecordType `json:"recordType" binding:"required,recordtype"`
	Amount      *int64            `json:"amount" binding:"required,min=0"`
	Description string            `json:"description" binding:"required,max=500"`
	ProjectID   *int64            `json:"projectID"`
}

// RecordResponse defines data returned for a ledger record.
type RecordResponse struct {
	RecordID      int64               `json:"recordID"`
	CommunityID   int64               `json:"communityID"`
	RecordType    domain.RecordType   `json:"recordType"`
	Amount        int64               `json:"amount"`
	AmountDisplay string              `json:"amountDisplay"`
	Description   string              `json:"description"`
	Submitter     string              `json:"submitter"`
	Timestamp     time.Time           `json:"timestamp"`
	Status        domain.RecordStatus `json:"status"`
	VerifiedBy    *string             `json:"verifiedBy,omitempty"`
	ProjectID     *int64              `json:"projectID,omitempty"`
}

// ToRecordResponse converts domain.Record to DTO.
func ToRecordResponse(r *domain.Record) RecordResponse {
	return RecordResponse{
		RecordID:      r.RecordID,
		CommunityID:   r.CommunityID,
		RecordType:    r.RecordType,
		Amount:        r.Amount,
		AmountDisplay: utils.FormatMicroAmount(r.Amount),
		Description:   r.Description,
		Submitter:     r.Submitter,
		Timestamp:     r.Timestamp,
		Status:        r.Status,
		VerifiedBy:    r.VerifiedBy,
		ProjectID:     r.ProjectID,
	}
}

// RecordCounterResponse carries the record allocator high-water mark, used by
// clients to page backward through records.
type RecordCounterResponse struct {
	Counter int64 `json:"counter"`
}
