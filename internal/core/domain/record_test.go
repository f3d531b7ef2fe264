package domain_test

import (
	"testing"

	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRecordType_Valid(t *testing.T) {
	tests := []struct {
		name       string
		recordType domain.RecordType
		want       bool
	}{
		{name: "donation", recordType: domain.RecordDonation, want: true},
		{name: "spending", recordType: domain.RecordSpending, want: true},
		{name: "project", recordType: domain.RecordProject, want: true},
		{name: "grant", recordType: domain.RecordGrant, want: true},
		{name: "unknown type", recordType: "LOTTERY", want: false},
		{name: "empty type", recordType: "", want: false},
		{name: "lowercase is not accepted", recordType: "donation", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.recordType.Valid())
		})
	}
}

func TestRecordType_Aggregates(t *testing.T) {
	tests := []struct {
		name       string
		recordType domain.RecordType
		want       bool
	}{
		{name: "donation counts into totals", recordType: domain.RecordDonation, want: true},
		{name: "spending counts into totals", recordType: domain.RecordSpending, want: true},
		{name: "project is tracked only", recordType: domain.RecordProject, want: false},
		{name: "grant is tracked only", recordType: domain.RecordGrant, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.recordType.Aggregates())
		})
	}
}

func TestCommunityRole_Valid(t *testing.T) {
	tests := []struct {
		name string
		role domain.CommunityRole
		want bool
	}{
		{name: "admin", role: domain.RoleAdmin, want: true},
		{name: "contributor", role: domain.RoleContributor, want: true},
		{name: "viewer", role: domain.RoleViewer, want: true},
		{name: "unknown role", role: "OVERLORD", want: false},
		{name: "empty role", role: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Valid())
		})
	}
}
