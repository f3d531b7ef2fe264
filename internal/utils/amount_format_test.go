package utils_test

import (
	"testing"

	"github.com/stackscoop/coop_ledger_app/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestFormatMicroAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "zero", amount: 0, want: "0"},
		{name: "one display unit", amount: 1_000_000, want: "1"},
		{name: "hundred display units", amount: 100_000_000, want: "100"},
		{name: "fractional amount", amount: 1_234_500, want: "1.2345"},
		{name: "smallest micro-unit", amount: 1, want: "0.000001"},
		{name: "large amount", amount: 9_876_543_210_000, want: "9876543.21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatMicroAmount(tt.amount))
		})
	}
}
