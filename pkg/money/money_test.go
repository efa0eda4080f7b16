package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatGBP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "£0.00"},
		{"12", "£12.00"},
		{"999.999", "£1,000.00"},
		{"1234.56", "£1,234.56"},
		{"1234567.891", "£1,234,567.89"},
		{"-12", "-£12.00"},
		{"-0.001", "£0.00"},
		{"100000", "£100,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatGBP(decimal.RequireFromString(tt.in)))
		})
	}
}
