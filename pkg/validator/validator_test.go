package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Telephone string          `validate:"required,phone"`
	Montant   decimal.Decimal `validate:"decimal_gt0"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name     string
		in       sample
		wantTags []string
	}{
		{"valid", sample{"50912345678", decimal.NewFromInt(500)}, nil},
		{"formatted phone", sample{"+509 3712-3456", decimal.NewFromInt(1)}, nil},
		{"short phone", sample{"1234", decimal.NewFromInt(1)}, []string{"phone"}},
		{"letters in phone", sample{"5091234abcd", decimal.NewFromInt(1)}, []string{"phone"}},
		{"zero amount", sample{"50912345678", decimal.Zero}, []string{"decimal_gt0"}},
		{"missing phone", sample{"", decimal.NewFromInt(-3)}, []string{"required", "decimal_gt0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.in)
			var tags []string
			for _, e := range errs {
				tags = append(tags, e.Tag)
			}
			assert.Equal(t, tt.wantTags, tags)
		})
	}
}
