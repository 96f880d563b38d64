package validation

import (
	"testing"

	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type saleInput struct {
	Season   int             `json:"season" validate:"required,min=1900"`
	Position string          `json:"position" validate:"required,oneof=C D F OB RK"`
	Price    decimal.Decimal `json:"price" validate:"required,price"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      saleInput
		wantErr string
	}{
		{"valid", saleInput{Season: 2024, Position: "D", Price: decimal.RequireFromString("2.50")}, ""},
		{"missing season", saleInput{Position: "D", Price: decimal.RequireFromString("1")}, "season is required"},
		{"bad position", saleInput{Season: 2024, Position: "ROOK", Price: decimal.RequireFromString("1")}, "position must be one of [C D F OB RK]"},
		{"zero price", saleInput{Season: 2024, Position: "C", Price: decimal.Zero}, "price must be a positive amount"},
		{"three decimals", saleInput{Season: 2024, Position: "C", Price: decimal.RequireFromString("1.005")}, "price must be a positive amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, drafterr.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
