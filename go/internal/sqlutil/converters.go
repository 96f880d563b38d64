package sqlutil

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sqlc-dev/pqtype"
)

// Helper functions for converting between Go types and the nullable/numeric
// column types used by the generated queries

// ToNullRawMessage marshals v into a nullable JSONB value. A nil v is NULL.
func ToNullRawMessage(v any) (pqtype.NullRawMessage, error) {
	if v == nil {
		return pqtype.NullRawMessage{Valid: false}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return pqtype.NullRawMessage{}, fmt.Errorf("failed to marshal json column: %w", err)
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}, nil
}

// FromNullRawMessage returns the raw JSON or nil when NULL
func FromNullRawMessage(val pqtype.NullRawMessage) json.RawMessage {
	if !val.Valid {
		return nil
	}
	return val.RawMessage
}

// Money rounds a price to the two decimal places of a NUMERIC(4,2) column
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
