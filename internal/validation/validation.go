// Package validation holds the caller-input checks shared by the API
// endpoints. Errors name the offending field so they can go straight into
// the response body.
package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Amount parses value as a positive amount. JSON numbers and numeric
// strings are accepted; anything missing, non-numeric, or not strictly
// greater than zero is rejected.
func Amount(field string, value any) (decimal.Decimal, error) {
	var amount decimal.Decimal
	switch v := value.(type) {
	case nil:
		return decimal.Decimal{}, fmt.Errorf("%s is required", field)
	case float64:
		amount = decimal.NewFromFloat(v)
	case int:
		amount = decimal.NewFromInt(int64(v))
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Decimal{}, fmt.Errorf("%s is required", field)
		}
		parsed, err := decimal.NewFromString(trimmed)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%s must be a number", field)
		}
		amount = parsed
	default:
		return decimal.Decimal{}, fmt.Errorf("%s must be a number", field)
	}

	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%s must be greater than 0", field)
	}
	return amount, nil
}

// Required trims value and rejects blanks.
func Required(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return trimmed, nil
}

// OrderID returns the caller-supplied order number, or a generated
// 20-character token when blank. Uniqueness of caller-supplied ids is the
// caller's responsibility.
func OrderID(candidate string) string {
	if trimmed := strings.TrimSpace(candidate); trimmed != "" {
		return trimmed
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}
