package alipay

import (
	"encoding/json"
	"fmt"

	appErrors "qrpay/internal/errors"
)

// The gateway's business success sentinel, distinct from HTTP status.
const successCode = "10000"

// Result is the decoded business payload of a gateway response envelope.
type Result map[string]any

// String returns the value under key when it is a string, else "".
func (r Result) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// ParseResponse decodes a gateway response body and unwraps the business
// result under envelopeKey. When the key is absent the top-level object is
// treated as the result, which covers the gateway's error_response shape.
// A business code other than "10000" is returned as a *errors.DomainError
// carrying sub_code and sub_msg.
func ParseResponse(body []byte, envelopeKey string) (Result, error) {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected gateway response %q: %w", body, err)
	}

	result := Result(envelope)
	if nested, ok := envelope[envelopeKey].(map[string]any); ok {
		result = Result(nested)
	}

	if code := result.String("code"); code != "" && code != successCode {
		msg := result.String("sub_msg")
		if msg == "" {
			msg = result.String("msg")
		}
		errCode := result.String("sub_code")
		if errCode == "" {
			errCode = code
		}
		return nil, &appErrors.DomainError{Code: errCode, Message: msg}
	}

	return result, nil
}
