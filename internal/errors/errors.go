// Package errors defines the domain error types shared across services.
package errors

import "fmt"

// DomainError is a business-level failure with a stable code. Gateway
// rejections carry the provider's sub_code and sub_msg here.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
