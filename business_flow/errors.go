// Package businessflow contains the core business logic for warranty resolution and issuance
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Issuance errors
	ErrNoEligibleConstraints = errors.New("no eligible constraints for item type and cost")

	// Query errors
	ErrFilterRequired = errors.New("at least one filter field must be provided")
)

// Status messages returned to API clients for recognized business errors.
// These strings are part of the wire contract and must not change.
const (
	MsgNoSuitableCriteria = "No suitable criteria"
	MsgFilterRequired     = "Filter criteria is required"
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsNoEligibleConstraints(err error) bool {
	return errors.Is(err, ErrNoEligibleConstraints)
}

func IsFilterRequired(err error) bool {
	return errors.Is(err, ErrFilterRequired)
}
