// Package errors provides structured error handling for the dice services.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Dice errors
	CodeDiceContractViolation Code = "DICE_CONTRACT_VIOLATION"
	CodeDiceInvalidLimits     Code = "DICE_INVALID_LIMITS"
	CodeDiceMissingSource     Code = "DICE_MISSING_SOURCE"

	// Service errors
	CodeInvocationID Code = "INVOCATION_ID_UNAVAILABLE"
)

// Internal reports whether the code marks a broken invariant between
// components rather than a problem with caller input.
func (c Code) Internal() bool {
	switch c {
	case CodeDiceContractViolation, CodeDiceMissingSource, CodeInvocationID:
		return true
	default:
		return false
	}
}

// GetCode extracts the Code from an error chain, or CodeUnknown.
func GetCode(err error) Code {
	var domainErr *Error
	if As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}
