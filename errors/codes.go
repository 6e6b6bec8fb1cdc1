package errors

import "net/http"

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Identifier errors
const (
	// ErrCodeBadID indicates the supplied identifier is not a valid name.
	ErrCodeBadID ErrorCode = "BAD_ID"
	// ErrCodeUnknownID indicates nothing is registered or cached under the id.
	ErrCodeUnknownID ErrorCode = "UNKNOWN_ID"
	// ErrCodeWrongKind indicates an entry of the wrong nature was accessed,
	// e.g. a factory read as a plain property.
	ErrCodeWrongKind ErrorCode = "WRONG_KIND"
)

// State errors
const (
	// ErrCodeFrozen indicates a mutation was attempted on a frozen id.
	ErrCodeFrozen ErrorCode = "FROZEN"
	// ErrCodeNotFrozen indicates unfreeze was attempted on an id that is not frozen.
	ErrCodeNotFrozen ErrorCode = "NOT_FROZEN"
)

// Value errors
const (
	// ErrCodeBadValue indicates a value violates a storage constraint.
	ErrCodeBadValue ErrorCode = "BAD_VALUE"
	// ErrCodeTypeMismatch indicates a resolved value does not satisfy the required kind.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeFactoryFailed indicates a factory returned its own error.
	ErrCodeFactoryFailed ErrorCode = "FACTORY_FAILED"
	// ErrCodeInvalidInput indicates configuration or request input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Loading errors
const (
	// ErrCodeFileNotFound indicates a definitions file does not exist.
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"
	// ErrCodeInvalidFormat indicates a definitions file could not be parsed.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

var httpStatuses = map[ErrorCode]int{
	ErrCodeBadID:         http.StatusBadRequest,
	ErrCodeUnknownID:     http.StatusNotFound,
	ErrCodeWrongKind:     http.StatusUnprocessableEntity,
	ErrCodeFrozen:        http.StatusConflict,
	ErrCodeNotFrozen:     http.StatusConflict,
	ErrCodeBadValue:      http.StatusBadRequest,
	ErrCodeTypeMismatch:  http.StatusUnprocessableEntity,
	ErrCodeFactoryFailed: http.StatusInternalServerError,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeFileNotFound:  http.StatusNotFound,
	ErrCodeInvalidFormat: http.StatusBadRequest,
}

// HTTPStatusFor returns the recommended HTTP status for a code.
func HTTPStatusFor(code ErrorCode) int {
	if s, ok := httpStatuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
