package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified failure value.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so the
// sentinel values below work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with the status derived from its code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: HTTPStatusFor(code),
	}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Sentinels for errors.Is comparisons. Only the code is compared.
var (
	ErrBadID         = &AppError{Code: ErrCodeBadID}
	ErrUnknownID     = &AppError{Code: ErrCodeUnknownID}
	ErrWrongKind     = &AppError{Code: ErrCodeWrongKind}
	ErrFrozen        = &AppError{Code: ErrCodeFrozen}
	ErrNotFrozen     = &AppError{Code: ErrCodeNotFrozen}
	ErrBadValue      = &AppError{Code: ErrCodeBadValue}
	ErrTypeMismatch  = &AppError{Code: ErrCodeTypeMismatch}
	ErrFactoryFailed = &AppError{Code: ErrCodeFactoryFailed}
	ErrFileNotFound  = &AppError{Code: ErrCodeFileNotFound}
	ErrInvalidFormat = &AppError{Code: ErrCodeInvalidFormat}
)

// --- Constructors ---

// BadID creates a failure for an identifier that is not a valid name.
func BadID(id string) *AppError {
	return New(ErrCodeBadID, "Identifier must be a non-empty string.").
		WithDetail("id", id)
}

// UnknownID creates a failure for an id that is neither registered nor cached.
func UnknownID(id string) *AppError {
	return Newf(ErrCodeUnknownID, "Nothing defined for the id %s.", id).
		WithDetail("id", id)
}

// WrongKind creates a failure for accessing an entry of the wrong nature.
func WrongKind(id, reason string) *AppError {
	return Newf(ErrCodeWrongKind, "Entry %s %s.", id, reason).
		WithDetail("id", id)
}

// Frozen creates a failure for a mutation attempted on a frozen id.
func Frozen(id, op string) *AppError {
	return Newf(ErrCodeFrozen, "Frozen id %s can't be %s.", id, op).
		WithDetails(map[string]any{"id": id, "operation": op})
}

// NotFrozen creates a failure for unfreezing an id that is not frozen.
func NotFrozen(id string) *AppError {
	return Newf(ErrCodeNotFrozen, "Nothing to unfreeze for the id %s.", id).
		WithDetail("id", id)
}

// BadValue creates a failure for a value that violates a storage constraint.
func BadValue(id, reason string) *AppError {
	return Newf(ErrCodeBadValue, "Bad value for %s: %s.", id, reason).
		WithDetail("id", id)
}

// TypeMismatch creates a failure for a resolved value of the wrong kind.
func TypeMismatch(id, actual, expected string) *AppError {
	return Newf(ErrCodeTypeMismatch, "Retrieved object %s does not match the desired %s.", actual, expected).
		WithDetails(map[string]any{"id": id, "actual": actual, "expected": expected})
}

// FactoryFailed wraps the error returned by a factory.
func FactoryFailed(id string, cause error) *AppError {
	return Newf(ErrCodeFactoryFailed, "Factory %s failed.", id).
		WithDetail("id", id).
		WithCause(cause)
}

// InvalidInput creates a failure for invalid configuration or request input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return Newf(ErrCodeInvalidInput, "Invalid input: %s", reason).WithDetails(details)
}

// Validation creates a failure carrying a pre-built validation message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// FileNotFound creates a failure for a missing definitions file.
func FileNotFound(path string) *AppError {
	return New(ErrCodeFileNotFound, "File to load does not exist.").
		WithDetail("path", path)
}

// InvalidFormat creates a failure for a definitions file that could not be parsed.
func InvalidFormat(path string, cause error) *AppError {
	return New(ErrCodeInvalidFormat, "File to load is not a valid definitions file.").
		WithDetail("path", path).
		WithCause(cause)
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
