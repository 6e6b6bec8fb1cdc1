// Package errors provides the tagged failure values returned by the faber
// container and its collaborators.
//
// Every failure is an *AppError carrying a machine-readable ErrorCode, a
// human-readable message, and optional details such as the offending id.
// Failures are plain values: nothing in faber panics on a bad id or a frozen
// entry, callers inspect the code instead.
//
//	if errors.HasCode(err, errors.ErrCodeFrozen) {
//	    // entry is pinned
//	}
package errors
