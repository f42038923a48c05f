// Package errs provides the structured error type used across coldshard:
// a machine-readable code, a human message, optional details, and a CLI
// exit code, following the error-kind taxonomy of the sharing core.
package errs

import (
	"errors"
	"fmt"
	"sort"
)

// CLI exit codes.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitInput   = 2
)

// ShardError is the structured error type returned by every core component.
type ShardError struct {
	Code     string            // machine-readable error code
	Message  string            // human-readable message
	Details  map[string]string // additional context (e.g. "have", "need")
	Cause    error             // underlying error, if any
	ExitCode int               // exit code for the CLI
}

func (e *ShardError) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ShardError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is by comparing error codes.
func (e *ShardError) Is(target error) bool {
	var t *ShardError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors, one per error kind named in the sharing core's design.
var (
	ErrInvalidWordlist = &ShardError{
		Code:     "INVALID_WORDLIST",
		Message:  "word not in wordlist",
		ExitCode: ExitInput,
	}

	ErrChecksumMismatch = &ShardError{
		Code:     "CHECKSUM_MISMATCH",
		Message:  "mnemonic checksum does not match",
		ExitCode: ExitInput,
	}

	ErrInvalidSize = &ShardError{
		Code:     "INVALID_SIZE",
		Message:  "invalid byte, word, or entropy bit count",
		ExitCode: ExitInput,
	}

	ErrInvalidShareIndex = &ShardError{
		Code:     "INVALID_SHARE_INDEX",
		Message:  "share index must be in 1..255",
		ExitCode: ExitInput,
	}

	ErrDuplicateShareIndex = &ShardError{
		Code:     "DUPLICATE_SHARE_INDEX",
		Message:  "two shares have the same index",
		ExitCode: ExitInput,
	}

	ErrInconsistentShareLengths = &ShardError{
		Code:     "INCONSISTENT_SHARE_LENGTHS",
		Message:  "shares do not all have the same length",
		ExitCode: ExitInput,
	}

	ErrInsufficientShares = &ShardError{
		Code:     "INSUFFICIENT_SHARES",
		Message:  "fewer shares supplied than the threshold requires",
		ExitCode: ExitInput,
	}

	ErrCommitmentMismatch = &ShardError{
		Code:     "COMMITMENT_MISMATCH",
		Message:  "share does not match its supplied commitment",
		ExitCode: ExitInput,
	}

	ErrInsufficientEntropy = &ShardError{
		Code:     "INSUFFICIENT_ENTROPY",
		Message:  "fewer than 128 bits of entropy supplied",
		ExitCode: ExitInput,
	}

	ErrInvalidEntropyInput = &ShardError{
		Code:     "INVALID_ENTROPY_INPUT",
		Message:  "malformed entropy encoder input",
		ExitCode: ExitInput,
	}

	ErrInternalFailure = &ShardError{
		Code:     "INTERNAL_FAILURE",
		Message:  "internal self-test failed after sharing",
		ExitCode: ExitGeneral,
	}

	ErrInvalidParameters = &ShardError{
		Code:     "INVALID_PARAMETERS",
		Message:  "invalid n/t parameters",
		ExitCode: ExitInput,
	}
)

// New creates a ShardError with the given code and message.
func New(code, message string) *ShardError {
	return &ShardError{Code: code, Message: message, ExitCode: ExitGeneral}
}

// Wrap returns a copy of a sentinel with the causing error attached,
// preserving its code, message, details and exit code.
func Wrap(sentinel *ShardError, cause error) *ShardError {
	return &ShardError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Details:  sentinel.Details,
		Cause:    cause,
		ExitCode: sentinel.ExitCode,
	}
}

// WithDetails returns a copy of a sentinel error with the given details attached.
func WithDetails(sentinel *ShardError, details map[string]string) *ShardError {
	return &ShardError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Details:  details,
		Cause:    sentinel.Cause,
		ExitCode: sentinel.ExitCode,
	}
}

// ExitCode returns the exit code for an error, or ExitSuccess for nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var se *ShardError
	if errors.As(err, &se) {
		return se.ExitCode
	}
	return ExitGeneral
}

// Code returns the machine-readable code for an error.
func Code(err error) string {
	var se *ShardError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
