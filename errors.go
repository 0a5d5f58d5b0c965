// Structured error types for kernel-engine failures.

package matsolve

import (
	"fmt"
)

// ErrorType represents categories of solver errors
type ErrorType int

const (
	// Incompatible inner dimensions
	ErrTypeDimension ErrorType = iota
	// Unknown precision tag
	ErrTypePrecision
	// Unknown workload type
	ErrTypeWorkload
	// Bad seed encoding
	ErrTypeSeed
	// Malformed input matrices
	ErrTypeInput
	// Aligned allocation failures
	ErrTypeMemory
)

// SolveError represents a structured error with context.
// Every failure in the engine is a local validation failure detected before
// or during computation; none are retryable, since compute is a pure
// deterministic function of its input.
type SolveError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *SolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("matsolve %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("matsolve %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *SolveError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeDimension:
		return "DimensionMismatch"
	case ErrTypePrecision:
		return "UnsupportedPrecision"
	case ErrTypeWorkload:
		return "UnsupportedWorkload"
	case ErrTypeSeed:
		return "InvalidSeed"
	case ErrTypeInput:
		return "MalformedInput"
	case ErrTypeMemory:
		return "AllocationFailed"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewDimensionError creates a dimension mismatch error
func NewDimensionError(op string, message string) error {
	return &SolveError{
		Type:    ErrTypeDimension,
		Op:      op,
		Message: message,
	}
}

// NewPrecisionError creates an unsupported precision error
func NewPrecisionError(op string, precision Precision) error {
	return &SolveError{
		Type:    ErrTypePrecision,
		Op:      op,
		Message: fmt.Sprintf("unsupported precision: %q (expected fp32, fp16, int8 or u8i8)", precision),
	}
}

// NewWorkloadError creates an unsupported workload error
func NewWorkloadError(op string, workload string) error {
	return &SolveError{
		Type:    ErrTypeWorkload,
		Op:      op,
		Message: fmt.Sprintf("unsupported workload type: %q (only \"matmul\" is supported)", workload),
	}
}

// NewSeedError creates an invalid seed error
func NewSeedError(op string, message string, err error) error {
	return &SolveError{
		Type:    ErrTypeSeed,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a malformed input error
func NewInputError(op string, message string) error {
	return &SolveError{
		Type:    ErrTypeInput,
		Op:      op,
		Message: message,
	}
}

// NewMemoryError creates an allocation error
func NewMemoryError(op string, message string, err error) error {
	return &SolveError{
		Type:    ErrTypeMemory,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Common pre-defined errors

var (
	// ErrDoubleFree indicates a second release of an aligned buffer
	ErrDoubleFree = NewMemoryError("Free", "buffer already released", nil)
)

// errType reports whether err is a SolveError of the given type
func errType(err error, t ErrorType) bool {
	if e, ok := err.(*SolveError); ok {
		return e.Type == t
	}
	return false
}

// IsDimensionError checks if an error is a dimension mismatch
func IsDimensionError(err error) bool { return errType(err, ErrTypeDimension) }

// IsPrecisionError checks if an error is an unsupported precision error
func IsPrecisionError(err error) bool { return errType(err, ErrTypePrecision) }

// IsWorkloadError checks if an error is an unsupported workload error
func IsWorkloadError(err error) bool { return errType(err, ErrTypeWorkload) }

// IsSeedError checks if an error is an invalid seed error
func IsSeedError(err error) bool { return errType(err, ErrTypeSeed) }

// IsInputError checks if an error is a malformed input error
func IsInputError(err error) bool { return errType(err, ErrTypeInput) }

// IsMemoryError checks if an error is an allocation error
func IsMemoryError(err error) bool { return errType(err, ErrTypeMemory) }
