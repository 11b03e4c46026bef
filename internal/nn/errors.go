package nn

import (
	"errors"
	"fmt"
)

// Configuration errors. They are reported while a graph is being built or
// scheduled and are never recovered from inside the engine.
var (
	ErrDimensionMismatch      = errors.New("dimension mismatch")
	ErrSliceOutOfRange        = errors.New("slice out of range")
	ErrRecurrentNotSequential = errors.New("recurrent connection requires sequential mode")
	ErrCycle                  = errors.New("graph has a non-recurrent cycle")
	ErrUnknownModule          = errors.New("connection endpoint is not part of the network")
	ErrInvalidShape           = errors.New("invalid shape")
	ErrInvalidPermutation     = errors.New("invalid permutation")
	ErrParameterLength        = errors.New("parameter array has wrong length")
)

// ConfigError describes a rejected graph configuration.
type ConfigError struct {
	Op      string // Operation that rejected the configuration (e.g. "sort")
	Err     error  // One of the sentinel errors above
	Details string // Additional details
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Details)
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(op string, err error, format string, args ...any) *ConfigError {
	return &ConfigError{Op: op, Err: err, Details: fmt.Sprintf(format, args...)}
}
