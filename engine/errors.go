/*
errors.go - Centralized error types for the engine

PURPOSE:
  All engine error types in one place. The surface is deliberately small:
  parsers are total (they return absent values, not errors) and classifier
  predicates are total, so the only failure the core itself can raise is
  structural - too few raw rows to satisfy the header contract.

USAGE:
  Callers branch with errors.Is / errors.As:

    if errors.Is(err, engine.ErrDataInsufficient) {
        // 400, not 500
    }

SEE ALSO:
  - normalize.go: The one raiser of ErrDataInsufficient
  - api/handlers.go: Maps these onto HTTP status codes
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDataInsufficient is returned by the normalizer when fewer than the
	// minimum raw rows are supplied (the fixed header block alone needs 9).
	ErrDataInsufficient = errors.New("insufficient rows for fixed-layout sheet")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DataInsufficientError reports how short the input fell.
type DataInsufficientError struct {
	Rows     int // rows actually supplied
	Required int // minimum rows for the fixed layout
}

func (e *DataInsufficientError) Error() string {
	return fmt.Sprintf("insufficient data: got %d rows, need at least %d", e.Rows, e.Required)
}

func (e *DataInsufficientError) Unwrap() error {
	return ErrDataInsufficient
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrDataInsufficient)
}
