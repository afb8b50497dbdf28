// ABOUTME: Embedding error type covering provider failures and dimension mismatches
// ABOUTME: Retryable distinguishes timeouts/outages from permanent failures
package llm

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch indicates a vector whose dimensionality does not
// match the index. Matched with errors.Is through EmbeddingError.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// EmbeddingError indicates the embedding provider was unreachable,
// returned a malformed response, or produced a vector of the wrong
// dimension.
type EmbeddingError struct {
	Provider  string
	Retryable bool
	Err       error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding (%s): %v", e.Provider, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// embeddingErr wraps err in an EmbeddingError unless it is nil or already one.
func embeddingErr(provider string, retryable bool, err error) error {
	if err == nil {
		return nil
	}
	var ee *EmbeddingError
	if errors.As(err, &ee) {
		return err
	}
	return &EmbeddingError{Provider: provider, Retryable: retryable, Err: err}
}

// dimensionMismatch builds the mismatch error for a stored or returned vector.
func dimensionMismatch(provider string, want, got int) error {
	return &EmbeddingError{
		Provider: provider,
		Err:      fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, want, got),
	}
}
