// ABOUTME: Query error type for requests that are invalid after sanitization
// ABOUTME: Rare by design; sanitization repairs rather than rejects
package search

import "fmt"

// QueryError indicates an unusable query or search parameter. Empty and
// stopword-only queries are not errors (they yield empty results); this
// is reserved for genuinely invalid input such as out-of-range weights.
type QueryError struct {
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query: %s", e.Reason)
}
