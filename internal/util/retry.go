// ABOUTME: Retry utilities for network-bound provider calls
// ABOUTME: Exponential backoff with jitter, shared by embedding and chat clients
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps the delay between retries regardless of attempt count.
const maxBackoff = 30 * time.Second

// CalculateBackoff returns the delay before the given retry attempt:
// base delay doubled per attempt, capped at maxBackoff, with random
// jitter of up to ±25%. Attempt 0 (the initial call) waits nothing.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in the bit shift
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
