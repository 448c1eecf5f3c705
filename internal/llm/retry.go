package llm

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Retry runs fn up to attempts times with exponential backoff starting at
// base. The context cancels waits between attempts.
func Retry(ctx context.Context, attempts int, base time.Duration, fn func(ctx context.Context) error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			delay := base << (i - 1)
			log.Printf("[LLM] Retry %d/%d after %s: %v", i, attempts-1, delay, lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
