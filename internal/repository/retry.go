package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/model"
)

// RetryPolicy retries transient storage failures with bounded exponential
// backoff. Permanent failures (bad credentials, duplicate keys, missing
// documents) are returned immediately.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy mirrors the connection retry settings of the original
// deployment: three attempts starting at one second, doubling each time.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2,
	}
}

// Do runs op, retrying while the error is transient and attempts remain.
// Once the budget is exhausted the last error is wrapped in
// model.ErrStorageUnavailable.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.BaseDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		log.Printf("storage attempt %d/%d failed: %v, retrying in %s", attempt, attempts, lastErr, delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}

	return fmt.Errorf("%w after %d attempts: %v", model.ErrStorageUnavailable, attempts, lastErr)
}

// isTransient reports whether an error is worth retrying. Network drops and
// timeouts are; everything else (duplicate keys, decode errors, auth
// failures, missing documents) fails fast.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, mongo.ErrNoDocuments) || mongo.IsDuplicateKeyError(err) {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
