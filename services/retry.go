package services

import (
	"time"

	"app-purchase-request-workflow/apperr"
)

// withRetry is the only internally-retried error path (spec.md §7):
// bounded retry with small backoff on apperr.KindConcurrentUpdate; every
// other error surfaces immediately on the first attempt.
func withRetry(attempts int, backoff time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if kind, ok := apperr.KindOf(err); !ok || kind != apperr.KindConcurrentUpdate {
			return err
		}
		if i < attempts-1 {
			time.Sleep(backoff)
		}
	}
	return err
}
