package providers

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// RateLimitError signals that the provider throttled the request. Callers
// may retry after a backoff; every other provider error is a hard rejection.
type RateLimitError struct {
	Message    string
	StatusCode int
	RetryAfter time.Duration // zero if the provider gave no hint
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
	}
	return e.Message
}

// IsRateLimitError reports whether err (or anything it wraps) is a
// RateLimitError.
func IsRateLimitError(err error) (*RateLimitError, bool) {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return rle, true
	}
	return nil, false
}

// parseRetryAfter parses a Retry-After header value given in whole seconds.
// HTTP-date forms are ignored.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
