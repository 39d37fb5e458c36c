package providers

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsRateLimitError(t *testing.T) {
	base := &RateLimitError{Message: "slow down", StatusCode: 429}

	t.Run("direct", func(t *testing.T) {
		rle, ok := IsRateLimitError(base)
		if !ok || rle != base {
			t.Errorf("IsRateLimitError() = %v, %v", rle, ok)
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("call failed: %w", base)
		if _, ok := IsRateLimitError(wrapped); !ok {
			t.Error("wrapped RateLimitError not detected")
		}
	})

	t.Run("unrelated error", func(t *testing.T) {
		if _, ok := IsRateLimitError(errors.New("boom")); ok {
			t.Error("plain error misclassified")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if _, ok := IsRateLimitError(nil); ok {
			t.Error("nil misclassified")
		}
	})
}

func TestRateLimitError_Error(t *testing.T) {
	e := &RateLimitError{Message: "slow down", RetryAfter: 3 * time.Second}
	if got := e.Error(); got != "slow down (retry after 3s)" {
		t.Errorf("Error() = %q", got)
	}

	e = &RateLimitError{Message: "slow down"}
	if got := e.Error(); got != "slow down" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"7", 7 * time.Second},
		{"0", 0},
		{"-3", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}
	for _, tc := range cases {
		if got := parseRetryAfter(tc.in); got != tc.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
