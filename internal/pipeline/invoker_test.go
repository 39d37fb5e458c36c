package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"docnorm/internal/providers"
)

func TestInvoker_Invoke(t *testing.T) {
	t.Run("successful call", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.Respond = func(req *providers.ChatRequest) (string, error) {
			if len(req.Messages) != 1 {
				t.Fatalf("messages = %d, want 1", len(req.Messages))
			}
			prompt := req.Messages[0].Content
			if !strings.Contains(prompt, "Text to process: hello world") {
				t.Errorf("prompt missing unit text: %q", prompt)
			}
			if !strings.Contains(prompt, "Only modify capitalization") {
				t.Errorf("prompt missing preservation instruction")
			}
			return "Hello world.\n", nil
		}

		inv := NewInvoker(mock, InvokerConfig{RetryDelay: time.Millisecond}, nil)
		got, err := inv.Invoke(context.Background(), "hello world")
		if err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		if got != "Hello world." {
			t.Errorf("Invoke() = %q, want trimmed %q", got, "Hello world.")
		}
		if mock.RequestCount() != 1 {
			t.Errorf("RequestCount = %d, want 1", mock.RequestCount())
		}
	})

	t.Run("throttling exhausts retries", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ThrottleAll = true

		inv := NewInvoker(mock, InvokerConfig{MaxRetries: 3, RetryDelay: time.Millisecond}, nil)
		_, err := inv.Invoke(context.Background(), "text")
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, ErrRetriesExhausted) {
			t.Errorf("error = %v, want ErrRetriesExhausted", err)
		}
		if _, ok := providers.IsRateLimitError(err); !ok {
			t.Errorf("exhaustion should still expose the underlying RateLimitError")
		}
		// Initial attempt plus three retries.
		if mock.RequestCount() != 4 {
			t.Errorf("RequestCount = %d, want 4", mock.RequestCount())
		}
	})

	t.Run("backoff doubles per retry", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ThrottleAll = true

		base := 20 * time.Millisecond
		inv := NewInvoker(mock, InvokerConfig{MaxRetries: 3, RetryDelay: base}, nil)

		start := time.Now()
		_, err := inv.Invoke(context.Background(), "text")
		elapsed := time.Since(start)

		if !errors.Is(err, ErrRetriesExhausted) {
			t.Fatalf("error = %v, want ErrRetriesExhausted", err)
		}
		// Delays base*1 + base*2 + base*4 = 7*base.
		if want := 7 * base; elapsed < want {
			t.Errorf("elapsed = %v, want at least %v", elapsed, want)
		}
		if elapsed > time.Second {
			t.Errorf("elapsed = %v, backoff took far too long", elapsed)
		}
	})

	t.Run("throttling then success", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ThrottleFirst = 2
		mock.ResponseText = "Recovered."

		inv := NewInvoker(mock, InvokerConfig{MaxRetries: 3, RetryDelay: time.Millisecond}, nil)
		got, err := inv.Invoke(context.Background(), "text")
		if err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		if got != "Recovered." {
			t.Errorf("Invoke() = %q", got)
		}
		if mock.RequestCount() != 3 {
			t.Errorf("RequestCount = %d, want 3", mock.RequestCount())
		}
	})

	t.Run("non-throttle error fails immediately", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.Err = errors.New("model rejected the request")

		inv := NewInvoker(mock, InvokerConfig{MaxRetries: 3, RetryDelay: time.Millisecond}, nil)
		_, err := inv.Invoke(context.Background(), "text")
		if err == nil {
			t.Fatal("expected error")
		}
		if errors.Is(err, ErrRetriesExhausted) {
			t.Errorf("hard rejection must not report retry exhaustion: %v", err)
		}
		if mock.RequestCount() != 1 {
			t.Errorf("RequestCount = %d, want 1 (zero retries)", mock.RequestCount())
		}
	})
}
