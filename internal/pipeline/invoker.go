package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"docnorm/internal/providers"
)

// ErrRetriesExhausted marks a unit that kept being throttled until the retry
// budget ran out. Distinct from a hard provider rejection so callers can tell
// "gave up after backoff" from "rejected outright".
var ErrRetriesExhausted = errors.New("rate limit retries exhausted")

const normalizeInstructions = `Please reformat the following text according to these rules:

1. Convert to standard sentence case (first letter of sentences capitalized)
2. Properly capitalize proper nouns, names, and titles
3. Maintain appropriate capitalization for acronyms and initialisms
4. Format dialogue and quotations correctly

Important: Preserve all original formatting, spacing, and paragraph structure.
Only modify capitalization - do not change any words or punctuation.
Do not provide any additional commentary.

Text to process: %s

Formatted text:`

// InvokerConfig configures the retry policy for a single normalization call.
type InvokerConfig struct {
	MaxRetries int           // retries after the initial attempt (default 3)
	RetryDelay time.Duration // backoff base; delays are base, 2x, 4x, ... (default 1s)
}

// Invoker wraps one call to the remote normalizer with bounded
// exponential-backoff retry on throttling. Any other provider error fails
// immediately.
type Invoker struct {
	client     providers.LLMClient
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewInvoker creates an Invoker around the given client.
func NewInvoker(client providers.LLMClient, cfg InvokerConfig, logger *slog.Logger) *Invoker {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{
		client:     client,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

// Invoke normalizes one paragraph. It blocks for backoff sleeps on
// throttling and mutates no shared state.
func (inv *Invoker) Invoke(ctx context.Context, text string) (string, error) {
	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "user", Content: fmt.Sprintf(normalizeInstructions, text)},
		},
	}

	var content string
	err := retry.Do(
		func() error {
			res, err := inv.client.Chat(ctx, req)
			if err != nil {
				return err
			}
			content = strings.TrimSpace(res.Content)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(inv.maxRetries)+1),
		retry.Delay(inv.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			_, throttled := providers.IsRateLimitError(err)
			return throttled
		}),
		retry.OnRetry(func(n uint, err error) {
			inv.logger.Warn("rate limit hit, backing off",
				"attempt", n+1, "max_retries", inv.maxRetries, "error", err)
		}),
	)
	if err != nil {
		if _, throttled := providers.IsRateLimitError(err); throttled {
			return "", fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, inv.maxRetries+1, err)
		}
		return "", err
	}
	return content, nil
}
