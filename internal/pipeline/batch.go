package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Result is the outcome for a single paragraph. A non-nil Err is the
// absence-marker: the unit failed irrecoverably and carries no text.
type Result struct {
	Index int
	Text  string
	Err   error
}

// Config configures the batch scheduler.
type Config struct {
	BatchSize  int           // units dispatched concurrently per batch (default 5)
	BatchDelay time.Duration // pacing sleep between batches (default 1s)
}

// Pipeline partitions paragraphs into fixed-size batches, runs each batch's
// units concurrently through the Invoker, and returns one Result per input
// index. Batches run strictly one after another.
type Pipeline struct {
	invoker    *Invoker
	batchSize  int
	batchDelay time.Duration
	logger     *slog.Logger
}

// New creates a Pipeline.
func New(invoker *Invoker, cfg Config, logger *slog.Logger) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	if cfg.BatchDelay <= 0 {
		cfg.BatchDelay = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		invoker:    invoker,
		batchSize:  cfg.BatchSize,
		batchDelay: cfg.BatchDelay,
		logger:     logger,
	}
}

// ProcessAll normalizes every paragraph and returns results sorted by
// original index, exactly one per input. Per-unit failures are contained as
// absence-markers; they never abort the run.
func (p *Pipeline) ProcessAll(ctx context.Context, paragraphs []string) []Result {
	results := make([]Result, 0, len(paragraphs))

	for start := 0; start < len(paragraphs); start += p.batchSize {
		end := min(start+p.batchSize, len(paragraphs))
		p.logger.Info("processing batch",
			"from", start, "to", end-1, "total", len(paragraphs))

		results = append(results, p.processBatch(ctx, paragraphs[start:end], start)...)

		// Pacing between batches to keep the sustained request rate down.
		if end < len(paragraphs) {
			select {
			case <-time.After(p.batchDelay):
			case <-ctx.Done():
			}
		}
	}

	sortResults(results)
	return results
}

// processBatch dispatches one Invoke per unit concurrently. Each goroutine
// writes only its own preallocated slot, so no further locking is needed.
func (p *Pipeline) processBatch(ctx context.Context, batch []string, startIndex int) []Result {
	out := make([]Result, len(batch))

	var wg sync.WaitGroup
	for i, text := range batch {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			index := startIndex + i
			normalized, err := p.invoker.Invoke(ctx, text)
			if err != nil {
				p.logger.Warn("paragraph failed", "index", index, "error", err)
				out[i] = Result{Index: index, Err: err}
				return
			}
			out[i] = Result{Index: index, Text: normalized}
		}(i, text)
	}
	wg.Wait()

	return out
}
