package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Assemble merges results back into original document order and joins the
// successfully normalized texts with a blank line. Failed units are skipped
// entirely; no placeholder is inserted.
func Assemble(results []Result) string {
	sortResults(results)

	texts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		texts = append(texts, r.Text)
	}
	if len(texts) == 0 {
		return ""
	}
	return strings.Join(texts, "\n\n") + "\n"
}

// ProcessOne normalizes a single paragraph selected by its 1-based number,
// bypassing batching. Failure here is fatal, not contained.
func (p *Pipeline) ProcessOne(ctx context.Context, paragraphs []string, number int) (string, error) {
	if number < 1 || number > len(paragraphs) {
		return "", fmt.Errorf(
			"invalid paragraph number %d: document has %d paragraphs, provide a number between 1 and %d",
			number, len(paragraphs), len(paragraphs))
	}

	p.logger.Info("processing paragraph", "number", number, "total", len(paragraphs))
	return p.invoker.Invoke(ctx, paragraphs[number-1])
}

func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
}
