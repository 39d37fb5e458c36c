package document

import (
	"fmt"
	"os"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// headingMaxWords is the word count under which a paragraph that does not
// end in a period is treated as a heading and rendered bold.
const headingMaxWords = 10

// Write builds a styled .docx from ordered paragraph texts and saves it to
// path. Heading-like paragraphs are rendered bold.
func Write(paragraphs []string, path string) error {
	w := docx.New().WithDefaultTheme()

	for _, text := range paragraphs {
		para := w.AddParagraph()
		run := para.AddText(text)
		if isHeading(text) {
			run.Bold()
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating document %s: %w", path, err)
	}
	defer f.Close()

	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("writing document %s: %w", path, err)
	}
	return nil
}

// SplitParagraphs splits plain text into paragraphs on blank lines,
// tolerating CRLF line endings and dropping empty entries.
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}

func isHeading(text string) bool {
	return len(strings.Fields(text)) <= headingMaxWords && !strings.HasSuffix(text, ".")
}
