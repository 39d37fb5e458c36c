// Package document reads and writes Word (.docx) files, exposing them to the
// pipeline as ordered plain-text paragraphs.
package document

import (
	"fmt"
	"os"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// Read extracts the ordered sequence of non-empty paragraph texts from a
// .docx file. A missing file wraps os.ErrNotExist.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("the file %s does not exist: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}

	var paragraphs []string
	for _, it := range doc.Document.Body.Items {
		para, ok := it.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := strings.TrimSpace(para.String())
		if text == "" {
			continue
		}
		paragraphs = append(paragraphs, text)
	}
	return paragraphs, nil
}
