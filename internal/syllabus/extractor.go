package syllabus

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"rsc.io/pdf"
)

// Extractor pulls plain text out of PDF documents. Unreadable pages are
// skipped without failing the whole document.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a PDF text extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// ExtractText returns the concatenated per-page text of a PDF blob.
func (e *Extractor) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	return e.collectText(reader), nil
}

// ExtractFile returns the concatenated per-page text of a PDF on disk.
func (e *Extractor) ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf file: %w", err)
	}
	return e.ExtractText(data)
}

func (e *Extractor) collectText(reader *pdf.Reader) string {
	var b strings.Builder
	total := reader.NumPage()
	skipped := 0

	for n := 1; n <= total; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			skipped++
			continue
		}

		content := page.Content()
		parts := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			parts = append(parts, text.S)
		}
		if len(parts) == 0 {
			skipped++
			continue
		}

		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}

	if skipped > 0 {
		e.logger.Debug("skipped unreadable pdf pages",
			zap.Int("skipped", skipped),
			zap.Int("total", total))
	}
	return b.String()
}
