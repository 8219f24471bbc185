package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumelens/internal/errors"
)

// pdfText pulls plain text from every page that carries any. Pages that
// fail to decode (typically image-only scans) are skipped; the whole
// document fails only when no page yields text.
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			"failed to parse PDF document", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
