package extract

import (
	"bytes"
	"path/filepath"
	"strings"

	"resumelens/internal/errors"
)

// Format identifies a supported input document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
)

// FormatFromFilename maps a file extension to a Format.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text", ".md":
		return FormatText, nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedDocument,
			"unsupported document type", nil).WithContext("filename", name)
	}
}

// FormatFromContentType maps a declared MIME type to a Format.
func FormatFromContentType(contentType string) (Format, error) {
	mime := contentType
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	switch strings.TrimSpace(strings.ToLower(mime)) {
	case "application/pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX, nil
	case "text/plain", "text/markdown":
		return FormatText, nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedDocument,
			"unsupported document type", nil).WithContext("content_type", contentType)
	}
}

// Text extracts plain text from a document. The returned text is
// normalized: lines trimmed, blank lines dropped, newline-joined. A
// document from which no text can be recovered yields an extraction
// error rather than an empty string.
func Text(data []byte, format Format) (string, error) {
	if len(data) == 0 {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			"document is empty", nil)
	}

	var raw string
	var err error
	switch format {
	case FormatPDF:
		raw, err = pdfText(data)
	case FormatDOCX:
		raw, err = docxText(data)
	case FormatText:
		raw = string(bytes.ToValidUTF8(data, []byte("")))
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedDocument,
			"unsupported document type", nil).WithContext("format", string(format))
	}
	if err != nil {
		return "", err
	}

	text := Normalize(raw)
	if text == "" {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			"could not extract any text from document", nil).
			WithContext("format", string(format))
	}
	return text, nil
}

// Normalize trims every line, drops blanks, and rejoins with newlines.
func Normalize(raw string) string {
	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
