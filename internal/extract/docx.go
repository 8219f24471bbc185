package extract

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"resumelens/internal/errors"
)

// docxText reads the word/document.xml body and flattens it to plain
// text in document order. Each paragraph becomes one line, which covers
// simple tables too: every cell holds its own paragraphs.
func docxText(data []byte) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			"failed to parse DOCX document", err)
	}
	defer reader.Close()

	content := reader.Editable().GetContent()
	return wordMLText(content)
}

// wordMLText walks WordprocessingML, collecting text runs and emitting a
// newline at every paragraph end.
func wordMLText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	decoder.Strict = false

	var sb strings.Builder
	var inText bool
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
				"malformed DOCX document body", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br", "cr":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
