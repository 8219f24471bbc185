package extract

import (
	stderrors "errors"
	"strings"
	"testing"

	"resumelens/internal/errors"
)

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Format
		wantErr  bool
	}{
		{name: "pdf extension", filename: "resume.pdf", want: FormatPDF},
		{name: "uppercase extension", filename: "RESUME.PDF", want: FormatPDF},
		{name: "docx extension", filename: "resume.docx", want: FormatDOCX},
		{name: "txt extension", filename: "resume.txt", want: FormatText},
		{name: "markdown extension", filename: "resume.md", want: FormatText},
		{name: "legacy doc", filename: "resume.doc", wantErr: true},
		{name: "no extension", filename: "resume", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromFilename(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FormatFromFilename(%q) expected error, got %q", tt.filename, got)
				}
				var appErr *errors.AppError
				if !asAppError(err, &appErr) || appErr.Code != errors.ErrCodeUnsupportedDocument {
					t.Errorf("expected %s code, got %v", errors.ErrCodeUnsupportedDocument, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FormatFromFilename(%q) unexpected error: %v", tt.filename, err)
			}
			if got != tt.want {
				t.Errorf("FormatFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestFormatFromContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        Format
		wantErr     bool
	}{
		{name: "pdf", contentType: "application/pdf", want: FormatPDF},
		{name: "pdf with charset", contentType: "application/pdf; charset=binary", want: FormatPDF},
		{name: "docx", contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", want: FormatDOCX},
		{name: "plain text", contentType: "text/plain", want: FormatText},
		{name: "octet stream", contentType: "application/octet-stream", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromContentType(tt.contentType)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.contentType)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatFromContentType(%q) = %q, want %q", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestTextPlain(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{
			name: "normalizes whitespace",
			data: "  John Doe  \n\n\n  Software Engineer\t\n",
			want: "John Doe\nSoftware Engineer",
		},
		{
			name:    "whitespace only fails",
			data:    "   \n\t\n   ",
			wantErr: true,
		},
		{
			name:    "empty input fails",
			data:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text([]byte(tt.data), FormatText)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				var appErr *errors.AppError
				if !asAppError(err, &appErr) || appErr.Code != errors.ErrCodeExtractionFailed {
					t.Errorf("expected %s code, got %v", errors.ErrCodeExtractionFailed, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextUnknownFormat(t *testing.T) {
	_, err := Text([]byte("hello"), Format("rtf"))
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	var appErr *errors.AppError
	if !asAppError(err, &appErr) || appErr.Code != errors.ErrCodeUnsupportedDocument {
		t.Errorf("expected %s code, got %v", errors.ErrCodeUnsupportedDocument, err)
	}
}

func TestWordMLText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "paragraphs in order",
			content: `<w:document><w:body><w:p><w:r><w:t>John Doe</w:t></w:r></w:p><w:p><w:r><w:t>Engineer</w:t></w:r></w:p></w:body></w:document>`,
			want:    "John Doe\nEngineer\n",
		},
		{
			name:    "split runs rejoin within paragraph",
			content: `<w:p><w:r><w:t>Exp</w:t></w:r><w:r><w:t>erience</w:t></w:r></w:p>`,
			want:    "Experience\n",
		},
		{
			name:    "table cells follow document order",
			content: `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Skill</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Python</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`,
			want:    "Skill\nPython\n",
		},
		{
			name:    "explicit line break",
			content: `<w:p><w:r><w:t>one</w:t><w:br/><w:t>two</w:t></w:r></w:p>`,
			want:    "one\ntwo\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wordMLText(tt.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("wordMLText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	input := "  a  \n\n b\n"
	once := Normalize(input)
	twice := Normalize(once)
	if once != twice {
		t.Errorf("Normalize not idempotent: %q vs %q", once, twice)
	}
}

func asAppError(err error, target **errors.AppError) bool {
	return stderrors.As(err, target)
}

func BenchmarkNormalize(b *testing.B) {
	text := strings.Repeat("  line of resume text  \n\n", 200)
	for b.Loop() {
		Normalize(text)
	}
}
