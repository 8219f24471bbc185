package classify

import (
	"strings"

	"resumelens/internal/types"
)

// signal is one weighted keyword vote for a document type.
type signal struct {
	keyword string
	weight  int
}

// Signals are matched against lowercased text. Resume section headings
// weigh more than generic vocabulary so a cover letter that mentions
// "skills" in passing does not flip the gate.
var (
	resumeSignals = []signal{
		{"work experience", 3},
		{"professional experience", 3},
		{"education", 2},
		{"skills", 2},
		{"projects", 2},
		{"certifications", 2},
		{"objective", 1},
		{"summary", 1},
		{"achievements", 1},
		{"references", 1},
		{"experience", 1},
	}
	coverLetterSignals = []signal{
		{"dear hiring manager", 4},
		{"dear sir", 3},
		{"dear madam", 3},
		{"i am writing to", 4},
		{"i am excited to apply", 3},
		{"sincerely", 2},
		{"yours faithfully", 2},
		{"cover letter", 3},
		{"position at your company", 2},
	}
	invoiceSignals = []signal{
		{"invoice", 4},
		{"bill to", 3},
		{"amount due", 3},
		{"payment terms", 3},
		{"subtotal", 2},
		{"total due", 3},
		{"invoice number", 4},
		{"due date", 2},
	}
	reportSignals = []signal{
		{"executive summary", 3},
		{"table of contents", 3},
		{"methodology", 2},
		{"findings", 2},
		{"conclusion", 2},
		{"appendix", 2},
	}
)

// Document labels the text with its most likely document type. The gate
// never blocks the pipeline; callers flag non-resume results instead.
func Document(text string) types.Classification {
	lowered := strings.ToLower(text)

	scores := map[types.DocumentType]int{
		types.DocTypeResume:      scoreSignals(lowered, resumeSignals),
		types.DocTypeCoverLetter: scoreSignals(lowered, coverLetterSignals),
		types.DocTypeInvoice:     scoreSignals(lowered, invoiceSignals),
		types.DocTypeReport:      scoreSignals(lowered, reportSignals),
	}

	resumeScore := scores[types.DocTypeResume]
	altBest := types.DocTypeUnknown
	altScore := 0
	total := resumeScore
	// Alternatives resolve ties among themselves in fixed precedence
	// order so runs are deterministic.
	for _, dt := range []types.DocumentType{
		types.DocTypeCoverLetter,
		types.DocTypeInvoice,
		types.DocTypeReport,
	} {
		total += scores[dt]
		if scores[dt] > altScore {
			altBest = dt
			altScore = scores[dt]
		}
	}

	if resumeScore == 0 && altScore == 0 {
		// No signals at all: short texts read as letters, not resumes.
		return types.Classification{Type: types.DocTypeUnknown, Confidence: 0}
	}

	// Resume wins only on a strict margin over the strongest competing
	// label; a tie labels the text as the alternative.
	if resumeScore > altScore {
		return types.Classification{
			Type:       types.DocTypeResume,
			Confidence: float64(resumeScore) / float64(total),
		}
	}

	return types.Classification{
		Type:       altBest,
		Confidence: float64(altScore) / float64(total),
	}
}

func scoreSignals(lowered string, signals []signal) int {
	score := 0
	for _, s := range signals {
		if strings.Contains(lowered, s.keyword) {
			score += s.weight
		}
	}
	return score
}
