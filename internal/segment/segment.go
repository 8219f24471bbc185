package segment

import (
	"regexp"
	"strings"

	"resumelens/internal/types"
)

// headingRule binds a heading pattern to its canonical section. Rules are
// evaluated in order and the first match wins, so more specific patterns
// sit above generic ones.
type headingRule struct {
	pattern *regexp.Regexp
	section types.Section
}

var headingRules = []headingRule{
	{regexp.MustCompile(`(?i)^(work|professional|employment)\s+(experience|history)\b`), types.SectionExperience},
	{regexp.MustCompile(`(?i)^(career\s+history|experience)\b`), types.SectionExperience},
	{regexp.MustCompile(`(?i)^(technical\s+skills|core\s+competencies|skills|technologies)\b`), types.SectionSkills},
	{regexp.MustCompile(`(?i)^(education|academic\s+background|qualifications)\b`), types.SectionEducation},
	{regexp.MustCompile(`(?i)^(personal\s+projects|projects|portfolio)\b`), types.SectionProjects},
	{regexp.MustCompile(`(?i)^(professional\s+summary|career\s+summary|summary|profile|objective|about\s+me)\b`), types.SectionSummary},
	{regexp.MustCompile(`(?i)^(contact|contact\s+information|personal\s+details)\b`), types.SectionContact},
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	urlPattern   = regexp.MustCompile(`(?i)\b(linkedin\.com|github\.com|https?://|www\.)\S*`)
)

// Sections splits normalized resume text into the canonical section map.
// Every canonical key is present in the result. Text before the first
// recognized heading is split between contact and summary; a document
// with no recognized headings lands entirely in summary (contact lines
// excepted). Repeated headings concatenate.
func Sections(text string) types.ResumeSections {
	sections := types.NewResumeSections()
	lines := strings.Split(text, "\n")

	current := types.Section("")
	var preamble []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if sec, rest, ok := matchHeading(trimmed); ok {
			current = sec
			// Heading text itself is structure, not content, but inline
			// content after a heading colon ("Skills: Go, SQL") is kept.
			if rest != "" {
				appendLine(sections, current, rest)
			}
			continue
		}
		if current == "" {
			preamble = append(preamble, trimmed)
			continue
		}
		appendLine(sections, current, trimmed)
	}

	contact, summary := splitPreamble(preamble)
	if contact != "" {
		prependBlock(sections, types.SectionContact, contact)
	}
	if summary != "" {
		prependBlock(sections, types.SectionSummary, summary)
	}

	return sections
}

// matchHeading reports whether a line is a section heading and returns
// any inline content after a heading colon. Headings are short lines; a
// long prose line that happens to start with "experience" is content.
func matchHeading(line string) (types.Section, string, bool) {
	head, rest := line, ""
	if i := strings.Index(line, ":"); i >= 0 {
		head, rest = line[:i], strings.TrimSpace(line[i+1:])
	}
	head = strings.TrimSpace(head)
	if len(strings.Fields(head)) > 4 {
		return "", "", false
	}
	for _, rule := range headingRules {
		if rule.pattern.MatchString(head) {
			return rule.section, rest, true
		}
	}
	return "", "", false
}

// splitPreamble sorts pre-heading lines into contact material and
// summary prose. Emails, phones, links and short name-like lines at the
// top read as contact; everything else is summary.
func splitPreamble(lines []string) (contact, summary string) {
	var contactLines, summaryLines []string
	for i, line := range lines {
		if isContactLine(line, i) {
			contactLines = append(contactLines, line)
		} else {
			summaryLines = append(summaryLines, line)
		}
	}
	return strings.Join(contactLines, "\n"), strings.Join(summaryLines, "\n")
}

func isContactLine(line string, index int) bool {
	if emailPattern.MatchString(line) || phonePattern.MatchString(line) || urlPattern.MatchString(line) {
		return true
	}
	// Short lines near the top are names, titles, locations.
	if index < 3 && len(strings.Fields(line)) <= 5 && !strings.HasSuffix(line, ".") {
		return true
	}
	return false
}

func appendLine(sections types.ResumeSections, sec types.Section, line string) {
	if sections[sec] == "" {
		sections[sec] = line
		return
	}
	sections[sec] += "\n" + line
}

func prependBlock(sections types.ResumeSections, sec types.Section, block string) {
	if sections[sec] == "" {
		sections[sec] = block
		return
	}
	sections[sec] = block + "\n" + sections[sec]
}
