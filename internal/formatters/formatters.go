package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "AIAnalysisOutput", &AIAnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AIAnalysisOutput", &AIAnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "JobMatchOutput", &JobMatchTextFormatter{})
	registry.RegisterFormatter("markdown", "JobMatchOutput", &JobMatchMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult, *types.AnalysisResult:
		return "AnalysisResult"
	case types.AIAnalysisOutput:
		return "AIAnalysisOutput"
	case types.JobMatchOutput:
		return "JobMatchOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func asAnalysisResult(data any) (types.AnalysisResult, bool) {
	switch v := data.(type) {
	case types.AnalysisResult:
		return v, true
	case *types.AnalysisResult:
		return *v, true
	default:
		return types.AnalysisResult{}, false
	}
}

// AnalysisTextFormatter handles text formatting for local analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisResult(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	if result.Warning != "" {
		output.WriteString("Warning: ")
		output.WriteString(result.Warning)
		output.WriteString("\n\n")
	}
	output.WriteString(fmt.Sprintf("Document Type: %s\n", result.DocumentType))
	if result.Role != "" {
		output.WriteString(fmt.Sprintf("Target Role: %s\n", result.Role))
	}
	output.WriteString("\n")

	output.WriteString("=== SCORES ===\n")
	output.WriteString(fmt.Sprintf("ATS Score:           %d/100\n", result.ATSScore))
	if result.KeywordMatchUnavailable {
		output.WriteString("Keyword Match Score: unavailable (invalid role configuration)\n")
	} else {
		output.WriteString(fmt.Sprintf("Keyword Match Score: %d/100\n", result.KeywordMatchScore))
	}
	output.WriteString(fmt.Sprintf("Format Score:        %d/100\n", result.FormatScore))
	output.WriteString(fmt.Sprintf("Section Score:       %d/100\n", result.SectionScore))
	output.WriteString("\n")

	if len(result.MatchedSkills) > 0 {
		output.WriteString("Matched Skills:\n")
		for _, skill := range result.MatchedSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}
	if len(result.MissingSkills) > 0 {
		output.WriteString("Missing Skills:\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if suggestions := result.OrderedSuggestions(); len(suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		for i, suggestion := range suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for local analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisResult(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	if result.Warning != "" {
		output.WriteString("> ")
		output.WriteString(result.Warning)
		output.WriteString("\n\n")
	}
	output.WriteString(fmt.Sprintf("**Document Type:** %s\n\n", result.DocumentType))
	if result.Role != "" {
		output.WriteString(fmt.Sprintf("**Target Role:** %s\n\n", result.Role))
	}

	output.WriteString("## Scores\n\n")
	output.WriteString("| Metric | Score |\n")
	output.WriteString("|--------|-------|\n")
	output.WriteString(fmt.Sprintf("| ATS Score | %d/100 |\n", result.ATSScore))
	if result.KeywordMatchUnavailable {
		output.WriteString("| Keyword Match | unavailable |\n")
	} else {
		output.WriteString(fmt.Sprintf("| Keyword Match | %d/100 |\n", result.KeywordMatchScore))
	}
	output.WriteString(fmt.Sprintf("| Format | %d/100 |\n", result.FormatScore))
	output.WriteString(fmt.Sprintf("| Sections | %d/100 |\n", result.SectionScore))
	output.WriteString("\n")

	if len(result.MatchedSkills) > 0 {
		output.WriteString("## Matched Skills\n\n")
		for _, skill := range result.MatchedSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}
	if len(result.MissingSkills) > 0 {
		output.WriteString("## Missing Skills\n\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if suggestions := result.OrderedSuggestions(); len(suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, suggestion := range suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AIAnalysisTextFormatter handles text formatting for AI analysis results
type AIAnalysisTextFormatter struct{}

func (aitf *AIAnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AIAnalysisOutput)
	if !ok {
		return "", fmt.Errorf("expected AIAnalysisOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== AI RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Resume Score: %d/100\n", result.ResumeScore))
	output.WriteString(fmt.Sprintf("ATS Score:    %d/100\n", result.ATSScore))
	if result.JobMatchScore != nil {
		output.WriteString(fmt.Sprintf("Job Match:    %d/100\n", *result.JobMatchScore))
	}
	output.WriteString("\n")

	output.WriteString(result.Analysis)
	output.WriteString("\n\n")

	if len(result.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}
	if len(result.Weaknesses) > 0 {
		output.WriteString("Weaknesses:\n")
		for _, weakness := range result.Weaknesses {
			output.WriteString(fmt.Sprintf("- %s\n", weakness))
		}
	}

	return output.String(), nil
}

func (aitf *AIAnalysisTextFormatter) SupportedType() string {
	return "AIAnalysisOutput"
}

// AIAnalysisMarkdownFormatter handles markdown formatting for AI analysis results
type AIAnalysisMarkdownFormatter struct{}

func (aimf *AIAnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AIAnalysisOutput)
	if !ok {
		return "", fmt.Errorf("expected AIAnalysisOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# AI Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Resume Score:** %d/100\n\n", result.ResumeScore))
	output.WriteString(fmt.Sprintf("**ATS Score:** %d/100\n\n", result.ATSScore))
	if result.JobMatchScore != nil {
		output.WriteString(fmt.Sprintf("**Job Match Score:** %d/100\n\n", *result.JobMatchScore))
	}

	// The analysis is already markdown with "## " section headings
	output.WriteString(result.Analysis)
	output.WriteString("\n\n")

	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}
	if len(result.Weaknesses) > 0 {
		output.WriteString("## Weaknesses\n\n")
		for _, weakness := range result.Weaknesses {
			output.WriteString(fmt.Sprintf("- %s\n", weakness))
		}
	}

	return output.String(), nil
}

func (aimf *AIAnalysisMarkdownFormatter) SupportedType() string {
	return "AIAnalysisOutput"
}

// JobMatchTextFormatter handles text formatting for job match results
type JobMatchTextFormatter struct{}

func (jmtf *JobMatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobMatchOutput)
	if !ok {
		return "", fmt.Errorf("expected JobMatchOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB MATCH ===\n\n")
	output.WriteString(fmt.Sprintf("Match Score: %d/100\n\n", result.Score))

	output.WriteString("Summary:\n")
	output.WriteString(result.Summary)
	output.WriteString("\n\n")

	if len(result.MatchedRequirements) > 0 {
		output.WriteString("Matched Requirements:\n")
		for _, requirement := range result.MatchedRequirements {
			output.WriteString(fmt.Sprintf("- %s\n", requirement))
		}
		output.WriteString("\n")
	}
	if len(result.MissingRequirements) > 0 {
		output.WriteString("Missing Requirements:\n")
		for _, requirement := range result.MissingRequirements {
			output.WriteString(fmt.Sprintf("- %s\n", requirement))
		}
	}

	return output.String(), nil
}

func (jmtf *JobMatchTextFormatter) SupportedType() string {
	return "JobMatchOutput"
}

// JobMatchMarkdownFormatter handles markdown formatting for job match results
type JobMatchMarkdownFormatter struct{}

func (jmmf *JobMatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobMatchOutput)
	if !ok {
		return "", fmt.Errorf("expected JobMatchOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Match\n\n")
	output.WriteString(fmt.Sprintf("**Match Score:** %d/100\n\n", result.Score))

	output.WriteString("## Summary\n\n")
	output.WriteString(result.Summary)
	output.WriteString("\n\n")

	if len(result.MatchedRequirements) > 0 {
		output.WriteString("## Matched Requirements\n\n")
		for _, requirement := range result.MatchedRequirements {
			output.WriteString(fmt.Sprintf("- %s\n", requirement))
		}
		output.WriteString("\n")
	}
	if len(result.MissingRequirements) > 0 {
		output.WriteString("## Missing Requirements\n\n")
		for _, requirement := range result.MissingRequirements {
			output.WriteString(fmt.Sprintf("- %s\n", requirement))
		}
	}

	return output.String(), nil
}

func (jmmf *JobMatchMarkdownFormatter) SupportedType() string {
	return "JobMatchOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
