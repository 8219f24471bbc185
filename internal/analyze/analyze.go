package analyze

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"resumelens/internal/classify"
	"resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/match"
	"resumelens/internal/score"
	"resumelens/internal/segment"
	"resumelens/internal/types"
)

// ATS composite weights. Keyword relevance dominates; structure and
// section coverage split the remainder.
const (
	weightKeyword = 0.4
	weightFormat  = 0.3
	weightSection = 0.3
)

// Suggestions per section are capped after merging.
const maxSuggestionsPerSection = 3

// Engine runs the local heuristic pipeline. It is stateless; one Engine
// serves concurrent callers.
type Engine struct {
	logger *errors.Logger
}

// NewEngine creates a pipeline engine. A nil logger disables logging.
func NewEngine(logger *errors.Logger) *Engine {
	return &Engine{logger: logger}
}

// Document runs extraction through aggregation on raw document bytes.
func (e *Engine) Document(ctx context.Context, data []byte, format extract.Format, role *types.RoleProfile) (*types.AnalysisResult, error) {
	text, err := extract.Text(data, format)
	if err != nil {
		return nil, err
	}
	return e.Text(ctx, text, role)
}

// Text analyzes already-extracted resume text against a role profile.
// A nil role skips keyword matching entirely (score 100, convention for
// "no requirements"). Matching failures from a bad role profile mark the
// keyword score unavailable instead of aborting; the ATS score then
// reweights over the structural stages, which always complete.
func (e *Engine) Text(ctx context.Context, text string, role *types.RoleProfile) (*types.AnalysisResult, error) {
	if text == "" {
		return nil, errors.NewIOError(errors.ErrCodeExtractionFailed, "no text to analyze", nil)
	}

	classification := classify.Document(text)
	sections := segment.Sections(text)

	var (
		keywords   types.KeywordMatch
		assessment types.FormatAssessment
		matchErr   error
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var required []string
		if role != nil {
			required = role.RequiredSkills
		}
		keywords, matchErr = match.Skills(sections, required)
		if matchErr != nil {
			// Bad role config degrades matching, never the whole run.
			keywords = types.KeywordMatch{MatchedSkills: []string{}, MissingSkills: []string{}}
		}
		return nil
	})
	g.Go(func() error {
		assessment = score.Structure(sections)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if matchErr != nil && e.logger != nil {
		e.logger.LogError(matchErr, "keyword matching degraded")
	}

	result := &types.AnalysisResult{
		DocumentType:      classification.Type,
		IsResume:          classification.IsResume(),
		KeywordMatchScore: keywords.Score,
		FormatScore:       assessment.FormatScore,
		SectionScore:      assessment.SectionScore,
		MatchedSkills:     keywords.MatchedSkills,
		MissingSkills:     keywords.MissingSkills,
		Suggestions:       mergeSuggestions(assessment.Suggestions, keywords),
		Sections:          sections,
	}
	if role != nil {
		result.Role = role.Name
	}
	if matchErr != nil {
		// A zero here would be indistinguishable from a genuine
		// no-skills-matched run, so the result carries an explicit
		// marker and the keyword term drops out of the composite.
		result.KeywordMatchUnavailable = true
		result.ATSScore = structuralComposite(assessment.FormatScore, assessment.SectionScore)
	} else {
		result.ATSScore = composite(keywords.Score, assessment.FormatScore, assessment.SectionScore)
	}

	if !result.IsResume {
		result.Warning = fmt.Sprintf("This appears to be a %s document, not a resume", classification.Type)
	}
	return result, nil
}

// composite folds the three stage scores into the integer ATS score.
func composite(keyword, format, section int) int {
	return clampScore(weightKeyword*float64(keyword) + weightFormat*float64(format) + weightSection*float64(section))
}

// structuralComposite renormalizes the ATS score over format and section
// weights alone, for runs where the keyword stage produced no score.
func structuralComposite(format, section int) int {
	raw := (weightFormat*float64(format) + weightSection*float64(section)) / (weightFormat + weightSection)
	return clampScore(raw)
}

func clampScore(raw float64) int {
	n := int(math.Round(raw))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// mergeSuggestions folds missing-skill advice into the structural
// suggestions, dedupes, and caps each section's list.
func mergeSuggestions(structural map[types.Section][]string, keywords types.KeywordMatch) map[types.Section][]string {
	merged := make(map[types.Section][]string, len(structural))
	for sec, list := range structural {
		merged[sec] = append([]string(nil), list...)
	}
	if len(keywords.MissingSkills) > 0 {
		merged[types.SectionSkills] = append(merged[types.SectionSkills],
			fmt.Sprintf("Highlight these role skills if you have them: %s",
				joinSorted(keywords.MissingSkills)))
	}

	for sec, list := range merged {
		seen := make(map[string]struct{}, len(list))
		deduped := list[:0]
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			deduped = append(deduped, s)
		}
		if len(deduped) > maxSuggestionsPerSection {
			deduped = deduped[:maxSuggestionsPerSection]
		}
		merged[sec] = deduped
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func joinSorted(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
