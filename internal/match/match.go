package match

import (
	"math"
	"sort"
	"strings"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// synonyms maps alternate spellings to a shared canonical form. Matching
// is exact after canonicalization; there is no fuzzy inference.
var synonyms = map[string]string{
	"js":                    "javascript",
	"ts":                    "typescript",
	"golang":                "go",
	"postgres":              "postgresql",
	"k8s":                   "kubernetes",
	"ml":                    "machine learning",
	"nodejs":                "node.js",
	"node":                  "node.js",
	"reactjs":               "react",
	"vuejs":                 "vue",
	"html5":                 "html",
	"css3":                  "css",
	"mongo":                 "mongodb",
	"amazon web services":   "aws",
	"google cloud":          "gcp",
	"google cloud platform": "gcp",
}

var tokenSplitter = strings.NewReplacer(
	",", "\n",
	"•", "\n",
	"|", "\n",
	";", "\n",
	"·", "\n",
)

// Skills compares the skills evidenced by the resume sections against a
// role's required skills. Matched and missing preserve the required
// skills' original casing and come back sorted. An empty requirement set
// scores 100 with empty (non-nil) slices.
func Skills(sections types.ResumeSections, required []string) (types.KeywordMatch, error) {
	result := types.KeywordMatch{
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}

	if len(required) == 0 {
		result.Score = 100
		return result, nil
	}
	for _, skill := range required {
		if strings.TrimSpace(skill) == "" {
			return result, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
				"role profile contains an empty required skill", nil)
		}
	}

	candidates := candidateSet(sections)
	for _, skill := range required {
		if _, ok := candidates[canonicalize(skill)]; ok {
			result.MatchedSkills = append(result.MatchedSkills, skill)
		} else {
			result.MissingSkills = append(result.MissingSkills, skill)
		}
	}
	sort.Strings(result.MatchedSkills)
	sort.Strings(result.MissingSkills)

	result.Score = clamp(int(math.Round(100 * float64(len(result.MatchedSkills)) / float64(len(required)))))
	return result, nil
}

// candidateSet tokenizes the skill-bearing sections into canonical forms.
func candidateSet(sections types.ResumeSections) map[string]struct{} {
	text := sections[types.SectionSkills] + "\n" +
		sections[types.SectionExperience] + "\n" +
		sections[types.SectionProjects]

	set := make(map[string]struct{})
	for _, token := range strings.Split(tokenSplitter.Replace(text), "\n") {
		token = strings.Trim(token, " \t-*–")
		if token == "" {
			continue
		}
		set[canonicalize(token)] = struct{}{}
		// Multi-word lines also contribute their individual words so
		// "Built services in Go and Python" evidences both skills.
		for _, word := range strings.Fields(token) {
			word = strings.Trim(word, ".,()")
			if word != "" {
				set[canonicalize(word)] = struct{}{}
			}
		}
	}
	return set
}

func canonicalize(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := synonyms[lowered]; ok {
		return canonical
	}
	return lowered
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
