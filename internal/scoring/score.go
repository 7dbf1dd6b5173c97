// Package scoring derives a fit assessment from a resume/job-description pair.
//
// The scorer is deliberately deterministic: the score is term overlap
// between the two texts, and the explanation enumerates the actual shared
// terms, so it can never invent qualifications to justify a score.
package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/jobkit/internal/types"
)

const (
	baseScore     = 35.0
	coverageScale = 65.0
	maxTermsShown = 8
)

var tokenPattern = regexp.MustCompile(`[a-z0-9+#]+`)

// stopwords are function words excluded from term matching.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "can": true,
	"for": true, "from": true, "had": true, "has": true, "have": true,
	"in": true, "into": true, "is": true, "it": true, "its": true,
	"not": true, "of": true, "on": true, "or": true, "our": true,
	"per": true, "should": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "these": true, "they": true,
	"this": true, "those": true, "to": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "where": true, "which": true,
	"while": true, "who": true, "will": true, "with": true, "would": true,
	"you": true, "your": true,
}

// Score computes the fit assessment for a request. The score is
// base + scale * coverage, where coverage is the share of distinct
// job-description terms that also appear in the resume.
func Score(req types.JobRequest) types.FitAssessment {
	jdTerms := contentTerms(req.JobDescription)
	resumeSet := termSet(req.ResumeText)

	if len(jdTerms) == 0 {
		return types.FitAssessment{
			Score:       0,
			Label:       types.LabelForScore(0),
			Explanation: "The job description contains no assessable terms.",
		}
	}

	var matched, missing []string
	for _, term := range jdTerms {
		if resumeSet[term] {
			matched = append(matched, term)
		} else {
			missing = append(missing, term)
		}
	}

	coverage := float64(len(matched)) / float64(len(jdTerms))
	score := math.Round(baseScore + coverageScale*coverage)
	if len(matched) == 0 {
		score = 0
	}

	return types.FitAssessment{
		Score:       score,
		Label:       types.LabelForScore(score),
		Explanation: explain(req, matched, missing),
	}
}

// explain builds the assessment text from the concrete matched terms,
// merging adjacent job-description terms into phrases when the resume
// contains the same phrase (e.g. "backend engineer").
func explain(req types.JobRequest, matched, missing []string) string {
	if len(matched) == 0 {
		return "The resume shares no meaningful terms with the job description."
	}

	phrases := mergePhrases(req, matched)
	shown := phrases
	if len(shown) > maxTermsShown {
		shown = shown[:maxTermsShown]
	}

	explanation := fmt.Sprintf("The resume matches the job description on: %s.", strings.Join(shown, ", "))
	if len(missing) > 0 {
		gaps := missing
		if len(gaps) > maxTermsShown {
			gaps = gaps[:maxTermsShown]
		}
		explanation += fmt.Sprintf(" Not evidenced in the resume: %s.", strings.Join(gaps, ", "))
	}
	return explanation
}

// mergePhrases collapses consecutive matched terms into a single phrase
// when the phrase itself appears in the resume text.
func mergePhrases(req types.JobRequest, matched []string) []string {
	resumeLower := strings.ToLower(req.ResumeText)
	jdTerms := contentTerms(req.JobDescription)

	matchedSet := make(map[string]bool, len(matched))
	for _, term := range matched {
		matchedSet[term] = true
	}

	var out []string
	used := make(map[string]bool)
	for i := 0; i < len(jdTerms); i++ {
		term := jdTerms[i]
		if !matchedSet[term] || used[term] {
			continue
		}
		if i+1 < len(jdTerms) {
			next := jdTerms[i+1]
			phrase := term + " " + next
			if matchedSet[next] && !used[next] && strings.Contains(resumeLower, phrase) {
				out = append(out, phrase)
				used[term], used[next] = true, true
				continue
			}
		}
		out = append(out, term)
		used[term] = true
	}
	return out
}

// contentTerms returns the distinct content tokens of text in order of
// first appearance.
func contentTerms(text string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if stopwords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		terms = append(terms, tok)
	}
	return terms
}

func termSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if !stopwords[tok] {
			set[tok] = true
		}
	}
	return set
}
