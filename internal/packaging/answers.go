package packaging

import (
	"fmt"
	"strings"
)

// shortAnswerCount is the number of application questions answered per package.
const shortAnswerCount = 3

// SplitShortAnswers splits a raw short-answers completion into individual
// answers on blank lines. If the model returned fewer than three blocks,
// the last one is repeated so the file always has three entries.
func SplitShortAnswers(raw string) []string {
	var answers []string
	for _, part := range strings.Split(raw, "\n\n") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			answers = append(answers, trimmed)
		}
	}

	if len(answers) == 0 {
		return []string{"", "", ""}
	}
	for len(answers) < shortAnswerCount {
		answers = append(answers, answers[len(answers)-1])
	}
	return answers[:shortAnswerCount]
}

// FormatShortAnswers renders answers in the persisted file format.
func FormatShortAnswers(answers []string) string {
	var sb strings.Builder
	for i, answer := range answers {
		fmt.Fprintf(&sb, "Answer %d:\n%s\n\n", i+1, answer)
	}
	return sb.String()
}
