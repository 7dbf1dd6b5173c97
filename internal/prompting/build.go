// Package prompting builds deterministic prompt payloads for each artifact kind.
package prompting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/jobkit/internal/prompts"
	"github.com/jonathan/jobkit/internal/types"
	"github.com/jonathan/jobkit/internal/validation"
)

// Payload is one fully assembled prompt for one artifact kind.
type Payload struct {
	Kind   types.ArtifactKind
	Prompt string
}

// Build assembles the prompt payload for an artifact kind. Same inputs
// always yield the same payload: templates are embedded data and the
// guardrail bands come from the kind's constraint profile.
func Build(kind types.ArtifactKind, req types.JobRequest) (*Payload, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile, ok := validation.ProfileFor(kind)
	if !ok {
		return nil, fmt.Errorf("no constraint profile for artifact kind %q", kind)
	}

	template, err := prompts.Get("generation.json", string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt for %s: %w", kind, err)
	}

	prompt := prompts.Format(template, map[string]string{
		"ResumeText":     req.ResumeText,
		"JobDescription": req.JobDescription,
		"Company":        req.Company,
		"Title":          req.Title,
		"Location":       orUnspecified(req.Location),
		"SeniorityHint":  orUnspecified(req.SeniorityHint),
		"MinWords":       strconv.Itoa(profile.MinWords),
		"MaxWords":       strconv.Itoa(profile.MaxWords),
	})

	return &Payload{Kind: kind, Prompt: prompt}, nil
}

// BuildRepair assembles an amended payload for a repair attempt: the base
// prompt plus the reasons the latest attempt failed and the text that
// needs fixing. The attempt history is immutable input; the most recent
// attempt drives the amendment.
func BuildRepair(kind types.ArtifactKind, req types.JobRequest, history []types.GenerationAttempt) (*Payload, error) {
	if len(history) == 0 {
		return Build(kind, req)
	}

	base, err := Build(kind, req)
	if err != nil {
		return nil, err
	}

	amendment, err := prompts.Get("repair.json", "amendment")
	if err != nil {
		return nil, fmt.Errorf("failed to load repair amendment: %w", err)
	}

	last := history[len(history)-1]
	var reasons strings.Builder
	for i, reason := range last.Result.Reasons {
		fmt.Fprintf(&reasons, "%d. %s\n", i+1, reason)
	}

	base.Prompt += prompts.Format(amendment, map[string]string{
		"Reasons":      strings.TrimRight(reasons.String(), "\n"),
		"PreviousText": last.Text,
	})
	return base, nil
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unspecified"
	}
	return s
}
