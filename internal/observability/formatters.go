// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobkit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxReasonsToShow is the default number of reasons to display in lists
	maxReasonsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs a human-readable summary of the job request.
func (p *Printer) PrintRequest(req *types.JobRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", req.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", req.Title))
	if req.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", req.Location))
	}
	if req.SeniorityHint != "" {
		sb.WriteString(fmt.Sprintf("Level:    %s\n", req.SeniorityHint))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Resume:   %d words\n", len(strings.Fields(req.ResumeText))))
	sb.WriteString(fmt.Sprintf("Job ad:   %d words", len(strings.Fields(req.JobDescription))))

	p.printBox("JOB REQUEST", sb.String())
}

// PrintAttempt outputs one generation attempt with its verdict and reasons.
func (p *Printer) PrintAttempt(attempt *types.GenerationAttempt) {
	if attempt == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Artifact: %s\n", attempt.Kind))
	sb.WriteString(fmt.Sprintf("Attempt:  %d\n", attempt.Number))
	sb.WriteString(fmt.Sprintf("Verdict:  %s\n", attempt.Result.Verdict))
	sb.WriteString(fmt.Sprintf("Length:   %d words", len(strings.Fields(attempt.Text))))

	if len(attempt.Result.Reasons) > 0 {
		sb.WriteString("\n\n")
		count := min(len(attempt.Result.Reasons), maxReasonsToShow)
		for i := 0; i < count; i++ {
			reason := attempt.Result.Reasons[i]
			if len(reason) > 50 {
				reason = reason[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ %s", reason))
			if i < count-1 {
				sb.WriteString("\n")
			}
		}
		if len(attempt.Result.Reasons) > maxReasonsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more", len(attempt.Result.Reasons)-maxReasonsToShow))
		}
	}

	p.printBox("GENERATION ATTEMPT", sb.String())
}

// PrintFit outputs the fit assessment for the run.
func (p *Printer) PrintFit(fit *types.FitAssessment) {
	if fit == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %.0f / 100\n", fit.Score))
	sb.WriteString(fmt.Sprintf("Label:  %s\n", fit.Label))
	sb.WriteString("\n")
	for i, line := range strings.Split(fit.Explanation, "\n") {
		if i >= maxReasonsToShow {
			sb.WriteString("...")
			break
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	p.printBox("FIT ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPackage outputs the final package location and attempt counts.
func (p *Printer) PrintPackage(pkg *types.JobPackage) {
	if pkg == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:   %s\n", pkg.ID))
	sb.WriteString(fmt.Sprintf("Path: %s\n", pkg.Path))
	sb.WriteString("\n")
	sb.WriteString("Attempts:\n")
	for _, kind := range types.AllArtifactKinds() {
		sb.WriteString(fmt.Sprintf("  %-14s %d\n", kind, pkg.Meta.AttemptCounts[kind]))
	}

	p.printBox("✅ PACKAGE WRITTEN", strings.TrimSuffix(sb.String(), "\n"))
}
