package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobkit/internal/types"
)

func TestPrintRequest(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	req := &types.JobRequest{
		ResumeText:     "seasoned backend engineer with payment systems experience",
		JobDescription: "we need a backend engineer",
		Company:        "Acme Corp",
		Title:          "Backend Engineer",
		Location:       "Remote",
	}

	p.PrintRequest(req)
	output := buf.String()

	assert.Contains(t, output, "JOB REQUEST")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "Remote")
}

func TestPrintRequest_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequest(nil)

	assert.Empty(t, buf.String())
}

func TestPrintAttempt(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	attempt := &types.GenerationAttempt{
		Kind:   types.ArtifactResume,
		Number: 2,
		Text:   "short draft",
		Result: types.ValidationResult{
			Verdict: types.VerdictRepairable,
			Reasons: []string{"word count 2 is below the minimum of 900"},
		},
	}

	p.PrintAttempt(attempt)
	output := buf.String()

	assert.Contains(t, output, "GENERATION ATTEMPT")
	assert.Contains(t, output, "resume")
	assert.Contains(t, output, "repairable")
	assert.Contains(t, output, "below the minimum")
}

func TestPrintFit(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	fit := &types.FitAssessment{
		Score:       74,
		Label:       types.FitLabelGood,
		Explanation: "Matched: payments, go\nNot evidenced: kafka",
	}

	p.PrintFit(fit)
	output := buf.String()

	assert.Contains(t, output, "FIT ASSESSMENT")
	assert.Contains(t, output, "74")
	assert.Contains(t, output, "Good fit")
	assert.Contains(t, output, "payments")
}

func TestPrintPackage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	pkg := &types.JobPackage{
		ID:   "20260830_120000_acme_backend_a1b2c3d4",
		Path: "/tmp/out/20260830_120000_acme_backend_a1b2c3d4",
		Meta: types.PackageMetadata{
			AttemptCounts: map[types.ArtifactKind]int{
				types.ArtifactResume:       2,
				types.ArtifactCoverLetter:  1,
				types.ArtifactShortAnswers: 1,
			},
		},
	}

	p.PrintPackage(pkg)
	output := buf.String()

	assert.Contains(t, output, "PACKAGE WRITTEN")
	assert.Contains(t, output, "20260830_120000_acme_backend_a1b2c3d4")
	assert.Contains(t, output, "cover_letter")
}
