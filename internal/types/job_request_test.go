//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() JobRequest {
	return JobRequest{
		ResumeText:     "Senior backend engineer, Acme Corp, 2018-2023, led payments team",
		JobDescription: "Looking for a backend engineer with payments experience",
		Company:        "Acme Corp",
		Title:          "Backend Engineer",
		Location:       "Remote",
		SeniorityHint:  SenioritySenior,
	}
}

func TestJobRequestValidate_OK(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())
}

func TestJobRequestValidate_EmptyResume(t *testing.T) {
	req := validRequest()
	req.ResumeText = "   \n\t "

	err := req.Validate()
	require.Error(t, err)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "resume_text", invalid.Field)
}

func TestJobRequestValidate_EmptyJobDescription(t *testing.T) {
	req := validRequest()
	req.JobDescription = ""

	var invalid *InvalidInputError
	require.ErrorAs(t, req.Validate(), &invalid)
	assert.Equal(t, "job_description", invalid.Field)
}

func TestJobRequestValidate_MissingCompany(t *testing.T) {
	req := validRequest()
	req.Company = ""

	var invalid *InvalidInputError
	require.ErrorAs(t, req.Validate(), &invalid)
	assert.Equal(t, "company", invalid.Field)
}

func TestInputSummary(t *testing.T) {
	req := validRequest()
	summary := req.InputSummary()
	assert.Contains(t, summary, "Backend Engineer")
	assert.Contains(t, summary, "Acme Corp")
	assert.Contains(t, summary, "Remote")

	req.Location = ""
	assert.Contains(t, req.InputSummary(), "unspecified")
}

func TestLabelForScore(t *testing.T) {
	assert.Equal(t, FitLabelStrong, LabelForScore(92))
	assert.Equal(t, FitLabelStrong, LabelForScore(85))
	assert.Equal(t, FitLabelGood, LabelForScore(70))
	assert.Equal(t, FitLabelModerate, LabelForScore(55))
	assert.Equal(t, FitLabelLow, LabelForScore(54.9))
	assert.Equal(t, FitLabelLow, LabelForScore(0))
}
