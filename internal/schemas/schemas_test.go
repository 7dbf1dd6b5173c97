package schemas

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobkit/internal/types"
)

func sampleMetadata() types.PackageMetadata {
	return types.PackageMetadata{
		ID:             "20260830_120000_acme_backend_a1b2c3d4",
		RunID:          "0c6d2f35-4fb1-4be1-8e2e-14f5f6cb1234",
		Company:        "Acme Corp",
		Title:          "Backend Engineer",
		Location:       "Remote",
		Model:          "llama3",
		InputSummary:   "Backend Engineer at Acme Corp",
		FitScore:       74,
		FitLabel:       types.FitLabelGood,
		FitExplanation: "The resume matches the job description on: backend engineer, payments.",
		AttemptCounts: map[types.ArtifactKind]int{
			types.ArtifactResume:       2,
			types.ArtifactCoverLetter:  1,
			types.ArtifactShortAnswers: 1,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestValidateMetadata_OK(t *testing.T) {
	data, err := json.Marshal(sampleMetadata())
	require.NoError(t, err)
	assert.NoError(t, ValidateMetadata(data))
}

func TestValidateMetadata_MissingRequiredField(t *testing.T) {
	meta := sampleMetadata()
	meta.Company = ""
	data, err := json.Marshal(meta)
	require.NoError(t, err)

	err = ValidateMetadata(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company")
}

func TestValidateMetadata_BadLabel(t *testing.T) {
	meta := sampleMetadata()
	meta.FitLabel = "Perfect fit"
	data, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.Error(t, ValidateMetadata(data))
}

func TestValidateMetadata_NotJSON(t *testing.T) {
	assert.Error(t, ValidateMetadata([]byte("not json at all")))
}
