package packaging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobkit/internal/types"
)

func samplePackage(id string) *types.JobPackage {
	return &types.JobPackage{
		ID: id,
		Artifacts: map[types.ArtifactKind]string{
			types.ArtifactResume:       "tailored resume body",
			types.ArtifactCoverLetter:  "cover letter body",
			types.ArtifactShortAnswers: "Answer 1:\nbody\n\n",
		},
		Fit: types.FitAssessment{Score: 74, Label: types.FitLabelGood, Explanation: "overlap on payments"},
		Meta: types.PackageMetadata{
			ID:             id,
			RunID:          "0c6d2f35-4fb1-4be1-8e2e-14f5f6cb1234",
			Company:        "Acme Corp",
			Title:          "Backend Engineer",
			Model:          "llama3",
			InputSummary:   "Backend Engineer at Acme Corp",
			FitScore:       74,
			FitLabel:       types.FitLabelGood,
			FitExplanation: "overlap on payments",
			AttemptCounts: map[types.ArtifactKind]int{
				types.ArtifactResume:       1,
				types.ArtifactCoverLetter:  1,
				types.ArtifactShortAnswers: 1,
			},
			CreatedAt: time.Now().UTC(),
		},
	}
}

func TestWrite_AllFilesPresent(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root)

	path, err := writer.Write(samplePackage("20260830_120000_acme_backend_a1b2c3d4"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "20260830_120000_acme_backend_a1b2c3d4"), path)

	for _, name := range []string{ResumeFileName, CoverLetterFileName, ShortAnswersFileName, MetadataFileName} {
		_, err := os.Stat(filepath.Join(path, name))
		assert.NoError(t, err, name)
	}

	content, err := os.ReadFile(filepath.Join(path, ResumeFileName))
	require.NoError(t, err)
	assert.Equal(t, "tailored resume body", string(content))
}

func TestWrite_NoStagingLeftBehind(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root)

	_, err := writer.Write(samplePackage("pkg_one"))
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pkg_one", entries[0].Name())
}

func TestWrite_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "job-packages")
	writer := NewWriter(root)

	_, err := writer.Write(samplePackage("pkg_nested"))
	require.NoError(t, err)
}

func TestListPackages_SkipsIncompleteAndHidden(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root)

	_, err := writer.Write(samplePackage("20260830_110000_acme_backend_aaaaaaaa"))
	require.NoError(t, err)

	// A directory without meta.json simulates an in-flight or damaged
	// package; a dot-directory simulates abandoned staging.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "20260830_113000_acme_backend_partial"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "20260830_113000_acme_backend_partial", ResumeFileName), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".staging-12345"), 0o755))

	entries, err := ListPackages(root, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "20260830_110000_acme_backend_aaaaaaaa", entries[0].Meta.ID)
}

func TestListPackages_NewestFirstAndLimit(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root)

	for _, id := range []string{
		"20260830_100000_acme_backend_aaaaaaaa",
		"20260830_120000_acme_backend_bbbbbbbb",
		"20260830_110000_acme_backend_cccccccc",
	} {
		pkg := samplePackage(id)
		pkg.Meta.ID = id
		_, err := writer.Write(pkg)
		require.NoError(t, err)
	}

	entries, err := ListPackages(root, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "20260830_120000_acme_backend_bbbbbbbb", entries[0].Meta.ID)
	assert.Equal(t, "20260830_110000_acme_backend_cccccccc", entries[1].Meta.ID)
}

func TestListPackages_MissingRoot(t *testing.T) {
	entries, err := ListPackages(filepath.Join(t.TempDir(), "does-not-exist"), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "acme_corp", Slug("Acme Corp", "company"))
	assert.Equal(t, "backend_engineer_l5", Slug("Backend  Engineer (L5)", "title"))
	assert.Equal(t, "company", Slug("   ", "company"))
	assert.Equal(t, "title", Slug("!!!", "title"))
}

func TestPackageID(t *testing.T) {
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	id := PackageID(created, "Acme Corp", "Backend Engineer", "0c6d2f35-4fb1-4be1-8e2e-14f5f6cb1234")
	assert.Equal(t, "20260830_120000_acme_corp_backend_engineer_0c6d2f35", id)
}

func TestShortAnswers_SplitAndFormat(t *testing.T) {
	raw := "First answer text.\n\nSecond answer text.\n\nThird answer text."
	answers := SplitShortAnswers(raw)
	require.Len(t, answers, 3)
	assert.Equal(t, "Second answer text.", answers[1])

	formatted := FormatShortAnswers(answers)
	assert.Contains(t, formatted, "Answer 1:\nFirst answer text.")
	assert.Contains(t, formatted, "Answer 3:\nThird answer text.")
}

func TestShortAnswers_PadsWhenTooFew(t *testing.T) {
	answers := SplitShortAnswers("Only one answer.")
	require.Len(t, answers, 3)
	assert.Equal(t, answers[0], answers[2])

	answers = SplitShortAnswers("   ")
	require.Len(t, answers, 3)
	assert.Equal(t, "", answers[0])
}

func TestShortAnswers_TruncatesExtras(t *testing.T) {
	answers := SplitShortAnswers("a\n\nb\n\nc\n\nd")
	require.Len(t, answers, 3)
	assert.Equal(t, []string{"a", "b", "c"}, answers)
}
