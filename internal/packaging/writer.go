package packaging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/jobkit/internal/types"
)

// File names inside a package directory. The metadata file is written
// last; its presence is the signal that the package is complete.
const (
	ResumeFileName       = "resume_full.txt"
	CoverLetterFileName  = "cover_letter.txt"
	ShortAnswersFileName = "short_answers.txt"
	MetadataFileName     = "meta.json"
)

// IOError represents a package persistence failure. It is always fatal to
// the run and never partially applied.
type IOError struct {
	Message string
	Cause   error
}

func (e *IOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("package write error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("package write error: %s", e.Message)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// Writer persists job packages under a single output root.
type Writer struct {
	root string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{root: dir}
}

// Root returns the output root directory.
func (w *Writer) Root() string {
	return w.root
}

// Write persists a package. Files are staged in a hidden temporary
// directory under the root and the final directory appears via a single
// atomic rename, so a crash mid-write never leaves a partial package
// visible to readers. Returns the final package path.
func (w *Writer) Write(pkg *types.JobPackage) (string, error) {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return "", &IOError{Message: "failed to create output root", Cause: err}
	}

	staging, err := os.MkdirTemp(w.root, ".staging-")
	if err != nil {
		return "", &IOError{Message: "failed to create staging directory", Cause: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(staging)
		}
	}()

	files := []struct {
		name    string
		content string
	}{
		{ResumeFileName, pkg.Artifacts[types.ArtifactResume]},
		{CoverLetterFileName, pkg.Artifacts[types.ArtifactCoverLetter]},
		{ShortAnswersFileName, pkg.Artifacts[types.ArtifactShortAnswers]},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(staging, f.name), []byte(f.content), 0o644); err != nil {
			return "", &IOError{Message: "failed to write " + f.name, Cause: err}
		}
	}

	// Metadata last: readers treat its presence as completeness.
	metaBytes, err := json.MarshalIndent(pkg.Meta, "", "  ")
	if err != nil {
		return "", &IOError{Message: "failed to encode metadata", Cause: err}
	}
	if err := os.WriteFile(filepath.Join(staging, MetadataFileName), metaBytes, 0o644); err != nil {
		return "", &IOError{Message: "failed to write " + MetadataFileName, Cause: err}
	}

	finalPath := filepath.Join(w.root, pkg.ID)
	if err := os.Rename(staging, finalPath); err != nil {
		return "", &IOError{Message: "failed to materialize package directory", Cause: err}
	}
	committed = true

	return finalPath, nil
}
