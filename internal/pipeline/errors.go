package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/jobkit/internal/types"
)

// ErrRunInProgress is returned when a second run is started while one is
// already executing. Runs are serialized because they share the local
// model and the output directory.
var ErrRunInProgress = errors.New("a generation run is already in progress")

// ServiceUnavailableError indicates the completion backend could not be
// reached even after retries. The run is aborted rather than degraded.
type ServiceUnavailableError struct {
	Attempts int
	Cause    error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("completion service unavailable after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Cause
}

// ArtifactError records one artifact that never produced an accepted
// completion within its attempt budget.
type ArtifactError struct {
	Kind     types.ArtifactKind
	Attempts int
	Reasons  []string
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("artifact %s failed after %d attempts: %s", e.Kind, e.Attempts, strings.Join(e.Reasons, "; "))
}

// RunFailedError aggregates all failed artifacts of a run. A run either
// produces a complete package or this error; there is no partial output.
type RunFailedError struct {
	Artifacts []ArtifactError
}

func (e *RunFailedError) Error() string {
	kinds := make([]string, len(e.Artifacts))
	for i, a := range e.Artifacts {
		kinds[i] = string(a.Kind)
	}
	return fmt.Sprintf("run failed: no accepted completion for %s", strings.Join(kinds, ", "))
}
