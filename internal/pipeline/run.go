// Package pipeline provides the high-level orchestration for a generation run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobkit/internal/db"
	"github.com/jonathan/jobkit/internal/llm"
	"github.com/jonathan/jobkit/internal/observability"
	"github.com/jonathan/jobkit/internal/packaging"
	"github.com/jonathan/jobkit/internal/prompting"
	"github.com/jonathan/jobkit/internal/scoring"
	"github.com/jonathan/jobkit/internal/types"
	"github.com/jonathan/jobkit/internal/validation"
)

// Default budgets used when RunOptions leaves them zero.
const (
	DefaultMaxArtifactAttempts = 3
	DefaultTransportRetries    = 2
	DefaultRetryBackoff        = 500 * time.Millisecond
	DefaultCompletionTimeout   = 120 * time.Second
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Request             types.JobRequest
	Client              llm.Client
	OutputDir           string
	MaxArtifactAttempts int
	TransportRetries    int
	RetryBackoff        time.Duration
	CompletionTimeout   time.Duration
	Database            *db.DB
	Verbose             bool
	OnProgress          ProgressCallback
}

// runLock serializes runs: they share the local model and the output root.
var runLock sync.Mutex

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, kind, message, runID string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Kind: kind, Message: message, RunID: runID})
	}
}

// Generate runs the full pipeline for one job request: build prompts,
// obtain completions, validate and repair them, score the fit, and
// persist the package. It returns ErrRunInProgress if another run holds
// the lock, and never leaves a partial package behind on failure.
func Generate(ctx context.Context, opts RunOptions) (*types.JobPackage, error) {
	if !runLock.TryLock() {
		return nil, ErrRunInProgress
	}
	defer runLock.Unlock()

	if err := opts.Request.Validate(); err != nil {
		return nil, err
	}
	applyDefaults(&opts)

	printer := observability.NewPrinter(os.Stdout)
	runID := uuid.New()

	if opts.Verbose {
		printer.PrintRequest(&opts.Request)
	}

	if opts.Database != nil {
		if err := opts.Database.CreateRun(ctx, runID, opts.Request.Company, opts.Request.Title); err != nil {
			fmt.Printf("Warning: Failed to record run in database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		}
	}

	src := validation.Source{
		ResumeText:     opts.Request.ResumeText,
		JobDescription: opts.Request.JobDescription,
	}
	kinds := types.AllArtifactKinds()

	fmt.Printf("Step 1/4: Generating %d artifacts with model %s...\n", len(kinds), opts.Client.Model())

	// Artifacts are generated one at a time: a single local model gains
	// nothing from concurrent requests, but the group still gives us
	// shared cancellation when a transport failure aborts the run.
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(1)

	var mu sync.Mutex
	texts := make(map[types.ArtifactKind]string, len(kinds))
	attemptCounts := make(map[types.ArtifactKind]int, len(kinds))
	var failures []ArtifactError

	for _, kind := range kinds {
		kind := kind
		g.Go(func() error {
			text, attempts, err := generateArtifact(gCtx, &opts, kind, src, printer, runID)
			mu.Lock()
			defer mu.Unlock()
			attemptCounts[kind] = attempts
			if err != nil {
				var artErr *ArtifactError
				if errors.As(err, &artErr) {
					// Exhausted attempts on one artifact: record it and
					// keep generating the others so the caller sees the
					// full picture.
					failures = append(failures, *artErr)
					return nil
				}
				return err
			}
			texts[kind] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		completeRun(ctx, &opts, runID, "failed", "")
		return nil, err
	}
	if len(failures) > 0 {
		completeRun(ctx, &opts, runID, "failed", "")
		return nil, &RunFailedError{Artifacts: failures}
	}

	fmt.Printf("Step 2/4: Scoring job fit...\n")
	fit := scoring.Score(opts.Request)
	if opts.Verbose {
		printer.PrintFit(&fit)
	}
	emitProgress(&opts, "fit_scored", "", fmt.Sprintf("Fit: %.0f (%s)", fit.Score, fit.Label), runID.String())

	fmt.Printf("Step 3/4: Assembling package...\n")
	createdAt := time.Now().UTC()
	pkg := &types.JobPackage{
		ID: packaging.PackageID(createdAt, opts.Request.Company, opts.Request.Title, runID.String()),
		Artifacts: map[types.ArtifactKind]string{
			types.ArtifactResume:      texts[types.ArtifactResume],
			types.ArtifactCoverLetter: texts[types.ArtifactCoverLetter],
			types.ArtifactShortAnswers: packaging.FormatShortAnswers(
				packaging.SplitShortAnswers(texts[types.ArtifactShortAnswers])),
		},
		Fit: fit,
	}
	pkg.Meta = types.PackageMetadata{
		ID:             pkg.ID,
		RunID:          runID.String(),
		Company:        opts.Request.Company,
		Title:          opts.Request.Title,
		Location:       opts.Request.Location,
		SeniorityHint:  opts.Request.SeniorityHint,
		Model:          opts.Client.Model(),
		InputSummary:   opts.Request.InputSummary(),
		FitScore:       fit.Score,
		FitLabel:       fit.Label,
		FitExplanation: fit.Explanation,
		AttemptCounts:  attemptCounts,
		CreatedAt:      createdAt,
	}

	fmt.Printf("Step 4/4: Writing package to disk...\n")
	writer := packaging.NewWriter(opts.OutputDir)
	path, err := writer.Write(pkg)
	if err != nil {
		completeRun(ctx, &opts, runID, "failed", "")
		return nil, err
	}
	pkg.Path = path

	completeRun(ctx, &opts, runID, "completed", pkg.ID)
	emitProgress(&opts, "package_written", "", "Package written to "+path, runID.String())
	if opts.Verbose {
		printer.PrintPackage(pkg)
	}
	fmt.Printf("Done! Package written to %s\n", path)

	return pkg, nil
}

// generateArtifact runs the generate/validate/repair loop for one artifact
// kind. It returns the accepted text and the number of attempts consumed,
// an *ArtifactError when the attempt budget is exhausted or a completion
// is rejected outright, or a transport/context error that aborts the run.
func generateArtifact(ctx context.Context, opts *RunOptions, kind types.ArtifactKind, src validation.Source, printer *observability.Printer, runID uuid.UUID) (string, int, error) {
	profile, ok := validation.ProfileFor(kind)
	if !ok {
		return "", 0, fmt.Errorf("no constraint profile for artifact kind %q", kind)
	}

	var history []types.GenerationAttempt
	for number := 1; number <= opts.MaxArtifactAttempts; number++ {
		if err := ctx.Err(); err != nil {
			return "", len(history), err
		}

		payload, err := prompting.BuildRepair(kind, opts.Request, history)
		if err != nil {
			return "", len(history), err
		}

		if number == 1 {
			fmt.Printf("  Generating %s...\n", kind)
		} else {
			fmt.Printf("  Repairing %s (attempt %d/%d)...\n", kind, number, opts.MaxArtifactAttempts)
		}

		raw, err := completeWithRetry(ctx, opts, payload.Prompt)
		if err != nil {
			return "", len(history), err
		}

		text := validation.CleanCompletion(raw)
		result := validation.Validate(profile, text, src, history)
		attempt := types.GenerationAttempt{Kind: kind, Number: number, Text: text, Result: result}
		history = append(history, attempt)

		if opts.Verbose {
			printer.PrintAttempt(&attempt)
		}
		if opts.Database != nil {
			_ = opts.Database.SaveAttempt(ctx, runID, string(kind), number, string(result.Verdict), result.Reasons)
		}
		emitProgress(opts, "attempt_validated", string(kind),
			fmt.Sprintf("Attempt %d: %s", number, result.Verdict), runID.String())

		switch result.Verdict {
		case types.VerdictAccepted:
			return text, len(history), nil
		case types.VerdictRejected:
			return "", len(history), &ArtifactError{Kind: kind, Attempts: len(history), Reasons: result.Reasons}
		case types.VerdictRepairable:
			// loop with the attempt appended to history
		}
	}

	last := history[len(history)-1]
	return "", len(history), &ArtifactError{Kind: kind, Attempts: len(history), Reasons: last.Result.Reasons}
}

// completeWithRetry calls the completion client, retrying transport
// failures with doubling backoff. Each call gets its own timeout so one
// hung request cannot stall the run indefinitely.
func completeWithRetry(ctx context.Context, opts *RunOptions, prompt string) (string, error) {
	backoff := opts.RetryBackoff
	var lastErr error

	for attempt := 0; attempt <= opts.TransportRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		callCtx, cancel := context.WithTimeout(ctx, opts.CompletionTimeout)
		text, err := opts.Client.Complete(callCtx, prompt)
		cancel()
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if _, ok := llm.AsTransportError(err); !ok {
			return "", err
		}
		lastErr = err
		fmt.Printf("  Warning: completion attempt %d failed: %v\n", attempt+1, err)
	}

	return "", &ServiceUnavailableError{Attempts: opts.TransportRetries + 1, Cause: lastErr}
}

func applyDefaults(opts *RunOptions) {
	if opts.MaxArtifactAttempts <= 0 {
		opts.MaxArtifactAttempts = DefaultMaxArtifactAttempts
	}
	if opts.TransportRetries <= 0 {
		opts.TransportRetries = DefaultTransportRetries
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if opts.CompletionTimeout <= 0 {
		opts.CompletionTimeout = DefaultCompletionTimeout
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "job-packages"
	}
}

func completeRun(ctx context.Context, opts *RunOptions, runID uuid.UUID, status, packageID string) {
	if opts.Database == nil {
		return
	}
	if err := opts.Database.CompleteRun(ctx, runID, status, packageID); err != nil {
		fmt.Printf("Warning: Failed to record run completion: %v\n", err)
	}
}
