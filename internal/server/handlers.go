package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jonathan/jobkit/internal/packaging"
	"github.com/jonathan/jobkit/internal/pipeline"
	"github.com/jonathan/jobkit/internal/types"
)

// generateRequest is the POST /generate request body.
type generateRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
	Company        string `json:"company"`
	Title          string `json:"title"`
	Location       string `json:"location,omitempty"`
	SeniorityHint  string `json:"seniority_hint,omitempty"`
}

// generateResponse summarizes a completed run.
type generateResponse struct {
	ID             string                     `json:"id"`
	Path           string                     `json:"path"`
	FitScore       float64                    `json:"fit_score"`
	FitLabel       string                     `json:"fit_label"`
	FitExplanation string                     `json:"fit_explanation"`
	AttemptCounts  map[types.ArtifactKind]int `json:"attempt_counts"`
}

// handleGenerate runs the full pipeline for one request body.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	req := types.JobRequest{
		ResumeText:     body.ResumeText,
		JobDescription: body.JobDescription,
		Company:        body.Company,
		Title:          body.Title,
		Location:       body.Location,
		SeniorityHint:  body.SeniorityHint,
	}

	opts := s.pipelineOptions()
	opts.Request = req

	pkg, err := pipeline.Generate(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, generateResponse{
		ID:             pkg.ID,
		Path:           pkg.Path,
		FitScore:       pkg.Fit.Score,
		FitLabel:       pkg.Fit.Label,
		FitExplanation: pkg.Fit.Explanation,
		AttemptCounts:  pkg.Meta.AttemptCounts,
	})
}

// handleListPackages returns completed packages, newest first.
func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := packaging.ListPackages(s.cfg.OutputDir, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	metas := make([]types.PackageMetadata, 0, len(entries))
	for _, entry := range entries {
		metas = append(metas, entry.Meta)
	}
	s.jsonResponse(w, http.StatusOK, metas)
}

// httpStatus maps pipeline errors to HTTP status codes.
func httpStatus(err error) int {
	var invalid *types.InvalidInputError
	var failed *pipeline.RunFailedError
	var unavailable *pipeline.ServiceUnavailableError

	switch {
	case errors.Is(err, pipeline.ErrRunInProgress):
		return http.StatusConflict
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &failed):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
