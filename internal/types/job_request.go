// Package types provides type definitions for structured data used throughout the jobkit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Seniority hint values accepted on a JobRequest. The hint is informational
// and passed through to prompts; unknown values are not an error.
const (
	SeniorityJunior       = "junior"
	SeniorityIntermediate = "intermediate"
	SenioritySenior       = "senior"
	SeniorityLead         = "lead"
	SeniorityDirector     = "director"
	SeniorityExecutive    = "executive"
)

// JobRequest is the immutable input for one pipeline run.
type JobRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	Company        string `json:"company" validate:"required"`
	Title          string `json:"title" validate:"required"`
	Location       string `json:"location,omitempty"`
	SeniorityHint  string `json:"seniority_hint,omitempty"`
}

// InvalidInputError indicates a caller error in the request data.
// It is never retried.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

var validate = validator.New()

// Validate checks the request invariants. Resume text and job description
// must be non-empty after trimming; company and title are required for the
// package identifier.
func (r *JobRequest) Validate() error {
	if strings.TrimSpace(r.ResumeText) == "" {
		return &InvalidInputError{Field: "resume_text", Message: "must not be empty"}
	}
	if strings.TrimSpace(r.JobDescription) == "" {
		return &InvalidInputError{Field: "job_description", Message: "must not be empty"}
	}

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if ok := errors.As(err, &verrs); ok && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return &InvalidInputError{Field: field, Message: "failed " + verrs[0].Tag() + " check"}
		}
		return &InvalidInputError{Field: "request", Message: err.Error()}
	}
	return nil
}

// InputSummary returns a short description of the request suitable for
// package metadata.
func (r *JobRequest) InputSummary() string {
	loc := r.Location
	if loc == "" {
		loc = "unspecified"
	}
	return fmt.Sprintf("%s at %s (%s); resume %d words, job description %d words",
		r.Title, r.Company, loc,
		len(strings.Fields(r.ResumeText)), len(strings.Fields(r.JobDescription)))
}
