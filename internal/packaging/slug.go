// Package packaging persists job packages as self-contained, atomically
// materialized directories and reads them back.
package packaging

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	whitespacePattern   = regexp.MustCompile(`\s+`)
	invalidCharsPattern = regexp.MustCompile(`[^a-z0-9_]`)
)

// Slug converts free text into a filesystem-safe identifier part.
func Slug(text, fallback string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return fallback
	}

	cleaned = whitespacePattern.ReplaceAllString(strings.ToLower(cleaned), "_")
	cleaned = invalidCharsPattern.ReplaceAllString(cleaned, "")

	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// PackageID builds the unique directory name for one run:
// timestamp, company slug, title slug, and a short run-ID suffix so two
// runs within the same second still get distinct identifiers.
func PackageID(createdAt time.Time, company, title, runID string) string {
	suffix := runID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("%s_%s_%s_%s",
		createdAt.Format("20060102_150405"),
		Slug(company, "company"),
		Slug(title, "title"),
		suffix,
	)
}
