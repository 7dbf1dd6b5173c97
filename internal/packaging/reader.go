package packaging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/jobkit/internal/schemas"
	"github.com/jonathan/jobkit/internal/types"
)

// Entry is one complete package found under the output root.
type Entry struct {
	Meta types.PackageMetadata
	Path string
}

// ListPackages returns complete packages under root, newest first, up to
// limit (0 means no limit). Directories without a valid meta.json are
// in-flight or damaged and are skipped, so readers never observe a
// partial package.
func ListPackages(root string, limit int) ([]Entry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &IOError{Message: "failed to read output root", Cause: err}
	}

	var names []string
	for _, de := range dirEntries {
		if !de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		names = append(names, de.Name())
	}
	// Package names start with a timestamp, so lexical order is
	// chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var entries []Entry
	for _, name := range names {
		path := filepath.Join(root, name)
		meta, ok := readMetadata(path)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Meta: meta, Path: path})
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

// readMetadata loads and schema-checks a package's meta.json.
func readMetadata(dir string) (types.PackageMetadata, bool) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFileName))
	if err != nil {
		return types.PackageMetadata{}, false
	}
	if err := schemas.ValidateMetadata(data); err != nil {
		return types.PackageMetadata{}, false
	}

	var meta types.PackageMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return types.PackageMetadata{}, false
	}
	return meta, true
}
