// Package schemas embeds the JSON schemas for persisted artifacts and
// provides validation helpers for them.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed meta_package.json
var metaPackageSchema []byte

// ValidateMetadata checks a serialized package metadata document against
// the embedded schema. Readers use this to reject malformed or truncated
// meta.json files instead of trusting directory contents blindly.
func ValidateMetadata(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(metaPackageSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate metadata: %w", err)
	}

	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return fmt.Errorf("metadata does not match schema: %s", strings.Join(issues, "; "))
	}
	return nil
}
