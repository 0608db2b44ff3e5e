// Package output renders collected workspace results for display or persistence.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/treexio/treex/internal/types"
)

const (
	// rootBannerFormat heads a root's section when several roots are rendered.
	rootBannerFormat = "--- Directory Tree: %s ---"
	// emptyJSONDocument is emitted when there are no results to marshal.
	emptyJSONDocument = "[]"
	// errorMarshalFormat reports a JSON marshaling failure.
	errorMarshalFormat = "failed to marshal results to JSON: %w"
)

// RenderRaw returns the newline-joined listing for the provided results. With
// more than one result each root's line sequence is prefixed by a banner
// naming the root; a single result is rendered bare.
func RenderRaw(results []types.WorkspaceResult) string {
	includeBanners := len(results) > 1
	var renderedLines []string
	for _, result := range results {
		if includeBanners {
			renderedLines = append(renderedLines, fmt.Sprintf(rootBannerFormat, result.Root))
		}
		for _, line := range result.Lines {
			renderedLines = append(renderedLines, line.Render())
		}
	}
	return strings.Join(renderedLines, "\n")
}

// RenderJSON returns the indented JSON document for the provided results.
func RenderJSON(results []types.WorkspaceResult) (string, error) {
	if len(results) == 0 {
		return emptyJSONDocument, nil
	}
	jsonData, marshalError := json.MarshalIndent(results, "", "  ")
	if marshalError != nil {
		return "", fmt.Errorf(errorMarshalFormat, marshalError)
	}
	return string(jsonData), nil
}

// Render dispatches to the renderer for the requested format.
func Render(results []types.WorkspaceResult, format string) (string, error) {
	switch format {
	case types.FormatJSON:
		return RenderJSON(results)
	case types.FormatRaw:
		return RenderRaw(results), nil
	default:
		return "", fmt.Errorf("unsupported output format '%s'", format)
	}
}
