// Package commands contains the core logic for data collection for each command.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/treexio/treex/internal/types"
	"github.com/treexio/treex/internal/walker"
)

const (
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing root path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a root that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
	// errorNoValidRoots indicates that all roots are invalid.
	errorNoValidRoots = "no valid root directories"
	// errorExportRootFormat adds root context to a failed top-level listing.
	errorExportRootFormat = "exporting root %s (%s): %w"
	// warningSkipRootFormat is used when a root cannot be exported.
	warningSkipRootFormat = "Warning: skipping root %s: %v\n"
)

// Exporter walks configured roots and collects one WorkspaceResult per root.
// LoadPatterns is invoked once per root, before that root's traversal begins.
type Exporter struct {
	Walker       *walker.Walker
	LoadPatterns func(absoluteRootPath string) []string
}

// ExportRoot walks a single validated root and returns its line sequence. A
// failed top-level listing is returned with root context; nested failures are
// already absorbed into the lines by the walker.
func (exporter *Exporter) ExportRoot(root types.ValidatedRoot) (types.WorkspaceResult, error) {
	var patterns []string
	if exporter.LoadPatterns != nil {
		patterns = exporter.LoadPatterns(root.AbsolutePath)
	}

	treeWalker := exporter.Walker
	if treeWalker == nil {
		treeWalker = &walker.Walker{}
	}

	lines, walkError := treeWalker.Walk(root.AbsolutePath, 0, patterns, root.AbsolutePath)
	if walkError != nil {
		return types.WorkspaceResult{}, fmt.Errorf(errorExportRootFormat, root.Name, root.AbsolutePath, walkError)
	}
	return types.WorkspaceResult{Root: root.AbsolutePath, Lines: lines}, nil
}

// ExportRoots processes the roots strictly sequentially, one listing
// completing before the next begins. A root whose export fails is reported to
// stderr and omitted from the results; the first such failure is returned
// after the remaining roots finish.
func (exporter *Exporter) ExportRoots(roots []types.ValidatedRoot) ([]types.WorkspaceResult, error) {
	var results []types.WorkspaceResult
	var firstProcessingError error

	for _, root := range roots {
		result, exportError := exporter.ExportRoot(root)
		if exportError != nil {
			fmt.Fprintf(os.Stderr, warningSkipRootFormat, root.AbsolutePath, exportError)
			if firstProcessingError == nil {
				firstProcessingError = exportError
			}
			continue
		}
		results = append(results, result)
	}

	return results, firstProcessingError
}

// ResolveRoots converts input paths to absolute form, validates that each
// exists and is a directory, and removes duplicates while preserving order.
func ResolveRoots(inputPaths []string) ([]types.ValidatedRoot, error) {
	seenPaths := make(map[string]struct{})
	var roots []types.ValidatedRoot
	for _, inputPath := range inputPaths {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, alreadySeen := seenPaths[cleanPath]; alreadySeen {
			continue
		}
		fileInformation, statError := os.Stat(cleanPath)
		if statError != nil {
			if os.IsNotExist(statError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, statError)
		}
		if !fileInformation.IsDir() {
			return nil, fmt.Errorf(errorNotDirectoryFormat, inputPath)
		}
		seenPaths[cleanPath] = struct{}{}
		roots = append(roots, types.ValidatedRoot{
			AbsolutePath: cleanPath,
			Name:         filepath.Base(cleanPath),
		})
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf(errorNoValidRoots)
	}
	return roots, nil
}
