// Package config loads ignore patterns and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treexio/treex/internal/utils"
)

const commentLinePrefix = "#"

// LoadIgnoreFilePatterns reads an ignore file (if it exists) and returns its
// patterns in file order. Blank lines and lines beginning with '#' are
// skipped; line endings may be LF or CRLF. A missing file is not an error and
// yields zero patterns.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openError := os.Open(ignoreFilePath)
	if openError != nil {
		if os.IsNotExist(openError) {
			return nil, nil
		}
		return nil, openError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		lineValue := strings.TrimSpace(scanner.Text())
		if lineValue == "" || strings.HasPrefix(lineValue, commentLinePrefix) {
			continue
		}
		patterns = append(patterns, lineValue)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patterns, nil
}

// LoadCombinedIgnorePatterns loads patterns from the named ignore file inside
// the root directory (when enabled), appends the caller-supplied exclusion
// patterns, and returns the combined, deduplicated list. Any failure reading
// the ignore file degrades to the exclusion patterns alone.
func LoadCombinedIgnorePatterns(absoluteRootPath string, ignoreFileName string, useIgnoreFile bool, exclusionPatterns []string) []string {
	var combinedPatterns []string

	if useIgnoreFile {
		if ignoreFileName == "" {
			ignoreFileName = utils.IgnoreFileName
		}
		ignoreFilePath := filepath.Join(absoluteRootPath, ignoreFileName)
		loadedPatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
		if loadError != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", ignoreFilePath, loadError)
		} else {
			combinedPatterns = append(combinedPatterns, loadedPatterns...)
		}
	}

	combinedPatterns = append(combinedPatterns, exclusionPatterns...)
	return utils.DeduplicatePatterns(combinedPatterns)
}
