// Package utils contains general helper functions used across the treex tool.
package utils

import (
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving
// order. The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, patternValue := range patterns {
		if _, exists := encounteredPatterns[patternValue]; !exists {
			encounteredPatterns[patternValue] = struct{}{}
			result = append(result, patternValue)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the path of fullPath relative to root with
// forward-slash separators regardless of the host OS. Returns the cleaned
// fullPath in slash form if relative calculation fails and "." if fullPath
// and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return normalizeSeparators(cleanPath)
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relativeError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativeError != nil {
		return normalizeSeparators(cleanPath)
	}
	return normalizeSeparators(relativePath)
}

// normalizeSeparators replaces OS-native backslash separators with forward
// slashes so matching and output use one canonical form.
func normalizeSeparators(pathValue string) string {
	return strings.ReplaceAll(filepath.ToSlash(pathValue), "\\", "/")
}
