// Package match decides whether a relative path is excluded by ignore patterns.
package match

import (
	"regexp"
	"strings"
)

const (
	directoryPatternSuffix = "/"
	wildcardCharacter      = "*"
	wildcardReplacement    = ".*"
)

// IsIgnored reports whether relativePath is excluded by any of the provided
// patterns. relativePath must be relative to the traversal root and use
// forward slashes. Matching is a disjunction: the first pattern that matches
// decides, and an empty pattern list never matches.
//
// Three pattern kinds are recognized:
//   - a trailing "/" marks a directory-prefix pattern,
//   - a "*" anywhere marks a wildcard pattern,
//   - anything else is an exact name or path-prefix pattern.
func IsIgnored(relativePath string, patterns []string) bool {
	for _, patternValue := range patterns {
		if matchesPattern(relativePath, patternValue) {
			return true
		}
	}
	return false
}

// matchesPattern applies exactly one matching rule based on the pattern kind.
func matchesPattern(relativePath string, patternValue string) bool {
	if strings.HasSuffix(patternValue, directoryPatternSuffix) {
		// Both prefix checks are kept: the second one is what lets a pattern
		// like "node_modules/" match the bare path "node_modules" itself.
		trimmedPattern := strings.TrimSuffix(patternValue, directoryPatternSuffix)
		return strings.HasPrefix(relativePath, patternValue) ||
			strings.HasPrefix(relativePath, trimmedPattern)
	}

	if strings.Contains(patternValue, wildcardCharacter) {
		translatedPattern := strings.ReplaceAll(patternValue, wildcardCharacter, wildcardReplacement)
		compiledPattern, compileError := regexp.Compile(translatedPattern)
		if compileError != nil {
			return false
		}
		// The search is deliberately unanchored, so "*.log" also matches
		// "access.log.bak". Characters other than '*' are not escaped, so
		// '.' and '+' keep their regular-expression meaning.
		return compiledPattern.MatchString(relativePath)
	}

	return relativePath == patternValue ||
		strings.HasPrefix(relativePath, patternValue+directoryPatternSuffix)
}
