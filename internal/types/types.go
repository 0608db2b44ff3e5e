// Package types defines every cross-package data structure used by the treex CLI.
package types

import "strings"

const (
	EntryKindFile      = "file"
	EntryKindDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
)

// indentUnit is the indentation added per tree depth level.
const indentUnit = "  "

// ValidatedRoot is an absolute root directory that already passed existence checks.
type ValidatedRoot struct {
	AbsolutePath string
	Name         string
}

// TreeEntry is one directory member as reported by a directory lister.
type TreeEntry struct {
	Name        string
	IsDirectory bool
}

// Kind returns the entry kind constant for the entry.
func (entry TreeEntry) Kind() string {
	if entry.IsDirectory {
		return EntryKindDirectory
	}
	return EntryKindFile
}

// TreeLine is one rendering unit of an exported listing: an indentation depth
// paired with a display name or a synthetic error annotation.
type TreeLine struct {
	Depth int    `json:"depth"`
	Text  string `json:"text"`
}

// Render returns the indented display form of the line.
func (line TreeLine) Render() string {
	return strings.Repeat(indentUnit, line.Depth) + line.Text
}

// WorkspaceResult holds the full line sequence produced for one root.
type WorkspaceResult struct {
	Root  string     `json:"root"`
	Lines []TreeLine `json:"lines"`
}
