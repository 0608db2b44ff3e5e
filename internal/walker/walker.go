// Package walker traverses directory trees and produces indented tree lines.
package walker

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/treexio/treex/internal/match"
	"github.com/treexio/treex/internal/types"
	"github.com/treexio/treex/internal/utils"
)

const (
	// errorReadDirectoryFormat wraps a failed directory listing.
	errorReadDirectoryFormat = "reading directory %s: %v"
	// errorLineFormat renders an absorbed nested read failure as a tree line.
	errorLineFormat = "[Error reading directory: %v]"
)

// DirectoryReadError reports that listing a directory failed. It is fatal for
// the root-level call of a walk and absorbed into the output for nested calls.
type DirectoryReadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (readError *DirectoryReadError) Error() string {
	return fmt.Sprintf(errorReadDirectoryFormat, readError.Path, readError.Err)
}

// Unwrap exposes the underlying listing failure.
func (readError *DirectoryReadError) Unwrap() error {
	return readError.Err
}

// Observer receives notifications about entries the walk skipped and nested
// read failures it absorbed. All methods are invoked from the walking
// goroutine only.
type Observer interface {
	EntrySkipped(relativePath string)
	DirectoryUnreadable(directoryPath string, listError error)
}

// Walker produces the TreeLine sequence for a directory tree, consulting the
// pattern matcher per entry. The zero value walks the host filesystem with no
// observer.
type Walker struct {
	Lister   DirectoryLister
	Observer Observer
}

// Walk lists directoryPath and returns one TreeLine per surviving entry at
// the given depth, descending into non-ignored subdirectories at depth+1.
// Entry paths are matched relative to rootPath with forward-slash separators.
//
// A failure listing directoryPath itself is returned as *DirectoryReadError.
// A failure inside a subdirectory is absorbed as a synthetic error line at
// the subdirectory's child depth and sibling processing continues; the
// asymmetry is intentional so one unreadable subtree cannot abort the walk.
func (treeWalker *Walker) Walk(directoryPath string, depth int, patterns []string, rootPath string) ([]types.TreeLine, error) {
	lister := treeWalker.Lister
	if lister == nil {
		lister = OSLister{}
	}

	entries, listError := lister.ListDirectory(directoryPath)
	if listError != nil {
		return nil, &DirectoryReadError{Path: directoryPath, Err: listError}
	}

	var lines []types.TreeLine
	for _, entry := range entries {
		entryPath := filepath.Join(directoryPath, entry.Name)
		relativePath := utils.RelativePathOrSelf(entryPath, rootPath)

		if match.IsIgnored(relativePath, patterns) {
			treeWalker.notifySkipped(relativePath)
			continue
		}

		lines = append(lines, types.TreeLine{Depth: depth, Text: entry.Name})

		if !entry.IsDirectory {
			continue
		}
		childLines, childError := treeWalker.Walk(entryPath, depth+1, patterns, rootPath)
		if childError != nil {
			var readError *DirectoryReadError
			if !errors.As(childError, &readError) {
				return nil, childError
			}
			treeWalker.notifyUnreadable(readError.Path, readError.Err)
			lines = append(lines, types.TreeLine{
				Depth: depth + 1,
				Text:  fmt.Sprintf(errorLineFormat, readError.Err),
			})
			continue
		}
		lines = append(lines, childLines...)
	}

	return lines, nil
}

func (treeWalker *Walker) notifySkipped(relativePath string) {
	if treeWalker.Observer != nil {
		treeWalker.Observer.EntrySkipped(relativePath)
	}
}

func (treeWalker *Walker) notifyUnreadable(directoryPath string, listError error) {
	if treeWalker.Observer != nil {
		treeWalker.Observer.DirectoryUnreadable(directoryPath, listError)
	}
}
