package walker_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/treexio/treex/internal/types"
	"github.com/treexio/treex/internal/walker"
)

// virtualRoot is the absolute root used with the fake lister.
const virtualRoot = "/virtual/root"

// fakeLister serves directory listings from a map and records every listed path.
type fakeLister struct {
	listings    map[string][]types.TreeEntry
	failures    map[string]error
	listedPaths []string
}

// ListDirectory returns the configured entries or failure for directoryPath.
func (lister *fakeLister) ListDirectory(directoryPath string) ([]types.TreeEntry, error) {
	lister.listedPaths = append(lister.listedPaths, directoryPath)
	if failure, hasFailure := lister.failures[directoryPath]; hasFailure {
		return nil, failure
	}
	return lister.listings[directoryPath], nil
}

// recordingObserver captures skip and read-failure notifications.
type recordingObserver struct {
	skippedPaths     []string
	unreadablePaths  []string
	unreadableErrors []error
}

// EntrySkipped records a skipped relative path.
func (observer *recordingObserver) EntrySkipped(relativePath string) {
	observer.skippedPaths = append(observer.skippedPaths, relativePath)
}

// DirectoryUnreadable records an absorbed nested read failure.
func (observer *recordingObserver) DirectoryUnreadable(directoryPath string, listError error) {
	observer.unreadablePaths = append(observer.unreadablePaths, directoryPath)
	observer.unreadableErrors = append(observer.unreadableErrors, listError)
}

// renderLines converts tree lines into their displayed string forms.
func renderLines(lines []types.TreeLine) []string {
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, line.Render())
	}
	return rendered
}

// TestWalkBasicTree verifies pre-order emission and two-space indentation per depth.
func TestWalkBasicTree(testingHandle *testing.T) {
	lister := &fakeLister{
		listings: map[string][]types.TreeEntry{
			virtualRoot: {
				{Name: "a.txt"},
				{Name: "b", IsDirectory: true},
			},
			filepath.Join(virtualRoot, "b"): {
				{Name: "c.txt"},
			},
		},
	}
	treeWalker := &walker.Walker{Lister: lister}

	lines, walkError := treeWalker.Walk(virtualRoot, 0, nil, virtualRoot)
	if walkError != nil {
		testingHandle.Fatalf("Walk failed: %v", walkError)
	}

	expectedRendered := []string{"a.txt", "b", "  c.txt"}
	if !reflect.DeepEqual(renderLines(lines), expectedRendered) {
		testingHandle.Fatalf("unexpected lines: got %v want %v", renderLines(lines), expectedRendered)
	}
}

// TestWalkSkipsIgnoredEntries verifies that an ignored directory is excluded
// entirely: no line, no recursion, and one observer notification.
func TestWalkSkipsIgnoredEntries(testingHandle *testing.T) {
	nodeModulesPath := filepath.Join(virtualRoot, "node_modules")
	lister := &fakeLister{
		listings: map[string][]types.TreeEntry{
			virtualRoot: {
				{Name: "node_modules", IsDirectory: true},
				{Name: "main.go"},
			},
			nodeModulesPath: {
				{Name: "dependency.js"},
			},
		},
	}
	observer := &recordingObserver{}
	treeWalker := &walker.Walker{Lister: lister, Observer: observer}

	lines, walkError := treeWalker.Walk(virtualRoot, 0, []string{"node_modules/"}, virtualRoot)
	if walkError != nil {
		testingHandle.Fatalf("Walk failed: %v", walkError)
	}

	expectedRendered := []string{"main.go"}
	if !reflect.DeepEqual(renderLines(lines), expectedRendered) {
		testingHandle.Fatalf("unexpected lines: got %v want %v", renderLines(lines), expectedRendered)
	}
	if len(observer.skippedPaths) != 1 || observer.skippedPaths[0] != "node_modules" {
		testingHandle.Fatalf("unexpected skip notifications: %v", observer.skippedPaths)
	}
	for _, listedPath := range lister.listedPaths {
		if listedPath == nodeModulesPath {
			testingHandle.Fatalf("walker recursed into ignored directory %s", nodeModulesPath)
		}
	}
}

// TestWalkNestedReadFailure verifies that a failing subdirectory is absorbed
// as one synthetic error line at its child depth while siblings survive.
func TestWalkNestedReadFailure(testingHandle *testing.T) {
	listFailure := errors.New("permission denied")
	failingPath := filepath.Join(virtualRoot, "locked")
	lister := &fakeLister{
		listings: map[string][]types.TreeEntry{
			virtualRoot: {
				{Name: "before.txt"},
				{Name: "locked", IsDirectory: true},
				{Name: "after.txt"},
			},
		},
		failures: map[string]error{
			failingPath: listFailure,
		},
	}
	observer := &recordingObserver{}
	treeWalker := &walker.Walker{Lister: lister, Observer: observer}

	lines, walkError := treeWalker.Walk(virtualRoot, 0, nil, virtualRoot)
	if walkError != nil {
		testingHandle.Fatalf("Walk failed: %v", walkError)
	}

	expectedRendered := []string{
		"before.txt",
		"locked",
		fmt.Sprintf("  [Error reading directory: %v]", listFailure),
		"after.txt",
	}
	if !reflect.DeepEqual(renderLines(lines), expectedRendered) {
		testingHandle.Fatalf("unexpected lines: got %v want %v", renderLines(lines), expectedRendered)
	}
	if len(observer.unreadablePaths) != 1 || observer.unreadablePaths[0] != failingPath {
		testingHandle.Fatalf("unexpected unreadable notifications: %v", observer.unreadablePaths)
	}
}

// TestWalkRootReadFailure verifies that a failure listing the walked directory
// itself propagates as *DirectoryReadError instead of being absorbed.
func TestWalkRootReadFailure(testingHandle *testing.T) {
	listFailure := errors.New("no such directory")
	lister := &fakeLister{
		failures: map[string]error{
			virtualRoot: listFailure,
		},
		listings: map[string][]types.TreeEntry{},
	}
	treeWalker := &walker.Walker{Lister: lister}

	lines, walkError := treeWalker.Walk(virtualRoot, 0, nil, virtualRoot)
	if walkError == nil {
		testingHandle.Fatalf("expected Walk to fail")
	}
	var readError *walker.DirectoryReadError
	if !errors.As(walkError, &readError) {
		testingHandle.Fatalf("expected *DirectoryReadError, got %T", walkError)
	}
	if readError.Path != virtualRoot || !errors.Is(readError, listFailure) {
		testingHandle.Fatalf("unexpected read error: %v", readError)
	}
	if lines != nil {
		testingHandle.Fatalf("expected no lines on root failure, got %v", lines)
	}
}

// TestWalkOSListerIdempotent verifies the walk against a real filesystem tree
// and that repeating it on an unmodified tree yields identical output.
func TestWalkOSListerIdempotent(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	subDirectoryPath := filepath.Join(rootDirectory, "sub")
	if makeDirError := os.MkdirAll(subDirectoryPath, 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create subdirectory: %v", makeDirError)
	}
	for _, fileName := range []string{"visible.txt", "skipped.log"} {
		if writeError := os.WriteFile(filepath.Join(rootDirectory, fileName), []byte(fileName), 0o644); writeError != nil {
			testingHandle.Fatalf("failed to write %s: %v", fileName, writeError)
		}
	}
	if writeError := os.WriteFile(filepath.Join(subDirectoryPath, "nested.txt"), []byte("nested"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write nested file: %v", writeError)
	}

	treeWalker := &walker.Walker{}
	patterns := []string{"*.log"}

	firstLines, firstError := treeWalker.Walk(rootDirectory, 0, patterns, rootDirectory)
	if firstError != nil {
		testingHandle.Fatalf("Walk failed: %v", firstError)
	}
	expectedRendered := []string{"sub", "  nested.txt", "visible.txt"}
	if !reflect.DeepEqual(renderLines(firstLines), expectedRendered) {
		testingHandle.Fatalf("unexpected lines: got %v want %v", renderLines(firstLines), expectedRendered)
	}

	secondLines, secondError := treeWalker.Walk(rootDirectory, 0, patterns, rootDirectory)
	if secondError != nil {
		testingHandle.Fatalf("second Walk failed: %v", secondError)
	}
	if !reflect.DeepEqual(firstLines, secondLines) {
		testingHandle.Fatalf("walk is not idempotent: first %v second %v", firstLines, secondLines)
	}
}
