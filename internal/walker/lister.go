package walker

import (
	"os"

	"github.com/treexio/treex/internal/types"
)

// DirectoryLister lists the immediate entries of a directory. Entry order is
// passed through to the produced listing unchanged, so implementations decide
// the ordering contract.
type DirectoryLister interface {
	ListDirectory(directoryPath string) ([]types.TreeEntry, error)
}

// OSLister implements DirectoryLister on top of os.ReadDir.
type OSLister struct{}

// ListDirectory returns the immediate entries of directoryPath in the order
// os.ReadDir reports them.
func (OSLister) ListDirectory(directoryPath string) ([]types.TreeEntry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, readDirectoryError
	}
	entries := make([]types.TreeEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entries = append(entries, types.TreeEntry{
			Name:        directoryEntry.Name(),
			IsDirectory: directoryEntry.IsDir(),
		})
	}
	return entries, nil
}

var _ DirectoryLister = OSLister{}
