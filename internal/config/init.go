package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/treexio/treex/internal/utils"
)

const defaultIgnoreTemplate = `# treex ignore patterns
# One pattern per line. A trailing "/" ignores a directory and everything
# beneath it, "*" matches any characters, anything else matches an exact
# name or path prefix.
node_modules/
.git/
dist/
build/
out/
coverage/
*.log
.DS_Store
`

// InitOptions controls how ignore-file initialization behaves.
type InitOptions struct {
	Force            bool
	WorkingDirectory string
}

// InitializeIgnoreFile writes the default ignore file into the working
// directory and returns the written path. An existing file is only replaced
// when Force is set.
func InitializeIgnoreFile(options InitOptions) (string, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return "", fmt.Errorf("determine working directory for ignore file: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}
	destinationPath := filepath.Join(workingDirectory, utils.IgnoreFileName)

	if _, statError := os.Stat(destinationPath); statError == nil {
		if !options.Force {
			return "", fmt.Errorf("ignore file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(statError) {
		return "", fmt.Errorf("inspect ignore file path %s: %w", destinationPath, statError)
	}

	if writeError := os.WriteFile(destinationPath, []byte(defaultIgnoreTemplate), 0o600); writeError != nil {
		return "", fmt.Errorf("write ignore file to %s: %w", destinationPath, writeError)
	}

	return destinationPath, nil
}
