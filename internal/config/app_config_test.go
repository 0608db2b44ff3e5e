package config

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/treexio/treex/internal/utils"
)

// TestLoadApplicationConfigurationLocalFile verifies parsing of a local
// configuration file.
func TestLoadApplicationConfigurationLocalFile(testingHandle *testing.T) {
	testingHandle.Setenv("HOME", testingHandle.TempDir())
	workingDirectory := testingHandle.TempDir()
	configurationContent := `export:
  format: json
  copy: true
  output: tree.txt
  ignore_file: .exportignore
  exclude:
    - vendor/
    - "*.tmp"
    - vendor/
`
	writeTestFile(testingHandle, filepath.Join(workingDirectory, utils.ConfigFileName), configurationContent)

	configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration failed: %v", loadError)
	}

	if configuration.Export.Format != "json" {
		testingHandle.Fatalf("unexpected format: %s", configuration.Export.Format)
	}
	if configuration.Export.Copy == nil || !*configuration.Export.Copy {
		testingHandle.Fatalf("expected copy to be enabled")
	}
	if configuration.Export.Output != "tree.txt" {
		testingHandle.Fatalf("unexpected output: %s", configuration.Export.Output)
	}
	if configuration.Export.IgnoreFile != ".exportignore" {
		testingHandle.Fatalf("unexpected ignore file: %s", configuration.Export.IgnoreFile)
	}
	expectedExclusions := []string{"vendor/", "*.tmp"}
	if !reflect.DeepEqual(configuration.Export.Exclude, expectedExclusions) {
		testingHandle.Fatalf("unexpected exclusions: got %v want %v", configuration.Export.Exclude, expectedExclusions)
	}
}

// TestLoadApplicationConfigurationMissingFile verifies that configuration is
// optional.
func TestLoadApplicationConfigurationMissingFile(testingHandle *testing.T) {
	testingHandle.Setenv("HOME", testingHandle.TempDir())
	configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: testingHandle.TempDir()})
	if loadError != nil {
		testingHandle.Fatalf("expected missing configuration to load as empty, got %v", loadError)
	}
	if configuration.Export.Format != "" || configuration.Export.Copy != nil {
		testingHandle.Fatalf("expected empty configuration, got %+v", configuration)
	}
}

// TestApplicationConfigurationMerge verifies that overlay values win and
// exclusions accumulate.
func TestApplicationConfigurationMerge(testingHandle *testing.T) {
	baseCopy := false
	base := ApplicationConfiguration{
		Export: ExportConfiguration{
			Format:  "raw",
			Copy:    &baseCopy,
			Exclude: []string{"vendor/"},
		},
	}
	overlayCopy := true
	overlay := ApplicationConfiguration{
		Export: ExportConfiguration{
			Format:  "json",
			Copy:    &overlayCopy,
			Exclude: []string{"dist/"},
		},
	}

	merged := base.Merge(overlay)

	if merged.Export.Format != "json" {
		testingHandle.Fatalf("unexpected merged format: %s", merged.Export.Format)
	}
	if merged.Export.Copy == nil || !*merged.Export.Copy {
		testingHandle.Fatalf("expected overlay copy value to win")
	}
	expectedExclusions := []string{"vendor/", "dist/"}
	if !reflect.DeepEqual(merged.Export.Exclude, expectedExclusions) {
		testingHandle.Fatalf("unexpected merged exclusions: got %v want %v", merged.Export.Exclude, expectedExclusions)
	}
}
