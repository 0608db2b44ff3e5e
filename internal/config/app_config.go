package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/treexio/treex/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Export ExportConfiguration `mapstructure:"export"`
}

// ExportConfiguration defines configurable defaults for the export command.
type ExportConfiguration struct {
	Format        string   `mapstructure:"format"`
	Copy          *bool    `mapstructure:"copy"`
	Output        string   `mapstructure:"output"`
	IgnoreFile    string   `mapstructure:"ignore_file"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore"`
	Exclude       []string `mapstructure:"exclude"`
}

// Merge overlays the other configuration on top of the receiver and returns
// the result. Values set in other win.
func (configuration ApplicationConfiguration) Merge(other ApplicationConfiguration) ApplicationConfiguration {
	merged := configuration
	if other.Export.Format != "" {
		merged.Export.Format = other.Export.Format
	}
	if other.Export.Copy != nil {
		merged.Export.Copy = other.Export.Copy
	}
	if other.Export.Output != "" {
		merged.Export.Output = other.Export.Output
	}
	if other.Export.IgnoreFile != "" {
		merged.Export.IgnoreFile = other.Export.IgnoreFile
	}
	if other.Export.UseIgnoreFile != nil {
		merged.Export.UseIgnoreFile = other.Export.UseIgnoreFile
	}
	if len(other.Export.Exclude) > 0 {
		merged.Export.Exclude = append(merged.Export.Exclude, other.Export.Exclude...)
	}
	return merged
}

// LoadApplicationConfiguration loads configuration from the global and local
// files, local values overriding global ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := options.ExplicitFilePath
	if localPath == "" {
		localPath = filepath.Join(workingDirectory, utils.ConfigFileName)
	} else if !filepath.IsAbs(localPath) {
		localPath = filepath.Join(workingDirectory, localPath)
	}
	localConfiguration, loadError := loadConfigurationFromPath(localPath)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	merged = merged.Merge(localConfiguration)

	merged.Export.Exclude = utils.DeduplicatePatterns(merged.Export.Exclude)
	return merged, nil
}

// loadConfigurationFromPath reads a single YAML configuration file. A missing
// file yields an empty configuration.
func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(configurationPath)
	viperInstance.SetConfigType("yaml")

	if readError := viperInstance.ReadInConfig(); readError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if errors.As(readError, &notFoundError) || os.IsNotExist(readError) {
			return ApplicationConfiguration{}, nil
		}
		if _, statError := os.Stat(configurationPath); os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("read configuration %s: %w", configurationPath, readError)
	}

	var configuration ApplicationConfiguration
	if unmarshalError := viperInstance.Unmarshal(&configuration); unmarshalError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("parse configuration %s: %w", configurationPath, unmarshalError)
	}
	return configuration, nil
}
