// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/treexio/treex/internal/commands"
	"github.com/treexio/treex/internal/config"
	"github.com/treexio/treex/internal/output"
	"github.com/treexio/treex/internal/services/clipboard"
	"github.com/treexio/treex/internal/types"
	"github.com/treexio/treex/internal/utils"
	"github.com/treexio/treex/internal/walker"
)

const (
	exclusionFlagName    = "e"
	noIgnoreFlagName     = "no-ignore"
	ignoreFileFlagName   = "ignore-file"
	formatFlagName       = "format"
	outputFlagName       = "output"
	copyFlagName         = "copy"
	forceFlagName        = "force"
	configFlagName       = "config"
	versionFlagName      = "version"
	versionTemplate      = "treex version: %s\n"
	defaultPath          = "."
	rootUse              = "treex"
	rootShortDescription = "treex command line interface"
	rootLongDescription  = `treex exports directory trees as indented text listings.
It excludes entries matching ignore patterns and can print, save, or copy the result.
Use --format to select raw or json output and --version to print the application version.`
	versionFlagDescription = "display application version"

	exportUse              = "export [paths...]"
	exportAlias            = "e"
	exportShortDescription = "export directory trees (" + exportAlias + ")"
	// exportLongDescription provides detailed help for the export command.
	exportLongDescription = `Export the directory tree of one or more roots as an indented listing.
Entries matching patterns from the ignore file or -e flags are excluded.
Use --format to select raw or json output, --output to write a file, and --copy to place the result on the clipboard.`
	// exportUsageExample demonstrates export command usage.
	exportUsageExample = `  # Print the tree of the current directory
  treex export

  # Export two roots to a file, excluding vendor
  treex export -e vendor/ --output tree.txt ./api ./web

  # Copy the JSON form to the clipboard
  treex export --format json --copy .`

	initUse              = "init"
	initShortDescription = "write the default ignore file"
	// initLongDescription provides detailed help for the init command.
	initLongDescription = `Write the default ` + utils.IgnoreFileName + ` template into the working directory.
An existing file is only replaced when --force is given.`

	exclusionFlagDescription     = "exclude pattern (repeatable)"
	disableIgnoreFlagDescription = "do not read the ignore file"
	ignoreFileFlagDescription    = "ignore file name inside each root"
	formatFlagDescription        = "output format"
	outputFlagDescription        = "write output to file instead of stdout"
	copyFlagDescription          = "copy output to the system clipboard"
	forceFlagDescription         = "replace an existing ignore file"
	configFlagDescription        = "configuration file path"

	invalidFormatMessage        = "Invalid format value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorWriteOutputFormat reports a failed output file write.
	errorWriteOutputFormat = "writing output to %s: %w"
	// errorClipboardFormat reports a failed clipboard copy.
	errorClipboardFormat = "copying output to clipboard: %w"

	statusWroteFileFormat   = "Wrote tree listing to %s"
	statusCopiedFormat      = "Copied tree listing to clipboard (%d lines)"
	statusInitializedFormat = "Wrote default ignore file to %s"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON:
		return true
	default:
		return false
	}
}

// Execute runs the treex application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeCopyFlagArguments(os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createExportCommand(),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// exportOptions stores the resolved configuration for one export invocation.
type exportOptions struct {
	exclusionPatterns []string
	disableIgnoreFile bool
	ignoreFileName    string
	outputFormat      string
	outputFilePath    string
	copyToClipboard   bool
}

// createExportCommand returns the export subcommand.
func createExportCommand() *cobra.Command {
	var options exportOptions
	var configurationFilePath string
	options.outputFormat = types.FormatRaw

	exportCommand := &cobra.Command{
		Use:     exportUse,
		Aliases: []string{exportAlias},
		Short:   exportShortDescription,
		Long:    exportLongDescription,
		Example: exportUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			if applyError := applyConfiguration(command, &options, configurationFilePath); applyError != nil {
				return applyError
			}
			options.outputFormat = strings.ToLower(options.outputFormat)
			if !isSupportedFormat(options.outputFormat) {
				return fmt.Errorf(invalidFormatMessage, options.outputFormat)
			}
			return runExport(arguments, options)
		},
	}

	exportCommand.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	exportCommand.Flags().BoolVar(&options.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
	exportCommand.Flags().StringVar(&options.ignoreFileName, ignoreFileFlagName, utils.IgnoreFileName, ignoreFileFlagDescription)
	exportCommand.Flags().StringVar(&options.outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	exportCommand.Flags().StringVar(&options.outputFilePath, outputFlagName, "", outputFlagDescription)
	exportCommand.Flags().StringVar(&configurationFilePath, configFlagName, "", configFlagDescription)
	registerCopyFlag(exportCommand.Flags(), &options.copyToClipboard)
	return exportCommand
}

// applyConfiguration overlays configuration-file values under any flags the
// user did not set explicitly. Precedence is flag over file over default.
func applyConfiguration(command *cobra.Command, options *exportOptions, configurationFilePath string) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configurationFilePath,
	})
	if loadError != nil {
		return loadError
	}

	flagSet := command.Flags()
	if !flagSet.Changed(formatFlagName) && configuration.Export.Format != "" {
		options.outputFormat = configuration.Export.Format
	}
	if !flagSet.Changed(outputFlagName) && configuration.Export.Output != "" {
		options.outputFilePath = configuration.Export.Output
	}
	if !flagSet.Changed(ignoreFileFlagName) && configuration.Export.IgnoreFile != "" {
		options.ignoreFileName = configuration.Export.IgnoreFile
	}
	if !flagSet.Changed(noIgnoreFlagName) && configuration.Export.UseIgnoreFile != nil {
		options.disableIgnoreFile = !*configuration.Export.UseIgnoreFile
	}
	if !flagSet.Changed(copyFlagName) && configuration.Export.Copy != nil {
		options.copyToClipboard = *configuration.Export.Copy
	}
	options.exclusionPatterns = append(options.exclusionPatterns, configuration.Export.Exclude...)
	return nil
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			writtenPath, initializeError := config.InitializeIgnoreFile(config.InitOptions{Force: force})
			if initializeError != nil {
				return initializeError
			}
			utils.NewStatusPrinter(os.Stderr).Success(statusInitializedFormat, writtenPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// walkObserver forwards walker notifications to the application logger.
type walkObserver struct {
	logger *zap.Logger
}

// EntrySkipped records an entry excluded by the pattern matcher.
func (observer *walkObserver) EntrySkipped(relativePath string) {
	observer.logger.Debug("entry skipped", zap.String("path", relativePath))
}

// DirectoryUnreadable records a nested directory listing failure absorbed
// into the output.
func (observer *walkObserver) DirectoryUnreadable(directoryPath string, listError error) {
	observer.logger.Warn("directory unreadable", zap.String("path", directoryPath), zap.Error(listError))
}

// runExport walks the requested roots and delivers the rendered listing to
// the configured sinks.
func runExport(paths []string, options exportOptions) error {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError)
	}
	defer func() {
		_ = loggerInstance.Sync()
	}()

	roots, resolveError := commands.ResolveRoots(paths)
	if resolveError != nil {
		return resolveError
	}

	exporter := &commands.Exporter{
		Walker: &walker.Walker{
			Lister:   walker.OSLister{},
			Observer: &walkObserver{logger: loggerInstance},
		},
		LoadPatterns: func(absoluteRootPath string) []string {
			return config.LoadCombinedIgnorePatterns(absoluteRootPath, options.ignoreFileName, !options.disableIgnoreFile, options.exclusionPatterns)
		},
	}

	results, exportError := exporter.ExportRoots(roots)

	renderedOutput, renderError := output.Render(results, options.outputFormat)
	if renderError != nil {
		return renderError
	}
	if deliverError := deliverOutput(renderedOutput, options); deliverError != nil {
		return deliverError
	}

	// A root that failed its top-level listing still fails the invocation,
	// but only after the surviving output has been delivered.
	return exportError
}

// deliverOutput writes the rendered listing to stdout or a file and optionally
// copies it to the clipboard. Sinks never alter the payload.
func deliverOutput(renderedOutput string, options exportOptions) error {
	statusPrinter := utils.NewStatusPrinter(os.Stderr)

	if options.outputFilePath != "" {
		if writeError := os.WriteFile(options.outputFilePath, []byte(renderedOutput+"\n"), 0o644); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, options.outputFilePath, writeError)
		}
		statusPrinter.Success(statusWroteFileFormat, options.outputFilePath)
	} else {
		fmt.Println(renderedOutput)
	}

	if options.copyToClipboard {
		if copyError := clipboard.NewService().Copy(renderedOutput); copyError != nil {
			return fmt.Errorf(errorClipboardFormat, copyError)
		}
		statusPrinter.Success(statusCopiedFormat, strings.Count(renderedOutput, "\n")+1)
	}

	return nil
}
