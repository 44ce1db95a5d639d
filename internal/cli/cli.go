// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codecollector/internal/commands"
	"github.com/temirov/codecollector/internal/config"
	"github.com/temirov/codecollector/internal/filter"
	"github.com/temirov/codecollector/internal/ignore"
	"github.com/temirov/codecollector/internal/output"
	"github.com/temirov/codecollector/internal/pathtree"
	"github.com/temirov/codecollector/internal/services/clipboard"
	"github.com/temirov/codecollector/internal/tokenizer"
	"github.com/temirov/codecollector/internal/types"
	"github.com/temirov/codecollector/internal/utils"
)

const (
	extensionsFlagName       = "extensions"
	extensionsFlagShorthand  = "e"
	excludeDirsFlagName      = "exclude-dirs"
	excludeDirsFlagShorthand = "x"
	hiddenFlagName           = "hidden"
	noGitignoreFlagName      = "no-gitignore"
	noIgnoreFlagName         = "no-ignore"
	noGlobalIgnoreFlagName   = "no-global-ignore"
	includeGitFlagName       = "git"
	summaryFlagName          = "summary"
	tokensFlagName           = "tokens"
	modelFlagName            = "model"
	noColorFlagName          = "no-color"
	configFlagName           = "config"
	versionFlagName          = "version"

	versionTemplate      = "codecollector version: %s\n"
	rootUse              = "codecollector <directory>"
	rootShortDescription = "collect source files into the clipboard"
	rootLongDescription  = `codecollector walks a directory, gathers every matching source file into one buffer
with a comment header naming each file, copies the buffer to the clipboard, and prints a tree
of the copied files.

Ignore files (.gitignore, .ignore, the global Git excludes file) are honored. Hidden entries
and the directories node_modules, target, build, dist, venv, env, .venv, .env are skipped.`
	rootUsageExample = `  # Collect every Python and Rust file
  codecollector ./project -e py,rs

  # Collect Go files, skipping vendor and testdata
  codecollector . -e go -x vendor -x testdata

  # Report size and an estimated token count
  codecollector . --summary --tokens`

	extensionsFlagDescription     = "file extensions to include, comma-separated, without the leading dot (default: common source and text types)"
	excludeDirsFlagDescription    = "directory names to exclude in addition to the defaults"
	hiddenFlagDescription         = "include hidden files and directories"
	noGitignoreFlagDescription    = "do not use .gitignore files"
	noIgnoreFlagDescription       = "do not use .ignore files"
	noGlobalIgnoreFlagDescription = "do not use the global Git excludes file"
	includeGitFlagDescription     = "include the .git directory"
	summaryFlagDescription        = "print the number and total size of collected files"
	tokensFlagDescription         = "print an estimated token count of the collected buffer"
	modelFlagDescription          = "tokenizer model to use for token counting"
	noColorFlagDescription        = "disable colored headings"
	configFlagDescription         = "path to a configuration file used instead of " + utils.ConfigFileName
	versionFlagDescription        = "display application version"

	warningTokenCountFormat     = "Could not estimate tokens: %v"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorLoadConfigurationFmt   = "loading configuration: %w"
	errorFilterConfigurationFmt = "invalid filter configuration: %w"
	errorPathMissingFormat      = "path '%s' does not exist"
	errorStatFormat             = "stat failed for '%s': %w"
	errorNotDirectoryFormat     = "path '%s' is not a directory"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorClipboardCopyFormat    = "copying to clipboard: %w"
	errorWriteReportFormat      = "writing report: %w"
	errorExpectedDirectory      = "accepts exactly one directory argument, received %d"
)

// Dependencies are the collaborators a run talks to outside the filesystem.
type Dependencies struct {
	Copier           clipboard.Copier
	Logger           *zap.Logger
	Stdout           io.Writer
	NewCounter       func(tokenizer.Config) (tokenizer.Counter, string, error)
	WorkingDirectory string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.NewCounter == nil {
		dependencies.NewCounter = tokenizer.NewCounter
	}
	return dependencies
}

// Execute runs the codecollector application with the process arguments.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	rootCommand.SetArgs(expandToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// collectOptions stores the values of the root command flags.
type collectOptions struct {
	extensions         []string
	excludeDirectories []string
	includeHidden      bool
	disableGitignore   bool
	disableIgnoreFile  bool
	disableGlobal      bool
	includeGit         bool
	summary            bool
	tokens             bool
	model              string
	noColor            bool
	configPath         string
	showVersion        bool
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options collectOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				return nil
			}
			if len(arguments) != 1 {
				return fmt.Errorf(errorExpectedDirectory, len(arguments))
			}
			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return runCollect(command, arguments[0], options, dependencies)
		},
	}
	rootCommand.SetOut(dependencies.Stdout)

	flags := rootCommand.Flags()
	flags.StringSliceVarP(&options.extensions, extensionsFlagName, extensionsFlagShorthand, nil, extensionsFlagDescription)
	flags.StringSliceVarP(&options.excludeDirectories, excludeDirsFlagName, excludeDirsFlagShorthand, nil, excludeDirsFlagDescription)
	registerToggle(flags, &options.includeHidden, hiddenFlagName, hiddenFlagDescription)
	registerToggle(flags, &options.disableGitignore, noGitignoreFlagName, noGitignoreFlagDescription)
	registerToggle(flags, &options.disableIgnoreFile, noIgnoreFlagName, noIgnoreFlagDescription)
	registerToggle(flags, &options.disableGlobal, noGlobalIgnoreFlagName, noGlobalIgnoreFlagDescription)
	registerToggle(flags, &options.includeGit, includeGitFlagName, includeGitFlagDescription)
	registerToggle(flags, &options.summary, summaryFlagName, summaryFlagDescription)
	registerToggle(flags, &options.tokens, tokensFlagName, tokensFlagDescription)
	flags.StringVar(&options.model, modelFlagName, config.DefaultTokenModel, modelFlagDescription)
	registerToggle(flags, &options.noColor, noColorFlagName, noColorFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerToggle(flags, &options.showVersion, versionFlagName, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runSettings is the effective configuration of one run after merging files and flags.
type runSettings struct {
	extensions         []string
	excludeDirectories []string
	filterOptions      filter.Options
	ignoreOptions      ignore.Options
	summary            bool
	tokens             bool
	model              string
}

// resolveSettings overlays explicitly set flags onto the loaded configuration.
// List flags extend the configured lists.
func resolveSettings(command *cobra.Command, options collectOptions, configuration config.ApplicationConfiguration) runSettings {
	flags := command.Flags()
	pick := func(flagName string, flagValue bool, configured *bool, fallback bool) bool {
		if flags.Changed(flagName) {
			return flagValue
		}
		return config.BoolOr(configured, fallback)
	}

	model := configuration.Tokens.Model
	if flags.Changed(modelFlagName) || model == "" {
		model = options.model
	}

	return runSettings{
		extensions:         utils.DeduplicatePatterns(append(append([]string{}, configuration.Extensions...), options.extensions...)),
		excludeDirectories: utils.DeduplicatePatterns(append(append([]string{}, configuration.ExcludeDirectories...), options.excludeDirectories...)),
		filterOptions: filter.Options{
			IncludeHidden: pick(hiddenFlagName, options.includeHidden, configuration.Hidden, false),
			IncludeGit:    pick(includeGitFlagName, options.includeGit, configuration.IncludeGit, false),
		},
		ignoreOptions: ignore.Options{
			UseGitignore:  pick(noGitignoreFlagName, !options.disableGitignore, configuration.UseGitignore, true),
			UseIgnoreFile: pick(noIgnoreFlagName, !options.disableIgnoreFile, configuration.UseIgnoreFile, true),
			UseGlobal:     pick(noGlobalIgnoreFlagName, !options.disableGlobal, configuration.UseGlobalIgnore, true),
		},
		summary: pick(summaryFlagName, options.summary, configuration.Summary, false),
		tokens:  pick(tokensFlagName, options.tokens, configuration.Tokens.Enabled, false),
		model:   model,
	}
}

// runCollect performs one run: initialize, walk and aggregate, render the tree, publish.
func runCollect(command *cobra.Command, directory string, options collectOptions, dependencies Dependencies) error {
	workingDirectory := dependencies.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return fmt.Errorf(errorLoadConfigurationFmt, configurationError)
	}
	settings := resolveSettings(command, options, configuration)

	filterConfiguration, filterError := filter.NewConfig(settings.extensions, settings.excludeDirectories, settings.filterOptions)
	if filterError != nil {
		return fmt.Errorf(errorFilterConfigurationFmt, filterError)
	}

	root, rootError := validateDirectory(workingDirectory, directory)
	if rootError != nil {
		return rootError
	}

	if availabilityError := dependencies.Copier.Available(); availabilityError != nil {
		return availabilityError
	}

	report := output.NewReport(dependencies.Stdout, output.ShouldColor(dependencies.Stdout, options.noColor))
	report.Processing(directory)

	collection, collectError := commands.Collect(commands.CollectOptions{
		Root:   root.AbsolutePath,
		Filter: filterConfiguration,
		Ignore: settings.ignoreOptions,
		Warn:   func(message string) { dependencies.Logger.Warn(message) },
	})
	if collectError != nil {
		return collectError
	}

	report.Tree(pathtree.Build(collection.RelativePaths()).Render("", true))
	if settings.summary {
		report.Summary(collection)
	}
	if settings.tokens {
		if estimate, estimateError := estimateTokens(dependencies, settings.model, collection); estimateError != nil {
			dependencies.Logger.Warn(fmt.Sprintf(warningTokenCountFormat, estimateError))
		} else {
			report.Tokens(estimate)
		}
	}

	if copyError := dependencies.Copier.Copy(collection.Buffer); copyError != nil {
		return fmt.Errorf(errorClipboardCopyFormat, copyError)
	}
	report.Copied()

	if reportError := report.Err(); reportError != nil {
		return fmt.Errorf(errorWriteReportFormat, reportError)
	}
	return nil
}

func estimateTokens(dependencies Dependencies, model string, collection types.Collection) (tokenizer.Estimate, error) {
	counter, _, counterError := dependencies.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		return tokenizer.Estimate{}, counterError
	}
	return tokenizer.CountCollection(counter, collection)
}

// validateDirectory resolves inputPath against workingDirectory and requires an existing directory.
func validateDirectory(workingDirectory string, inputPath string) (types.ValidatedPath, error) {
	candidate := inputPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(workingDirectory, candidate)
	}
	absolutePath, absolutePathError := filepath.Abs(candidate)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	info, fileStatusError := os.Stat(absolutePath)
	if fileStatusError != nil {
		if errors.Is(fileStatusError, os.ErrNotExist) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: filepath.Clean(absolutePath), IsDir: true}, nil
}
