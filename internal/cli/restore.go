package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/unmix/internal/archive"
	"github.com/temirov/unmix/internal/config"
	"github.com/temirov/unmix/internal/output"
	"github.com/temirov/unmix/internal/restore"
	"github.com/temirov/unmix/internal/services/clipboard"
	"github.com/temirov/unmix/internal/tokenizer"
	"github.com/temirov/unmix/internal/types"
)

const (
	inputMissingErrorFormat   = "%w: %s"
	inputIsDirectoryFormat    = "input path %s is a directory"
	inspectInputErrorFormat   = "inspect input file %s: %w"
	prepareOutputErrorFormat  = "prepare output directory: %w"
	parseArchiveErrorFormat   = "error parsing archive %s: %w"
	loggerCreationErrorFormat = "create logger: %w"
)

var errInputMissing = errors.New("input file not found")

type tokenOptions struct {
	enabled bool
	model   string
}

func (options tokenOptions) toConfig() tokenizer.Config {
	return tokenizer.Config{Model: options.model}
}

// restoreOptions collects the flag values of a restore invocation.
type restoreOptions struct {
	inputPath              string
	outputDirectory        string
	structurePath          string
	configPath             string
	verbose                bool
	showMetadata           bool
	showDirectoryStructure bool
	force                  bool
	skipGit                bool
	includeGit             bool
	keepEmptyDirs          bool
	copyToClipboard        bool
	tokens                 tokenOptions
}

// applyConfiguration fills every option whose flag was not given explicitly from configuration.
func (options *restoreOptions) applyConfiguration(command *cobra.Command, configuration config.RestoreConfiguration) {
	flagSet := command.Flags()
	applyString := func(flagName string, target *string, value string) {
		if value != "" && !flagSet.Changed(flagName) {
			*target = value
		}
	}
	applyBool := func(flagName string, target *bool, value *bool) {
		if value != nil && !flagSet.Changed(flagName) {
			*target = *value
		}
	}
	applyString(outputDirectoryFlagName, &options.outputDirectory, configuration.OutputDirectory)
	applyString(structureFlagName, &options.structurePath, configuration.Structure)
	applyString(modelFlagName, &options.tokens.model, configuration.Tokens.Model)
	applyBool(forceFlagName, &options.force, configuration.Force)
	applyBool(verboseFlagName, &options.verbose, configuration.Verbose)
	applyBool(keepEmptyDirsFlagName, &options.keepEmptyDirs, configuration.KeepEmptyDirs)
	applyBool(copyFlagName, &options.copyToClipboard, configuration.Copy)
	applyBool(tokensFlagName, &options.tokens.enabled, configuration.Tokens.Enabled)
	if !flagSet.Changed(includeGitFlagName) && !flagSet.Changed(noGitFlagName) && configuration.IncludeGit != nil {
		options.includeGit = *configuration.IncludeGit
	}
}

// restoresGitFiles reports whether files under .git/ should be written.
func (options restoreOptions) restoresGitFiles() bool {
	return options.includeGit && !options.skipGit
}

// runRestore parses the archive and writes its files to the output directory.
func runRestore(commandDependencies dependencies, options restoreOptions) error {
	fileSystem := commandDependencies.fileSystem
	if inputError := validateInputFile(fileSystem, options.inputPath); inputError != nil {
		return inputError
	}

	logger, loggerError := commandDependencies.newLogger(options.verbose)
	if loggerError != nil {
		return fmt.Errorf(loggerCreationErrorFormat, loggerError)
	}
	defer func() { _ = logger.Sync() }()

	if prepareError := restore.PrepareOutputDirectory(fileSystem, options.outputDirectory, options.force); prepareError != nil {
		return fmt.Errorf(prepareOutputErrorFormat, prepareError)
	}

	document, parseError := archive.NewParser(fileSystem, logger).Parse(options.inputPath)
	if parseError != nil {
		return fmt.Errorf(parseArchiveErrorFormat, options.inputPath, parseError)
	}
	logger.Debug("archive loaded",
		zap.String("path", options.inputPath),
		zap.String("format", string(document.Format())),
		zap.Int("records", len(document.Records())),
	)

	stdout := commandDependencies.stdout
	var previewBuffer bytes.Buffer
	previewWriter := io.MultiWriter(stdout, &previewBuffer)
	if options.showMetadata {
		output.WriteMetadata(previewWriter, document.Metadata().Entries())
	}
	if options.showDirectoryStructure {
		output.WriteDirectoryStructure(previewWriter, document.DirectoryStructure())
	}

	tracker := &output.SummaryTracker{}
	materializer := restore.NewMaterializer(fileSystem, logger, restore.Options{
		RootDirectory: options.outputDirectory,
		IncludeGit:    options.restoresGitFiles(),
		OnRestored:    newRestoredObserver(commandDependencies, options.tokens, tracker, logger),
	})

	createdDirectories := 0
	if options.keepEmptyDirs {
		if directoryStructure := document.DirectoryStructure(); directoryStructure != "" {
			createdCount, createError := materializer.CreateEmptyDirectories(directoryStructure)
			if createError != nil {
				logger.Warn("unable to create empty directories", zap.Error(createError))
			}
			createdDirectories = createdCount
			if options.verbose && createdDirectories > 0 {
				output.WriteEmptyDirectories(stdout, createdDirectories)
			}
		}
	}

	restoredCount := materializer.WriteAll(document.Records())

	if options.structurePath != "" {
		saveError := output.SaveProjectStructure(fileSystem, options.structurePath, document.ProjectStructure())
		if saveError != nil {
			logger.Warn("unable to save project structure", zap.String("path", options.structurePath), zap.Error(saveError))
		}
		output.WriteStructureSaved(stdout, options.structurePath, saveError)
	}

	summary := tracker.Summary(options.outputDirectory)
	summary.TotalFiles = restoredCount
	summary.EmptyFolders = createdDirectories
	if options.tokens.enabled {
		fmt.Fprintln(stdout, output.FormatSummaryLine(summary))
	}
	output.WriteCompletion(stdout, summary)

	if options.copyToClipboard {
		copyPreviews(commandDependencies.copier, previewBuffer.String(), logger)
	}
	return nil
}

func validateInputFile(fileSystem afero.Fs, inputPath string) error {
	fileInformation, statError := fileSystem.Stat(inputPath)
	if statError != nil {
		if errors.Is(statError, afero.ErrFileNotFound) {
			return fmt.Errorf(inputMissingErrorFormat, errInputMissing, inputPath)
		}
		return fmt.Errorf(inspectInputErrorFormat, inputPath, statError)
	}
	if fileInformation.IsDir() {
		return fmt.Errorf(inputIsDirectoryFormat, inputPath)
	}
	return nil
}

// newRestoredObserver accumulates restored files into tracker, counting tokens when enabled.
func newRestoredObserver(commandDependencies dependencies, options tokenOptions, tracker *output.SummaryTracker, logger *zap.Logger) restore.RestoredObserver {
	var tokenCounter tokenizer.Counter
	var tokenModel string
	if options.enabled {
		createdCounter, resolvedModel, counterError := commandDependencies.newCounter(options.toConfig())
		if counterError != nil {
			logger.Warn("token counting disabled", zap.String("model", options.model), zap.Error(counterError))
		} else {
			tokenCounter = createdCounter
			tokenModel = resolvedModel
		}
	}
	return func(record types.FileRecord, content []byte) {
		tokens := 0
		if tokenCounter != nil {
			countResult, countError := tokenizer.CountBytes(tokenCounter, content)
			if countError != nil {
				logger.Warn("failed to count tokens", zap.String("path", record.Path), zap.Error(countError))
			} else if countResult.Counted {
				tokens = countResult.Tokens
			}
		}
		tracker.Add(int64(len(content)), tokens, tokenModel)
	}
}

func copyPreviews(copier clipboard.Copier, previews string, logger *zap.Logger) {
	if previews == "" {
		logger.Warn("nothing to copy, use -m or -d to print previews")
		return
	}
	if copyError := copier.Copy(previews); copyError != nil {
		logger.Warn("unable to copy previews to clipboard", zap.Error(copyError))
		return
	}
	logger.Debug("previews copied to clipboard")
}
