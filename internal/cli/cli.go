// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/unmix/internal/config"
	"github.com/temirov/unmix/internal/services/clipboard"
	"github.com/temirov/unmix/internal/tokenizer"
	"github.com/temirov/unmix/internal/utils"
)

const (
	outputDirectoryFlagName     = "output-dir"
	outputDirectoryShorthand    = "o"
	verboseFlagName             = "verbose"
	verboseShorthand            = "v"
	structureFlagName           = "structure"
	structureShorthand          = "s"
	metadataFlagName            = "metadata"
	metadataShorthand           = "m"
	directoryStructureFlagName  = "directory-structure"
	directoryStructureShorthand = "d"
	forceFlagName               = "force"
	forceShorthand              = "f"
	noGitFlagName               = "no-git"
	includeGitFlagName          = "git"
	keepEmptyDirsFlagName       = "keep-empty-dirs"
	tokensFlagName              = "tokens"
	modelFlagName               = "model"
	copyFlagName                = "copy"
	configFlagName              = "config"
	globalFlagName              = "global"

	versionTemplate      = "unmix version: {{.Version}}\n"
	rootUse              = "unmix <input-file>"
	rootShortDescription = "restore a source tree from a repomix archive"
	rootLongDescription  = `unmix reads a repomix-style archive and writes every file it contains to an output directory.
Project, repomix and bare file XML documents are parsed structurally; documents that are not well-formed XML
are scanned for <file path="..."> tags instead. Use -m and -d to preview archive metadata and directory structure,
-s to save the project structure as JSON or YAML, and --keep-empty-dirs to recreate listed directories.
An archive file literally named "init" must be given as ./init, since init is a subcommand.`
	rootUsageExample = `  # Restore an archive into ./output
  unmix repomix-output.xml

  # Restore into an existing directory and save the structure as YAML
  unmix -f -o ./restored -s structure.yaml repomix-output.xml

  # Preview metadata and count tokens of restored files
  unmix -m --tokens --model gpt-4o repomix-output.xml`
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default unmix configuration to ` + utils.ConfigFileName + ` in the working directory,
or to ~/` + utils.GlobalConfigDirectoryName + `/` + utils.GlobalConfigFileName + ` with --global.`

	outputDirectoryFlagDescription    = "output directory"
	verboseFlagDescription            = "verbose output"
	structureFlagDescription          = "save project structure to a JSON file (YAML for .yaml/.yml)"
	metadataFlagDescription           = "show project metadata"
	directoryStructureFlagDescription = "show directory structure"
	forceFlagDescription              = "restore into a non-empty output directory"
	noGitFlagDescription              = "do not restore files under .git/"
	includeGitFlagDescription         = "restore files under .git/"
	keepEmptyDirsFlagDescription      = "create empty directories listed in the directory structure"
	tokensFlagDescription             = "count tokens of restored text files"
	modelFlagDescription              = "tokenizer model to use for token counting"
	copyFlagDescription               = "copy printed previews to the clipboard"
	configFlagDescription             = "configuration file to use instead of " + utils.ConfigFileName
	globalFlagDescription             = "write the global configuration file"
	initForceFlagDescription          = "overwrite an existing configuration file"

	configurationWrittenFormat   = "Configuration written to %s\n"
	loadConfigurationErrorFormat = "load configuration: %w"
)

// dependencies carries the collaborators of a command invocation.
type dependencies struct {
	fileSystem       afero.Fs
	stdout           io.Writer
	workingDirectory string
	newLogger        func(verbose bool) (*zap.Logger, error)
	newCounter       func(tokenizer.Config) (tokenizer.Counter, string, error)
	copier           clipboard.Copier
}

func defaultDependencies() dependencies {
	return dependencies{
		fileSystem: afero.NewOsFs(),
		stdout:     os.Stdout,
		newLogger:  utils.NewApplicationLogger,
		newCounter: tokenizer.NewCounter,
		copier:     clipboard.NewService(),
	}
}

// Execute runs the unmix application.
func Execute() error {
	rootCommand := createRootCommand(defaultDependencies())
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command, which performs the restore.
func createRootCommand(commandDependencies dependencies) *cobra.Command {
	var options restoreOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Version:      utils.GetApplicationVersion(),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			loadedConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: commandDependencies.workingDirectory,
				ExplicitFilePath: options.configPath,
			})
			if loadError != nil {
				return fmt.Errorf(loadConfigurationErrorFormat, loadError)
			}
			options.applyConfiguration(command, loadedConfiguration.Restore)
			options.inputPath = arguments[0]
			return runRestore(commandDependencies, options)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.SetOut(commandDependencies.stdout)

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.outputDirectory, outputDirectoryFlagName, outputDirectoryShorthand, utils.DefaultOutputDirectory, outputDirectoryFlagDescription)
	flagSet.StringVarP(&options.structurePath, structureFlagName, structureShorthand, "", structureFlagDescription)
	flagSet.StringVar(&options.tokens.model, modelFlagName, utils.DefaultTokenizerModel, modelFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, verboseShorthand, false, verboseFlagDescription)
	registerBooleanFlag(flagSet, &options.showMetadata, metadataFlagName, metadataShorthand, false, metadataFlagDescription)
	registerBooleanFlag(flagSet, &options.showDirectoryStructure, directoryStructureFlagName, directoryStructureShorthand, false, directoryStructureFlagDescription)
	registerBooleanFlag(flagSet, &options.force, forceFlagName, forceShorthand, false, forceFlagDescription)
	registerBooleanFlag(flagSet, &options.skipGit, noGitFlagName, "", false, noGitFlagDescription)
	registerBooleanFlag(flagSet, &options.includeGit, includeGitFlagName, "", false, includeGitFlagDescription)
	registerBooleanFlag(flagSet, &options.keepEmptyDirs, keepEmptyDirsFlagName, "", false, keepEmptyDirsFlagDescription)
	registerBooleanFlag(flagSet, &options.tokens.enabled, tokensFlagName, "", false, tokensFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	rootCommand.MarkFlagsMutuallyExclusive(noGitFlagName, includeGitFlagName)

	rootCommand.AddCommand(createInitCommand(commandDependencies))
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(commandDependencies dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: commandDependencies.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, destinationPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, "", false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, forceShorthand, false, initForceFlagDescription)
	return initCommand
}
