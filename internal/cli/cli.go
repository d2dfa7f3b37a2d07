// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/services/clipboard"
	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	allFlagName           = "all"
	allFlagShorthand      = "a"
	dirsOnlyFlagName      = "dirs-only"
	dirsOnlyFlagShorthand = "d"
	filesOnlyFlagName     = "files-only"
	filesOnlyShorthand    = "f"
	maxDepthFlagName      = "max-depth"
	maxDepthFlagShorthand = "s"
	fullPathFlagName      = "full-path"
	fullPathFlagShorthand = "t"
	formatFlagName        = "format"
	humanFlagName         = "human"
	copyFlagName          = "copy"
	configFlagName        = "config"
	logLevelFlagName      = "log-level"
	versionFlagName       = "version"

	versionTemplate      = "dirtree version: %s\n"
	rootUse              = utils.ApplicationName + " <directory>"
	rootShortDescription = "display a directory tree"
	rootLongDescription  = `dirtree prints the contents of a directory as a tree.
Entries are sorted by name, directories end with "/" and files show their size in bytes.
Hidden files are omitted unless -a is given. Use -d or -f to restrict the listing,
-s to limit the depth, and -t to print full file paths.`
	rootUsageExample = `  # Show everything, including hidden files
  dirtree -a .

  # Directories only, two levels deep
  dirtree -d -s 1 ./src

  # Full paths as JSON
  dirtree -t --format json /var/log`

	allFlagDescription       = "list all files, including hidden ones"
	dirsOnlyFlagDescription  = "list directories only"
	filesOnlyFlagDescription = "list files only"
	maxDepthFlagDescription  = "max display depth of the directory tree (root is 0)"
	fullPathFlagDescription  = "print the full path for each file"
	formatFlagDescription    = "output format (raw or json)"
	humanFlagDescription     = "print file sizes in human-readable units"
	copyFlagDescription      = "copy the rendered tree to the clipboard"
	configFlagDescription    = "path to a configuration file"
	logLevelFlagDescription  = "log level (debug, info, warn, error)"
	versionFlagDescription   = "display application version"

	invalidFormatMessage = "Invalid format value '%s'"
	// errorInvalidLogLevelFormat reports a log level zap does not recognize.
	errorInvalidLogLevelFormat = "invalid log level '%s': %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorResolvePathFormat reports failure to evaluate symbolic links in the root path.
	errorResolvePathFormat = "resolve failed for '%s': %w"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a root path that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
	// errorWriteOutputFormat reports failure to write the rendered tree.
	errorWriteOutputFormat = "write output: %w"

	clipboardWarningMessage = "failed to copy tree to clipboard"
	resolvedSettingsMessage = "resolved settings"
)

// applicationDependencies holds the collaborators the root command works with.
type applicationDependencies struct {
	logger      *zap.Logger
	logLevel    zap.AtomicLevel
	filesystem  afero.Fs
	copier      clipboard.Copier
	loadOptions config.LoadOptions
}

// treeFlags stores raw flag values before they are merged with configuration.
type treeFlags struct {
	showHidden      bool
	directoriesOnly bool
	filesOnly       bool
	maxDepth        int
	fullPath        bool
	format          string
	humanReadable   bool
	copyToClipboard bool
	configPath      string
	logLevel        string
	showVersion     bool
}

// treeSettings is the fully resolved configuration of one run.
type treeSettings struct {
	options         tree.Options
	renderer        output.RendererOptions
	copyToClipboard bool
}

// Execute runs the dirtree application.
func Execute(logger *zap.Logger, logLevel zap.AtomicLevel) error {
	rootCommand := createRootCommand(applicationDependencies{
		logger:     logger,
		logLevel:   logLevel,
		filesystem: afero.NewOsFs(),
		copier:     clipboard.NewService(),
	})
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies applicationDependencies) *cobra.Command {
	if dependencies.logger == nil {
		dependencies.logger = zap.NewNop()
	}
	if dependencies.logLevel == (zap.AtomicLevel{}) {
		dependencies.logLevel = zap.NewAtomicLevel()
	}
	if dependencies.filesystem == nil {
		dependencies.filesystem = afero.NewOsFs()
	}
	if dependencies.copier == nil {
		dependencies.copier = clipboard.NewService()
	}

	var flags treeFlags

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		SilenceErrors: true,
		Args: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(command, arguments)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			command.SilenceUsage = true
			settings, settingsError := resolveSettings(command, flags, dependencies)
			if settingsError != nil {
				return settingsError
			}
			return runTree(command.OutOrStdout(), arguments[0], settings, dependencies)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.BoolVarP(&flags.showHidden, allFlagName, allFlagShorthand, false, allFlagDescription)
	flagSet.BoolVarP(&flags.directoriesOnly, dirsOnlyFlagName, dirsOnlyFlagShorthand, false, dirsOnlyFlagDescription)
	flagSet.BoolVarP(&flags.filesOnly, filesOnlyFlagName, filesOnlyShorthand, false, filesOnlyFlagDescription)
	flagSet.IntVarP(&flags.maxDepth, maxDepthFlagName, maxDepthFlagShorthand, 0, maxDepthFlagDescription)
	flagSet.BoolVarP(&flags.fullPath, fullPathFlagName, fullPathFlagShorthand, false, fullPathFlagDescription)
	flagSet.StringVar(&flags.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	flagSet.BoolVar(&flags.humanReadable, humanFlagName, false, humanFlagDescription)
	flagSet.BoolVar(&flags.copyToClipboard, copyFlagName, false, copyFlagDescription)
	flagSet.StringVar(&flags.configPath, configFlagName, utils.EmptyString, configFlagDescription)
	flagSet.StringVar(&flags.logLevel, logLevelFlagName, utils.EmptyString, logLevelFlagDescription)
	flagSet.BoolVar(&flags.showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.MarkFlagsMutuallyExclusive(dirsOnlyFlagName, filesOnlyFlagName)

	return rootCommand
}

// resolveSettings merges configuration files and the environment with the flags
// given on the command line. Explicit flags always win.
func resolveSettings(command *cobra.Command, flags treeFlags, dependencies applicationDependencies) (treeSettings, error) {
	loadOptions := dependencies.loadOptions
	loadOptions.ExplicitFilePath = flags.configPath
	configuration, configurationError := config.LoadApplicationConfiguration(loadOptions)
	if configurationError != nil {
		return treeSettings{}, configurationError
	}

	changed := command.Flags().Changed

	logLevel := configuration.LogLevel
	if changed(logLevelFlagName) {
		logLevel = flags.logLevel
	}
	if logLevel != utils.EmptyString {
		if levelError := dependencies.logLevel.UnmarshalText([]byte(logLevel)); levelError != nil {
			return treeSettings{}, fmt.Errorf(errorInvalidLogLevelFormat, logLevel, levelError)
		}
	}

	options := tree.Options{
		ShowHidden:      chooseBool(changed(allFlagName), flags.showHidden, configuration.ShowHidden),
		DirectoriesOnly: chooseBool(changed(dirsOnlyFlagName), flags.directoriesOnly, configuration.DirectoriesOnly),
		FilesOnly:       chooseBool(changed(filesOnlyFlagName), flags.filesOnly, configuration.FilesOnly),
		ShowFullPath:    chooseBool(changed(fullPathFlagName), flags.fullPath, configuration.FullPath),
	}
	if changed(dirsOnlyFlagName) && flags.directoriesOnly && !changed(filesOnlyFlagName) {
		options.FilesOnly = false
	}
	if changed(filesOnlyFlagName) && flags.filesOnly && !changed(dirsOnlyFlagName) {
		options.DirectoriesOnly = false
	}
	if changed(maxDepthFlagName) {
		maxDepth := flags.maxDepth
		options.MaxDepth = &maxDepth
	} else if configuration.MaxDepth != nil {
		maxDepth := *configuration.MaxDepth
		options.MaxDepth = &maxDepth
	}
	if validationError := options.Validate(); validationError != nil {
		return treeSettings{}, validationError
	}

	format := flags.format
	if !changed(formatFlagName) && configuration.Format != utils.EmptyString {
		format = configuration.Format
	}
	format = utils.NormalizeFormat(format)
	if !output.IsSupportedFormat(format) {
		return treeSettings{}, fmt.Errorf(invalidFormatMessage, format)
	}

	settings := treeSettings{
		options: options,
		renderer: output.RendererOptions{
			Format:        format,
			HumanReadable: chooseBool(changed(humanFlagName), flags.humanReadable, configuration.HumanReadable),
		},
		copyToClipboard: chooseBool(changed(copyFlagName), flags.copyToClipboard, configuration.Clipboard),
	}
	dependencies.logger.Debug(resolvedSettingsMessage,
		zap.Bool("showHidden", options.ShowHidden),
		zap.Bool("directoriesOnly", options.DirectoriesOnly),
		zap.Bool("filesOnly", options.FilesOnly),
		zap.Bool("fullPath", options.ShowFullPath),
		zap.Intp("maxDepth", options.MaxDepth),
		zap.String("format", format),
	)
	return settings, nil
}

// chooseBool prefers an explicitly set flag, then the configured value, then the flag default.
func chooseBool(flagChanged bool, flagValue bool, configured *bool) bool {
	if flagChanged {
		return flagValue
	}
	return config.BoolOrDefault(configured, flagValue)
}

// runTree renders the tree rooted at input. Output is written only after the
// whole walk succeeded, so a failed run never prints a partial tree.
func runTree(stdout io.Writer, input string, settings treeSettings, dependencies applicationDependencies) error {
	rootPath, rootError := resolveRootDirectory(dependencies.filesystem, input)
	if rootError != nil {
		return rootError
	}

	var rendered bytes.Buffer
	renderer, rendererError := output.NewStreamRenderer(&rendered, settings.renderer)
	if rendererError != nil {
		return rendererError
	}

	walker := tree.NewWalker(dependencies.filesystem, settings.options, dependencies.logger)
	if walkError := walker.Walk(rootPath.AbsolutePath, renderer.Handle); walkError != nil {
		return walkError
	}
	if flushError := renderer.Flush(); flushError != nil {
		return flushError
	}

	if _, writeError := stdout.Write(rendered.Bytes()); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, writeError)
	}

	if settings.copyToClipboard {
		if copyError := dependencies.copier.Copy(rendered.String()); copyError != nil {
			dependencies.logger.Warn(clipboardWarningMessage, zap.Error(copyError))
		}
	}
	return nil
}

// resolveRootDirectory converts the input path to an absolute, symlink-free form
// and validates that it names an existing directory.
func resolveRootDirectory(filesystem afero.Fs, inputPath string) (types.ValidatedPath, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		if os.IsNotExist(resolveError) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorResolvePathFormat, inputPath, resolveError)
	}
	info, fileStatusError := filesystem.Stat(resolvedPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: resolvedPath, IsDir: true}, nil
}
