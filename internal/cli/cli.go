// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mbisign/repotree/internal/config"
	"github.com/mbisign/repotree/internal/hook"
	"github.com/mbisign/repotree/internal/ignore"
	"github.com/mbisign/repotree/internal/output"
	"github.com/mbisign/repotree/internal/project"
	"github.com/mbisign/repotree/internal/services/clipboard"
	"github.com/mbisign/repotree/internal/tree"
	"github.com/mbisign/repotree/internal/utils"
)

const (
	outputFlagName      = "output"
	outputFlagShorthand = "o"
	maxDepthFlagName    = "max-depth"
	labelFlagName       = "label"
	exclusionFlagName   = "e"
	noGitignoreFlagName = "no-gitignore"
	noIgnoreFlagName    = "no-ignore"
	stdoutFlagName      = "stdout"
	configFlagName      = "config"
	versionFlagName     = "version"
	versionTemplate     = "repotree version: %s\n"

	defaultPath = "."
	// DefaultOutputRelativePath is where the rendered document lands when
	// neither flags nor configuration name another location.
	DefaultOutputRelativePath = "Docs/Project_Structure/repository_tree.md"

	rootUse              = "repotree"
	rootShortDescription = "repotree command line interface"
	rootLongDescription  = `repotree renders a project's directory structure as a Markdown code block.
It discovers the project root, filters entries through gitignore-style rules,
and writes the result to a documentation file. The install-hook command keeps
the document fresh by regenerating it on every commit.`
	versionFlagDescription = "display application version"

	generateUse              = "generate [path]"
	generateAlias            = "g"
	generateShortDescription = "render the project tree document (" + generateAlias + ")"
	generateLongDescription  = `Locate the project root starting from path (default "."), build the
filtered directory tree, and write it as a fenced Markdown code block.`
	generateUsageExample = `  # Update the tree document for the current project
  repotree generate

  # Limit depth and print to stdout instead of writing the file
  repotree generate --max-depth 2 --stdout

  # Exclude the vendor directory on top of ignore-file rules
  repotree generate -e vendor/`

	installHookUse              = "install-hook [path]"
	installHookAlias            = "ih"
	installHookShortDescription = "install the pre-commit hook (" + installHookAlias + ")"
	installHookLongDescription  = `Write a pre-commit hook under .git/hooks that regenerates the tree
document and stages it before each commit. Re-running installation replaces
the previously installed block and leaves unrelated hook content intact.`

	outputFlagDescription           = "output file path relative to the project root"
	maxDepthFlagDescription         = "maximum rendered depth (root is 0); omit for unbounded"
	labelFlagDescription            = "root label printed on the first line (default: root directory name)"
	exclusionFlagDescription        = "additional exclusion pattern (repeatable)"
	disableGitignoreFlagDescription = "do not read .gitignore"
	disableIgnoreFlagDescription    = "do not read .ignore"
	stdoutFlagDescription           = "print the document to stdout instead of writing the file"
	configFlagDescription           = "explicit configuration file path"
	copyFlagDescription             = "copy the rendered document to the clipboard"

	warningRootFallbackFormat    = "no project root marker found, falling back to %s"
	warningClipboardFormat       = "copying to clipboard failed: %v"
	infoDocumentWrittenFormat    = "project tree written to %s"
	infoHookInstalledFormat      = "pre-commit hook installed at %s"
	errorNegativeDepthFormat     = "invalid --%s %d: depth must not be negative"
	errorStartPathMissingFormat  = "path '%s' does not exist"
	errorStartPathNotDirFormat   = "path '%s' is not a directory"
	errorStartPathFormat         = "stat failed for '%s': %w"
	errorAbsoluteStartPathFormat = "getting absolute path for %s: %w"
)

// generateOptions stores the generate command's flag values.
type generateOptions struct {
	outputPath        string
	maxDepth          int
	label             string
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
	toStdout          bool
	copyToClipboard   bool
	configFilePath    string
}

// Execute runs the repotree application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
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
		createGenerateCommand(logger),
		createInstallHookCommand(logger),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand(logger *zap.Logger) *cobra.Command {
	var options generateOptions

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			startPath := defaultPath
			if len(arguments) == 1 {
				startPath = arguments[0]
			}
			if command.Flags().Changed(maxDepthFlagName) && options.maxDepth < 0 {
				return fmt.Errorf(errorNegativeDepthFormat, maxDepthFlagName, options.maxDepth)
			}
			return runGenerate(command, startPath, options, logger)
		},
	}

	generateCommand.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	generateCommand.Flags().IntVar(&options.maxDepth, maxDepthFlagName, tree.UnboundedDepth, maxDepthFlagDescription)
	generateCommand.Flags().StringVar(&options.label, labelFlagName, "", labelFlagDescription)
	generateCommand.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	generateCommand.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	generateCommand.Flags().BoolVar(&options.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
	generateCommand.Flags().BoolVar(&options.toStdout, stdoutFlagName, false, stdoutFlagDescription)
	generateCommand.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	registerCopyFlag(generateCommand.Flags(), &options.copyToClipboard)
	return generateCommand
}

// createInstallHookCommand returns the install-hook subcommand.
func createInstallHookCommand(logger *zap.Logger) *cobra.Command {
	var outputPath string
	var configFilePath string

	installHookCommand := &cobra.Command{
		Use:     installHookUse,
		Aliases: []string{installHookAlias},
		Short:   installHookShortDescription,
		Long:    installHookLongDescription,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			startPath := defaultPath
			if len(arguments) == 1 {
				startPath = arguments[0]
			}
			return runInstallHook(command, startPath, outputPath, configFilePath, logger)
		},
	}

	installHookCommand.Flags().StringVarP(&outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	installHookCommand.Flags().StringVar(&configFilePath, configFlagName, "", configFlagDescription)
	return installHookCommand
}

// runGenerate performs a full render: root discovery, configuration merge,
// rule compilation, traversal, rendering, and output.
func runGenerate(command *cobra.Command, startPath string, options generateOptions, logger *zap.Logger) error {
	rootPath, rootError := locateRootWithFallback(startPath, logger)
	if rootError != nil {
		return rootError
	}

	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: rootPath,
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}
	settings := configuration.Generate

	outputRelativePath := resolveOutputPath(command, options.outputPath, settings.Output)

	maxDepth := tree.UnboundedDepth
	if command.Flags().Changed(maxDepthFlagName) {
		maxDepth = options.maxDepth
	} else if settings.MaxDepth != nil {
		maxDepth = *settings.MaxDepth
	}

	rootLabel := filepath.Base(rootPath)
	if options.label != "" {
		rootLabel = options.label
	} else if settings.Label != "" {
		rootLabel = settings.Label
	}

	useGitignore := !options.disableGitignore
	if !command.Flags().Changed(noGitignoreFlagName) && settings.Paths.UseGitignore != nil {
		useGitignore = *settings.Paths.UseGitignore
	}
	useIgnoreFile := !options.disableIgnoreFile
	if !command.Flags().Changed(noIgnoreFlagName) && settings.Paths.UseIgnoreFile != nil {
		useIgnoreFile = *settings.Paths.UseIgnoreFile
	}

	exclusionPatterns := append(append([]string{}, settings.Paths.Exclude...), options.exclusionPatterns...)

	ruleSet, ruleSetError := ignore.LoadRuleSet(rootPath, exclusionPatterns, useGitignore, useIgnoreFile)
	if ruleSetError != nil {
		return ruleSetError
	}

	walker := &tree.Walker{
		Rules:    ruleSet,
		MaxDepth: maxDepth,
		Logger:   logger,
	}
	rootEntry, walkError := walker.Walk(context.Background(), rootPath)
	if walkError != nil {
		return walkError
	}

	document := tree.Render(rootEntry, rootLabel)

	if options.toStdout {
		fmt.Print(document)
	} else {
		outputFilePath := filepath.Join(rootPath, filepath.FromSlash(outputRelativePath))
		if writeError := output.WriteFileAtomic(outputFilePath, document); writeError != nil {
			return writeError
		}
		logger.Info(fmt.Sprintf(infoDocumentWrittenFormat, outputFilePath))
	}

	copyEnabled := options.copyToClipboard
	if !command.Flags().Changed(copyFlagName) && settings.Copy != nil {
		copyEnabled = *settings.Copy
	}
	if copyEnabled {
		if clipboardError := clipboard.NewService().Copy(document); clipboardError != nil {
			logger.Warn(fmt.Sprintf(warningClipboardFormat, clipboardError))
		}
	}
	return nil
}

// runInstallHook resolves the project root and output path, then writes the
// pre-commit hook.
func runInstallHook(command *cobra.Command, startPath string, outputPath string, configFilePath string, logger *zap.Logger) error {
	rootPath, rootError := locateRootWithFallback(startPath, logger)
	if rootError != nil {
		return rootError
	}

	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: rootPath,
		ExplicitFilePath: configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}

	outputRelativePath := resolveOutputPath(command, outputPath, configuration.Generate.Output)

	hookFilePath, installError := hook.Install(rootPath, outputRelativePath)
	if installError != nil {
		return installError
	}
	logger.Info(fmt.Sprintf(infoHookInstalledFormat, hookFilePath))
	return nil
}

// resolveOutputPath picks the output location: an explicitly set flag wins,
// then the configuration file, then the built-in default.
func resolveOutputPath(command *cobra.Command, flagValue string, configuredValue string) string {
	if command.Flags().Changed(outputFlagName) && flagValue != "" {
		return flagValue
	}
	if configuredValue != "" {
		return configuredValue
	}
	return DefaultOutputRelativePath
}

// locateRootWithFallback discovers the project root above startPath. Root
// discovery failure is a recoverable condition: the validated start
// directory is used instead and a warning is logged.
func locateRootWithFallback(startPath string, logger *zap.Logger) (string, error) {
	absoluteStartPath, startPathError := validateStartPath(startPath)
	if startPathError != nil {
		return "", startPathError
	}

	rootPath, locateError := project.Locate(absoluteStartPath)
	if locateError != nil {
		if !errors.Is(locateError, project.ErrRootNotFound) {
			return "", locateError
		}
		logger.Warn(fmt.Sprintf(warningRootFallbackFormat, absoluteStartPath))
		return absoluteStartPath, nil
	}
	return rootPath, nil
}

// validateStartPath converts the start path to absolute form and verifies it
// is an existing directory.
func validateStartPath(startPath string) (string, error) {
	absoluteStartPath, absolutePathError := filepath.Abs(startPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsoluteStartPathFormat, startPath, absolutePathError)
	}
	pathInformation, statError := os.Stat(absoluteStartPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorStartPathMissingFormat, startPath)
		}
		return "", fmt.Errorf(errorStartPathFormat, startPath, statError)
	}
	if !pathInformation.IsDir() {
		return "", fmt.Errorf(errorStartPathNotDirFormat, startPath)
	}
	return filepath.Clean(absoluteStartPath), nil
}
