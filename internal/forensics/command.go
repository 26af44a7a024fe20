package forensics

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/git_garbage_scraper/internal/execshell"
	"github.com/temirov/git_garbage_scraper/internal/gitobjects"
	"github.com/temirov/git_garbage_scraper/internal/ui"
	"github.com/temirov/git_garbage_scraper/internal/utils"
	pathutils "github.com/temirov/git_garbage_scraper/internal/utils/path"
)

const (
	commandUseConstant                         = "git-garbage-scraper [repository]"
	commandShortDescriptionConstant            = "Recover unreachable commits and their files from a Git repository"
	commandLongDescriptionConstant             = "git-garbage-scraper lists commits that no branch, tag, or reflog reaches and prints their metadata, the diff from their first parent, and the files in their tree."
	commandMaximumArgumentCountConstant        = 1
	flagContentNameConstant                    = "content"
	flagContentShorthandConstant               = "c"
	flagContentDescriptionConstant             = "Display content of unreachable files"
	flagFormatNameConstant                     = "format"
	flagFormatDescriptionConstant              = "Report format (text, json, or yaml)"
	flagIncludeOtherObjectsNameConstant        = "include-other-objects"
	flagIncludeOtherObjectsDescriptionConstant = "List unreachable trees, blobs, and tags after the commit sections"
	flagUnreachableNameConstant                = "unreachable"
	flagUnreachableDescriptionConstant         = "Report every unreachable object instead of only dangling ones"
	flagHighlightNameConstant                  = "highlight"
	flagHighlightDescriptionConstant           = "Colorize diffs and file content in the text report"
	flagHighlightStyleNameConstant             = "highlight-style"
	flagHighlightStyleDescriptionConstant      = "Chroma style used with --highlight"
	flagTimeoutNameConstant                    = "timeout"
	flagTimeoutDescriptionConstant             = "Timeout for each git command (0 disables)"
	flagStrictNameConstant                     = "strict"
	flagStrictDescriptionConstant              = "Exit with an error when any object could not be read"
	commandSettingsLogMessageConstant          = "scrape settings resolved"
	logFieldFormatConstant                     = "format"
	logFieldUnreachableConstant                = "unreachable"
	logFieldCommandTimeoutConstant             = "command_timeout"
	logFieldConfigurationFileConstant          = "config_file"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the scrape report command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitobjects.GitCommandExecutor
	Inspector                    ObjectInspector
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	HomeExpander                 *pathutils.HomeExpander
}

type commandSettings struct {
	scrapeOptions  ScrapeOptions
	format         OutputFormat
	unreachable    bool
	highlight      bool
	highlightStyle string
	commandTimeout time.Duration
}

// Build constructs the cobra command for the scrape report.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(commandMaximumArgumentCountConstant),
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().BoolP(flagContentNameConstant, flagContentShorthandConstant, defaults.ShowContent, flagContentDescriptionConstant)
	command.Flags().String(flagFormatNameConstant, defaults.Format, flagFormatDescriptionConstant)
	command.Flags().Bool(flagIncludeOtherObjectsNameConstant, defaults.IncludeOtherObjects, flagIncludeOtherObjectsDescriptionConstant)
	command.Flags().Bool(flagUnreachableNameConstant, defaults.Unreachable, flagUnreachableDescriptionConstant)
	command.Flags().Bool(flagHighlightNameConstant, defaults.Highlight, flagHighlightDescriptionConstant)
	command.Flags().String(flagHighlightStyleNameConstant, defaults.HighlightStyle, flagHighlightStyleDescriptionConstant)
	command.Flags().Duration(flagTimeoutNameConstant, defaults.CommandTimeout, flagTimeoutDescriptionConstant)
	command.Flags().Bool(flagStrictNameConstant, defaults.Strict, flagStrictDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	settings := builder.parseSettings(command, arguments)

	var highlighter *Highlighter
	if settings.highlight {
		highlighter = NewHighlighter(settings.highlightStyle)
	}
	renderer, rendererError := NewRenderer(settings.format, settings.scrapeOptions.ShowContent, highlighter)
	if rendererError != nil {
		return rendererError
	}

	logger := builder.resolveLogger()
	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Debug(
		commandSettingsLogMessageConstant,
		zap.String(logFieldFormatConstant, string(settings.format)),
		zap.Bool(logFieldUnreachableConstant, settings.unreachable),
		zap.Duration(logFieldCommandTimeoutConstant, settings.commandTimeout),
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
	)

	inspector, inspectorError := builder.resolveInspector(logger, settings)
	if inspectorError != nil {
		return inspectorError
	}

	service, serviceError := NewService(logger, inspector, renderer, utils.NewFlushingWriter(command.OutOrStdout()))
	if serviceError != nil {
		return serviceError
	}

	return service.Run(command.Context(), settings.scrapeOptions)
}

// parseSettings layers explicitly set flags over the configured values.
func (builder *CommandBuilder) parseSettings(command *cobra.Command, arguments []string) commandSettings {
	configuration := builder.resolveConfiguration()
	flags := command.Flags()

	if flags.Changed(flagContentNameConstant) {
		configuration.ShowContent, _ = flags.GetBool(flagContentNameConstant)
	}
	if flags.Changed(flagFormatNameConstant) {
		configuration.Format, _ = flags.GetString(flagFormatNameConstant)
	}
	if flags.Changed(flagIncludeOtherObjectsNameConstant) {
		configuration.IncludeOtherObjects, _ = flags.GetBool(flagIncludeOtherObjectsNameConstant)
	}
	if flags.Changed(flagUnreachableNameConstant) {
		configuration.Unreachable, _ = flags.GetBool(flagUnreachableNameConstant)
	}
	if flags.Changed(flagHighlightNameConstant) {
		configuration.Highlight, _ = flags.GetBool(flagHighlightNameConstant)
	}
	if flags.Changed(flagHighlightStyleNameConstant) {
		configuration.HighlightStyle, _ = flags.GetString(flagHighlightStyleNameConstant)
	}
	if flags.Changed(flagTimeoutNameConstant) {
		configuration.CommandTimeout, _ = flags.GetDuration(flagTimeoutNameConstant)
	}
	if flags.Changed(flagStrictNameConstant) {
		configuration.Strict, _ = flags.GetBool(flagStrictNameConstant)
	}
	configuration = configuration.Sanitize()

	repositoryPath := defaultRepositoryPathConstant
	if len(arguments) > 0 {
		repositoryPath = builder.resolveHomeExpander().ResolveRepositoryPath(arguments[0])
	}

	return commandSettings{
		scrapeOptions: ScrapeOptions{
			RepositoryPath:      repositoryPath,
			ShowContent:         configuration.ShowContent,
			IncludeOtherObjects: configuration.IncludeOtherObjects,
			Strict:              configuration.Strict,
		},
		format:         OutputFormat(configuration.Format),
		unreachable:    configuration.Unreachable,
		highlight:      configuration.Highlight,
		highlightStyle: configuration.HighlightStyle,
		commandTimeout: configuration.CommandTimeout,
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander == nil {
		return pathutils.NewHomeExpander()
	}
	return builder.HomeExpander
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveInspector(logger *zap.Logger, settings commandSettings) (ObjectInspector, error) {
	if builder.Inspector != nil {
		return builder.Inspector, nil
	}

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}

	return gitobjects.NewClient(gitExecutor, gitobjects.ClientConfiguration{
		CommandTimeout:       settings.commandTimeout,
		ReportAllUnreachable: settings.unreachable,
	})
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (gitobjects.GitCommandExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	var observer execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observer = ui.NewConsoleCommandEventLogger(logger)
	}

	return execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), observer)
}
