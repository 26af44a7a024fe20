package ui

import (
	"go.uber.org/zap"

	"github.com/temirov/git_garbage_scraper/internal/execshell"
)

// CommandMessageBuilder turns command lifecycle events into operator-facing sentences.
type CommandMessageBuilder interface {
	BuildStartedMessage(command execshell.ShellCommand) string
	BuildSuccessMessage(command execshell.ShellCommand) string
	BuildFailureMessage(command execshell.ShellCommand, result execshell.ExecutionResult) string
	BuildExecutionFailureMessage(command execshell.ShellCommand, failure error) string
}

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger         *zap.Logger
	messageBuilder CommandMessageBuilder
}

// NewConsoleCommandEventLogger constructs a console event logger that describes git plumbing calls.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	return NewConsoleCommandEventLoggerWithBuilder(logger, execshell.CommandMessageFormatter{})
}

// NewConsoleCommandEventLoggerWithBuilder constructs a console event logger with a custom message builder.
func NewConsoleCommandEventLoggerWithBuilder(logger *zap.Logger, messageBuilder CommandMessageBuilder) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if messageBuilder == nil {
		messageBuilder = execshell.CommandMessageFormatter{}
	}
	return &ConsoleCommandEventLogger{logger: logger, messageBuilder: messageBuilder}
}

// CommandStarted logs the command at debug level; object reads are frequent.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Debug(eventLogger.messageBuilder.BuildStartedMessage(command))
}

// CommandCompleted logs successful completions at debug level and non-zero exits as warnings.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Debug(eventLogger.messageBuilder.BuildSuccessMessage(command))
		return
	}
	eventLogger.logger.Warn(eventLogger.messageBuilder.BuildFailureMessage(command, result))
}

// CommandExecutionFailed logs processes that could not run or were interrupted.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.messageBuilder.BuildExecutionFailureMessage(command, failure))
}
