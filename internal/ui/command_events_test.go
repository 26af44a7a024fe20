package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/git_garbage_scraper/internal/execshell"
	"github.com/temirov/git_garbage_scraper/internal/ui"
)

const (
	testCommandWorkingDirectoryConstant    = "/tmp/project"
	testObjectIDConstant                   = "deadbeef"
	testExecutionFailureReasonConstant     = "context deadline exceeded"
	testStandardErrorMessageConstant       = "fatal: Not a valid object name deadbeef"
	testStartMessageExpectationConstant    = "Reading object deadbeef in /tmp/project"
	testSuccessMessageExpectationConstant  = "Read object deadbeef in /tmp/project"
	testFailureMessageExpectationConstant  = "Failed to read object deadbeef in /tmp/project (exit code 128: " + testStandardErrorMessageConstant + ")"
	testExecutionFailureMessageExpectation = "Unable to read object deadbeef in /tmp/project: " + testExecutionFailureReasonConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"cat-file", "-p", testObjectIDConstant},
			WorkingDirectory: testCommandWorkingDirectoryConstant,
		},
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "command_completed_success",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "command_completed_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 128, StandardError: testStandardErrorMessageConstant + "\n"})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "command_execution_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

type fixedMessageBuilder struct{}

func (fixedMessageBuilder) BuildStartedMessage(execshell.ShellCommand) string { return "started" }

func (fixedMessageBuilder) BuildSuccessMessage(execshell.ShellCommand) string { return "succeeded" }

func (fixedMessageBuilder) BuildFailureMessage(execshell.ShellCommand, execshell.ExecutionResult) string {
	return "failed"
}

func (fixedMessageBuilder) BuildExecutionFailureMessage(execshell.ShellCommand, error) string {
	return "crashed"
}

func TestConsoleCommandEventLoggerUsesCustomBuilder(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	eventLogger := ui.NewConsoleCommandEventLoggerWithBuilder(zap.New(observerCore), fixedMessageBuilder{})

	eventLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
	eventLogger.CommandCompleted(execshell.ShellCommand{Name: execshell.CommandGit}, execshell.ExecutionResult{ExitCode: 1})

	entries := observedLogs.All()
	require.Len(testInstance, entries, 2)
	require.Equal(testInstance, "started", entries[0].Message)
	require.Equal(testInstance, "failed", entries[1].Message)
}

func TestConsoleCommandEventLoggerToleratesNilReceiver(testInstance *testing.T) {
	var eventLogger *ui.ConsoleCommandEventLogger
	require.NotPanics(testInstance, func() {
		eventLogger.CommandStarted(execshell.ShellCommand{})
		eventLogger.CommandCompleted(execshell.ShellCommand{}, execshell.ExecutionResult{})
		eventLogger.CommandExecutionFailed(execshell.ShellCommand{}, nil)
	})
}
