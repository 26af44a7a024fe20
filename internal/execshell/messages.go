package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitFsckSubcommandNameConstant    = "fsck"
	gitCatFileSubcommandNameConstant = "cat-file"
	gitDiffSubcommandNameConstant    = "diff"
	gitLSTreeSubcommandNameConstant  = "ls-tree"
	gitUnreachableFlagConstant       = "--unreachable"
)

const (
	gitFsckStartTemplateConstant                       = "Scanning object store of %s for dangling objects"
	gitFsckUnreachableStartTemplateConstant            = "Scanning object store of %s for unreachable objects"
	gitFsckSuccessTemplateConstant                     = "Scanned object store of %s"
	gitFsckFailureTemplateConstant                     = "Failed to scan object store of %s (exit code %d%s)"
	gitFsckExecutionFailureTemplateConstant            = "Unable to scan object store of %s: %s"
	gitCatFileStartTemplateConstant                    = "Reading object %s in %s"
	gitCatFileSuccessTemplateConstant                  = "Read object %s in %s"
	gitCatFileFailureTemplateConstant                  = "Failed to read object %s in %s (exit code %d%s)"
	gitCatFileExecutionFailureTemplateConstant         = "Unable to read object %s in %s: %s"
	gitDiffStartTemplateConstant                       = "Comparing %s with %s in %s"
	gitDiffSuccessTemplateConstant                     = "Compared %s with %s in %s"
	gitDiffFailureTemplateConstant                     = "Failed to compare %s with %s in %s (exit code %d%s)"
	gitDiffExecutionFailureTemplateConstant            = "Unable to compare %s with %s in %s: %s"
	gitLSTreeStartTemplateConstant                     = "Listing tree %s in %s"
	gitLSTreeSuccessTemplateConstant                   = "Listed tree %s in %s"
	gitLSTreeFailureTemplateConstant                   = "Failed to list tree %s in %s (exit code %d%s)"
	gitLSTreeExecutionFailureTemplateConstant          = "Unable to list tree %s in %s: %s"
	gitCatFileObjectArgumentIndexConstant              = 0
	gitDiffSourceArgumentIndexConstant                 = 0
	gitDiffTargetArgumentIndexConstant                 = 1
	gitLSTreeObjectArgumentIndexConstant               = 0
	gitSubcommandArgumentCountConstant                 = 1
	gitMinimumArgumentsForSubcommandDispatchConstant   = 1
	gitDiffMinimumPositionalArgumentsForLabelsConstant = 2
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) < gitMinimumArgumentsForSubcommandDispatchConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitFsckSubcommandNameConstant:
		return formatter.describeGitFsckMessage(command, result, failure, stage)
	case gitCatFileSubcommandNameConstant:
		return formatter.describeGitCatFileMessage(command, result, failure, stage)
	case gitDiffSubcommandNameConstant:
		return formatter.describeGitDiffMessage(command, result, failure, stage)
	case gitLSTreeSubcommandNameConstant:
		return formatter.describeGitLSTreeMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitFsckMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		if containsArgument(command.Details.Arguments, gitUnreachableFlagConstant) {
			return fmt.Sprintf(gitFsckUnreachableStartTemplateConstant, workingDirectory)
		}
		return fmt.Sprintf(gitFsckStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFsckSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFsckFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitFsckExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCatFileMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	objectID := formatter.ensureValue(formatter.positionalArgumentAt(command.Details.Arguments, gitCatFileObjectArgumentIndexConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCatFileStartTemplateConstant, objectID, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitCatFileSuccessTemplateConstant, objectID, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitCatFileFailureTemplateConstant, objectID, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCatFileExecutionFailureTemplateConstant, objectID, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitDiffMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	positionalArguments := formatter.positionalArguments(command.Details.Arguments)
	if len(positionalArguments) < gitDiffMinimumPositionalArgumentsForLabelsConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	sourceID := positionalArguments[gitDiffSourceArgumentIndexConstant]
	targetID := positionalArguments[gitDiffTargetArgumentIndexConstant]
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitDiffStartTemplateConstant, targetID, sourceID, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitDiffSuccessTemplateConstant, targetID, sourceID, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitDiffFailureTemplateConstant, targetID, sourceID, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitDiffExecutionFailureTemplateConstant, targetID, sourceID, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitLSTreeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	treeID := formatter.ensureValue(formatter.positionalArgumentAt(command.Details.Arguments, gitLSTreeObjectArgumentIndexConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitLSTreeStartTemplateConstant, treeID, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitLSTreeSuccessTemplateConstant, treeID, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitLSTreeFailureTemplateConstant, treeID, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitLSTreeExecutionFailureTemplateConstant, treeID, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

// positionalArguments drops the subcommand and any flags.
func (formatter CommandMessageFormatter) positionalArguments(arguments []string) []string {
	if len(arguments) <= gitSubcommandArgumentCountConstant {
		return nil
	}
	positional := make([]string, 0, len(arguments)-gitSubcommandArgumentCountConstant)
	for _, argument := range arguments[gitSubcommandArgumentCountConstant:] {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmedArgument)
	}
	return positional
}

func (formatter CommandMessageFormatter) positionalArgumentAt(arguments []string, index int) string {
	positional := formatter.positionalArguments(arguments)
	if index < 0 || index >= len(positional) {
		return emptyStringConstant
	}
	return positional[index]
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
