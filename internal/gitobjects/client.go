package gitobjects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/temirov/git_garbage_scraper/internal/execshell"
)

const (
	fsckSubcommandConstant                  = "fsck"
	fsckFullFlagConstant                    = "--full"
	fsckNoReflogsFlagConstant               = "--no-reflogs"
	fsckUnreachableFlagConstant             = "--unreachable"
	catFileSubcommandConstant               = "cat-file"
	catFilePrettyPrintFlagConstant          = "-p"
	diffSubcommandConstant                  = "diff"
	lsTreeSubcommandConstant                = "ls-tree"
	objectIDFieldNameConstant               = "object_id"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "git executor not configured"
	operationErrorMessageTemplateConstant   = "%s failed for %s"
	operationErrorWithCauseTemplateConstant = "%s failed for %s: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	findUnreachableOperationNameConstant    = OperationName("FindUnreachable")
	readObjectOperationNameConstant         = OperationName("ReadObject")
	diffOperationNameConstant               = OperationName("Diff")
	listTreeOperationNameConstant           = OperationName("ListTree")
)

// OperationName identifies a git workflow performed by the client.
type OperationName string

// GitCommandExecutor is the subset of execshell.ShellExecutor used by the client.
type GitCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ClientConfiguration tunes how the client invokes git.
type ClientConfiguration struct {
	// CommandTimeout bounds every git invocation; zero disables the bound.
	CommandTimeout time.Duration
	// ReportAllUnreachable asks fsck for every unreachable object instead of only dangling tips.
	ReportAllUnreachable bool
}

// Client runs read-only git inspection commands against a repository.
type Client struct {
	executor      GitCommandExecutor
	configuration ClientConfiguration
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps a failed git invocation with the object it concerned.
type OperationError struct {
	Operation OperationName
	Subject   string
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation, operationError.Subject)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Subject, operationError.Cause)
}

// Unwrap exposes the underlying execshell error.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// StandardError returns the trimmed stderr git produced for a failure, falling back to the error text.
func StandardError(failure error) string {
	if failure == nil {
		return ""
	}
	var commandFailure execshell.CommandFailedError
	if errors.As(failure, &commandFailure) {
		trimmedStandardError := strings.TrimSpace(commandFailure.Result.StandardError)
		if len(trimmedStandardError) > 0 {
			return trimmedStandardError
		}
	}
	var operationFailure OperationError
	if errors.As(failure, &operationFailure) && operationFailure.Cause != nil {
		return operationFailure.Cause.Error()
	}
	return failure.Error()
}

// NewClient constructs a git inspection client.
func NewClient(executor GitCommandExecutor, configuration ClientConfiguration) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor, configuration: configuration}, nil
}

// FindUnreachable runs a full fsck that ignores reflogs and returns the dangling or unreachable objects.
// On failure the returned list is empty and the error is an OperationError.
func (client *Client) FindUnreachable(executionContext context.Context, repositoryPath string) ([]UnreachableObject, error) {
	arguments := []string{fsckSubcommandConstant, fsckFullFlagConstant, fsckNoReflogsFlagConstant}
	if client.configuration.ReportAllUnreachable {
		arguments = append(arguments, fsckUnreachableFlagConstant)
	}

	executionResult, executionError := client.run(executionContext, repositoryPath, arguments)
	if executionError != nil {
		return nil, OperationError{Operation: findUnreachableOperationNameConstant, Subject: repositoryPath, Cause: executionError}
	}

	return ParseUnreachableObjects(executionResult.StandardOutput), nil
}

// ReadObject returns the pretty-printed content of an object verbatim.
func (client *Client) ReadObject(executionContext context.Context, repositoryPath string, objectID string) (string, error) {
	trimmedObjectID := strings.TrimSpace(objectID)
	if len(trimmedObjectID) == 0 {
		return "", InvalidInputError{FieldName: objectIDFieldNameConstant, Message: requiredValueMessageConstant}
	}

	executionResult, executionError := client.run(executionContext, repositoryPath, []string{catFileSubcommandConstant, catFilePrettyPrintFlagConstant, trimmedObjectID})
	if executionError != nil {
		return "", OperationError{Operation: readObjectOperationNameConstant, Subject: trimmedObjectID, Cause: executionError}
	}

	return executionResult.StandardOutput, nil
}

// CommitParent reads a commit and returns its first parent.
// Merge commits therefore resolve to their first-listed parent only.
func (client *Client) CommitParent(executionContext context.Context, repositoryPath string, commitID string) (string, bool, error) {
	commitText, readError := client.ReadObject(executionContext, repositoryPath, commitID)
	if readError != nil {
		return "", false, readError
	}
	parentID, found := ParseCommitParent(commitText)
	return parentID, found, nil
}

// CommitTree reads a commit and returns its root tree.
func (client *Client) CommitTree(executionContext context.Context, repositoryPath string, commitID string) (string, bool, error) {
	commitText, readError := client.ReadObject(executionContext, repositoryPath, commitID)
	if readError != nil {
		return "", false, readError
	}
	treeID, found := ParseCommitTree(commitText)
	return treeID, found, nil
}

// Diff returns the unified diff between two objects as produced by git.
func (client *Client) Diff(executionContext context.Context, repositoryPath string, fromID string, toID string) (string, error) {
	executionResult, executionError := client.run(executionContext, repositoryPath, []string{diffSubcommandConstant, fromID, toID})
	if executionError != nil {
		return "", OperationError{Operation: diffOperationNameConstant, Subject: fromID + ".." + toID, Cause: executionError}
	}
	return executionResult.StandardOutput, nil
}

// ListTree returns the direct children of a tree in git's listing order.
func (client *Client) ListTree(executionContext context.Context, repositoryPath string, treeID string) ([]TreeListingEntry, error) {
	executionResult, executionError := client.run(executionContext, repositoryPath, []string{lsTreeSubcommandConstant, treeID})
	if executionError != nil {
		return nil, OperationError{Operation: listTreeOperationNameConstant, Subject: treeID, Cause: executionError}
	}
	return ParseTreeListing(executionResult.StandardOutput), nil
}

func (client *Client) run(executionContext context.Context, repositoryPath string, arguments []string) (execshell.ExecutionResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if client.configuration.CommandTimeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, client.configuration.CommandTimeout)
		defer cancel()
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	}
	return client.executor.ExecuteGit(executionContext, commandDetails)
}
