package forensics_test

import (
	"context"
	"errors"

	"github.com/temirov/git_garbage_scraper/internal/execshell"
	"github.com/temirov/git_garbage_scraper/internal/gitobjects"
)

// fakeInspector serves canned object store content keyed by object id.
type fakeInspector struct {
	unreachable   []gitobjects.UnreachableObject
	probeError    error
	objects       map[string]string
	objectErrors  map[string]error
	diffs         map[string]string
	diffErrors    map[string]error
	trees         map[string][]gitobjects.TreeListingEntry
	treeErrors    map[string]error
	readRequests  []string
	diffRequests  []string
	probeRequests []string
}

func (inspector *fakeInspector) FindUnreachable(executionContext context.Context, repositoryPath string) ([]gitobjects.UnreachableObject, error) {
	inspector.probeRequests = append(inspector.probeRequests, repositoryPath)
	if inspector.probeError != nil {
		return nil, inspector.probeError
	}
	return inspector.unreachable, nil
}

func (inspector *fakeInspector) ReadObject(executionContext context.Context, repositoryPath string, objectID string) (string, error) {
	inspector.readRequests = append(inspector.readRequests, objectID)
	if readError, found := inspector.objectErrors[objectID]; found {
		return "", readError
	}
	objectText, found := inspector.objects[objectID]
	if !found {
		return "", errors.New("missing object " + objectID)
	}
	return objectText, nil
}

func (inspector *fakeInspector) CommitParent(executionContext context.Context, repositoryPath string, commitID string) (string, bool, error) {
	commitText, readError := inspector.ReadObject(executionContext, repositoryPath, commitID)
	if readError != nil {
		return "", false, readError
	}
	parentID, found := gitobjects.ParseCommitParent(commitText)
	return parentID, found, nil
}

func (inspector *fakeInspector) CommitTree(executionContext context.Context, repositoryPath string, commitID string) (string, bool, error) {
	commitText, readError := inspector.ReadObject(executionContext, repositoryPath, commitID)
	if readError != nil {
		return "", false, readError
	}
	treeID, found := gitobjects.ParseCommitTree(commitText)
	return treeID, found, nil
}

func (inspector *fakeInspector) Diff(executionContext context.Context, repositoryPath string, fromID string, toID string) (string, error) {
	diffKey := fromID + ".." + toID
	inspector.diffRequests = append(inspector.diffRequests, diffKey)
	if diffError, found := inspector.diffErrors[diffKey]; found {
		return "", diffError
	}
	return inspector.diffs[diffKey], nil
}

func (inspector *fakeInspector) ListTree(executionContext context.Context, repositoryPath string, treeID string) ([]gitobjects.TreeListingEntry, error) {
	if listingError, found := inspector.treeErrors[treeID]; found {
		return nil, listingError
	}
	return inspector.trees[treeID], nil
}

func gitFailure(arguments []string, standardError string) error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: arguments}},
		Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: standardError},
	}
}

func blob(name string, id string) gitobjects.TreeListingEntry {
	return gitobjects.TreeListingEntry{Mode: "100644", Type: gitobjects.ObjectKindBlob, ID: id, Name: name}
}

func tree(name string, id string) gitobjects.TreeListingEntry {
	return gitobjects.TreeListingEntry{Mode: "040000", Type: gitobjects.ObjectKindTree, ID: id, Name: name}
}
