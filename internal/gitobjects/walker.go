package gitobjects

import (
	"context"
	"errors"
)

const (
	treeListerNotConfiguredMessageConstant = "tree lister not configured"
)

// ErrTreeListerNotConfigured indicates the walker was constructed without a lister.
var ErrTreeListerNotConfigured = errors.New(treeListerNotConfiguredMessageConstant)

// TreeLister lists the direct children of a tree.
type TreeLister interface {
	ListTree(executionContext context.Context, repositoryPath string, treeID string) ([]TreeListingEntry, error)
}

// TreeWalker flattens a tree into the blobs it contains.
type TreeWalker struct {
	lister TreeLister
}

// NewTreeWalker constructs a walker over the provided lister.
func NewTreeWalker(lister TreeLister) (*TreeWalker, error) {
	if lister == nil {
		return nil, ErrTreeListerNotConfigured
	}
	return &TreeWalker{lister: lister}, nil
}

// ListBlobs walks treeID depth-first in git's listing order and returns every blob
// with its path below pathPrefix. A subtree that cannot be listed contributes no
// entries and is recorded in the result's failures; its siblings are still walked.
func (walker *TreeWalker) ListBlobs(executionContext context.Context, repositoryPath string, treeID string, pathPrefix string) TreeWalkResult {
	listing, listingError := walker.lister.ListTree(executionContext, repositoryPath, treeID)
	if listingError != nil {
		return TreeWalkResult{Failures: []TreeWalkFailure{{Path: pathPrefix, TreeID: treeID, Err: listingError}}}
	}

	result := TreeWalkResult{}
	for _, listingEntry := range listing {
		entryPath := JoinTreePath(pathPrefix, listingEntry.Name)
		switch listingEntry.Type {
		case ObjectKindBlob:
			result.Entries = append(result.Entries, TreeEntry{Path: entryPath, BlobID: listingEntry.ID})
		case ObjectKindTree:
			subtreeResult := walker.ListBlobs(executionContext, repositoryPath, listingEntry.ID, entryPath)
			result.Entries = append(result.Entries, subtreeResult.Entries...)
			result.Failures = append(result.Failures, subtreeResult.Failures...)
		}
	}
	return result
}
