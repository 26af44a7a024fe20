package gitobjects

// ObjectKind names the type of a stored Git object.
type ObjectKind string

// Object kinds reported by fsck and ls-tree.
const (
	ObjectKindCommit ObjectKind = "commit"
	ObjectKindTree   ObjectKind = "tree"
	ObjectKindBlob   ObjectKind = "blob"
	ObjectKindTag    ObjectKind = "tag"
)

// UnreachableObject is an object that no reference reaches.
type UnreachableObject struct {
	Kind ObjectKind `json:"kind" yaml:"kind"`
	ID   string     `json:"id" yaml:"id"`
}

// TreeListingEntry is one line of a non-recursive ls-tree listing.
type TreeListingEntry struct {
	Mode string
	Type ObjectKind
	ID   string
	Name string
}

// TreeEntry is a file reachable from a tree, addressed by its root-relative path.
type TreeEntry struct {
	Path   string `json:"path" yaml:"path"`
	BlobID string `json:"blob_id" yaml:"blob_id"`
}

// TreeWalkFailure records a subtree whose listing could not be read.
type TreeWalkFailure struct {
	Path   string
	TreeID string
	Err    error
}

// TreeWalkResult holds the entries collected by a walk along with the subtrees that failed.
type TreeWalkResult struct {
	Entries  []TreeEntry
	Failures []TreeWalkFailure
}

// Complete reports whether every subtree was listed.
func (result TreeWalkResult) Complete() bool {
	return len(result.Failures) == 0
}
