// Package gitobjects reads a repository's object store through git plumbing commands.
//
// Client probes for dangling objects (fsck), dumps objects (cat-file), diffs
// commits, and lists trees; TreeWalker flattens a tree into file paths. The
// Parse* helpers hold all text parsing so it can be exercised without git.
package gitobjects
