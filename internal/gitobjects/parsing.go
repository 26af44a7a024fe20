package gitobjects

import (
	"strconv"
	"strings"
)

const (
	fsckUnreachableMarkerConstant    = "unreachable"
	fsckDanglingMarkerConstant       = "dangling"
	fsckMinimumTokenCountConstant    = 3
	fsckKindTokenIndexConstant       = 1
	fsckIdentifierTokenIndexConstant = 2
	commitParentHeaderPrefixConstant = "parent "
	commitTreeHeaderPrefixConstant   = "tree "
	commitHeaderValueTokenIndex      = 1
	treeListingFieldSeparator        = "\t"
	treeListingMetadataTokenCount    = 3
	treeListingQuoteCharacter        = `"`
	treePathSeparatorConstant        = "/"
)

// ParseUnreachableObjects extracts kind and id pairs from git fsck output.
// Lines whose first token is not a dangling/unreachable marker, or that carry
// fewer than three tokens, are ignored.
func ParseUnreachableObjects(fsckOutput string) []UnreachableObject {
	var objects []UnreachableObject
	for _, line := range strings.Split(fsckOutput, "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if tokens[0] != fsckUnreachableMarkerConstant && tokens[0] != fsckDanglingMarkerConstant {
			continue
		}
		if len(tokens) < fsckMinimumTokenCountConstant {
			continue
		}
		objects = append(objects, UnreachableObject{
			Kind: ObjectKind(tokens[fsckKindTokenIndexConstant]),
			ID:   tokens[fsckIdentifierTokenIndexConstant],
		})
	}
	return objects
}

// ParseCommitParent returns the first parent header of a commit.
func ParseCommitParent(commitText string) (string, bool) {
	return firstHeaderValue(commitText, commitParentHeaderPrefixConstant)
}

// ParseCommitTree returns the tree header of a commit.
func ParseCommitTree(commitText string) (string, bool) {
	return firstHeaderValue(commitText, commitTreeHeaderPrefixConstant)
}

// ParseCommitParents returns every parent header of a commit in order.
func ParseCommitParents(commitText string) []string {
	var parents []string
	for _, line := range commitHeaderLines(commitText) {
		if value, matched := headerValue(line, commitParentHeaderPrefixConstant); matched {
			parents = append(parents, value)
		}
	}
	return parents
}

func firstHeaderValue(commitText string, prefix string) (string, bool) {
	for _, line := range commitHeaderLines(commitText) {
		if value, matched := headerValue(line, prefix); matched {
			return value, true
		}
	}
	return "", false
}

func headerValue(line string, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	tokens := strings.Fields(line)
	if len(tokens) <= commitHeaderValueTokenIndex {
		return "", false
	}
	return tokens[commitHeaderValueTokenIndex], true
}

// commitHeaderLines returns the lines before the blank line that starts the commit message.
func commitHeaderLines(commitText string) []string {
	lines := strings.Split(commitText, "\n")
	for lineIndex, line := range lines {
		if len(strings.TrimRight(line, "\r")) == 0 {
			return lines[:lineIndex]
		}
	}
	return lines
}

// ParseTreeListing parses the output of a non-recursive git ls-tree.
func ParseTreeListing(listingOutput string) []TreeListingEntry {
	var entries []TreeListingEntry
	for _, line := range strings.Split(listingOutput, "\n") {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		entry, parsed := parseTreeListingLine(line)
		if !parsed {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseTreeListingLine(line string) (TreeListingEntry, bool) {
	metadata, name, hasSeparator := strings.Cut(line, treeListingFieldSeparator)
	if !hasSeparator {
		tokens := strings.Fields(line)
		if len(tokens) <= treeListingMetadataTokenCount {
			return TreeListingEntry{}, false
		}
		metadata = strings.Join(tokens[:treeListingMetadataTokenCount], " ")
		name = strings.Join(tokens[treeListingMetadataTokenCount:], " ")
	}

	metadataTokens := strings.Fields(metadata)
	if len(metadataTokens) != treeListingMetadataTokenCount || len(name) == 0 {
		return TreeListingEntry{}, false
	}

	return TreeListingEntry{
		Mode: metadataTokens[0],
		Type: ObjectKind(metadataTokens[1]),
		ID:   metadataTokens[2],
		Name: unquoteTreeEntryName(name),
	}, true
}

// unquoteTreeEntryName reverses git's C-style quoting of unusual file names.
func unquoteTreeEntryName(name string) string {
	if len(name) < 2 || !strings.HasPrefix(name, treeListingQuoteCharacter) || !strings.HasSuffix(name, treeListingQuoteCharacter) {
		return name
	}
	unquoted, unquoteError := strconv.Unquote(name)
	if unquoteError != nil {
		return name
	}
	return unquoted
}

// JoinTreePath joins a tree path prefix and an entry name with a forward slash.
// An empty prefix never produces a leading slash.
func JoinTreePath(prefix string, name string) string {
	return strings.TrimPrefix(prefix+treePathSeparatorConstant+name, treePathSeparatorConstant)
}
