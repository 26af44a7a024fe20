package gitobjects_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git_garbage_scraper/internal/gitobjects"
)

const (
	parsingSubtestNameTemplateConstant = "%d_%s"
)

func TestParseUnreachableObjects(testInstance *testing.T) {
	testCases := []struct {
		name     string
		output   string
		expected []gitobjects.UnreachableObject
	}{
		{
			name:   "unreachable_and_dangling",
			output: "unreachable commit abc123 commit\ndangling blob def456 blob\n",
			expected: []gitobjects.UnreachableObject{
				{Kind: gitobjects.ObjectKindCommit, ID: "abc123"},
				{Kind: gitobjects.ObjectKindBlob, ID: "def456"},
			},
		},
		{
			name:   "short_and_foreign_lines_dropped",
			output: "Checking object directories: 100% (256/256), done.\ndangling commit\nunreachable\nmissing blob 999\ndangling tree 7777\n\n",
			expected: []gitobjects.UnreachableObject{
				{Kind: gitobjects.ObjectKindTree, ID: "7777"},
			},
		},
		{
			name:   "marker_must_be_whole_token",
			output: "danglingish commit 1111\nunreachable tag 2222\n",
			expected: []gitobjects.UnreachableObject{
				{Kind: gitobjects.ObjectKindTag, ID: "2222"},
			},
		},
		{
			name:     "empty_output",
			output:   "",
			expected: nil,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(parsingSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, gitobjects.ParseUnreachableObjects(testCase.output))
		})
	}
}

func TestParseCommitFields(testInstance *testing.T) {
	testCases := []struct {
		name            string
		commitText      string
		expectedTree    string
		treeFound       bool
		expectedParent  string
		parentFound     bool
		expectedParents []string
	}{
		{
			name:            "tree_before_parent",
			commitText:      "tree T1\nparent P1\nauthor A <a@example.com> 1700000000 +0000\n\nmessage\n",
			expectedTree:    "T1",
			treeFound:       true,
			expectedParent:  "P1",
			parentFound:     true,
			expectedParents: []string{"P1"},
		},
		{
			name:            "parent_before_tree",
			commitText:      "parent P1\ntree T1\n",
			expectedTree:    "T1",
			treeFound:       true,
			expectedParent:  "P1",
			parentFound:     true,
			expectedParents: []string{"P1"},
		},
		{
			name:         "root_commit",
			commitText:   "tree T1\nauthor A <a@example.com> 1700000000 +0000\n\ninitial\n",
			expectedTree: "T1",
			treeFound:    true,
		},
		{
			name:            "merge_commit_uses_first_parent",
			commitText:      "tree T1\nparent P1\nparent P2\n\nmerge\n",
			expectedTree:    "T1",
			treeFound:       true,
			expectedParent:  "P1",
			parentFound:     true,
			expectedParents: []string{"P1", "P2"},
		},
		{
			name:         "message_lines_are_not_headers",
			commitText:   "tree T1\nauthor A <a@example.com> 1700000000 +0000\n\nparent P9 mentioned in the message\n",
			expectedTree: "T1",
			treeFound:    true,
		},
		{
			name:       "error_text_has_no_fields",
			commitText: "fatal: Not a valid object name abc\n",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(parsingSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			treeID, treeFound := gitobjects.ParseCommitTree(testCase.commitText)
			require.Equal(testInstance, testCase.treeFound, treeFound)
			require.Equal(testInstance, testCase.expectedTree, treeID)

			parentID, parentFound := gitobjects.ParseCommitParent(testCase.commitText)
			require.Equal(testInstance, testCase.parentFound, parentFound)
			require.Equal(testInstance, testCase.expectedParent, parentID)

			require.Equal(testInstance, testCase.expectedParents, gitobjects.ParseCommitParents(testCase.commitText))
		})
	}
}

func TestParseTreeListing(testInstance *testing.T) {
	listing := "100644 blob aaa111\ta.txt\n" +
		"040000 tree bbb222\tsub dir\n" +
		"160000 commit ccc333\tvendor/module\n" +
		"100644 blob ddd444\t\"caf\\303\\251.txt\"\n" +
		"malformed line\n"

	entries := gitobjects.ParseTreeListing(listing)

	require.Equal(testInstance, []gitobjects.TreeListingEntry{
		{Mode: "100644", Type: gitobjects.ObjectKindBlob, ID: "aaa111", Name: "a.txt"},
		{Mode: "040000", Type: gitobjects.ObjectKindTree, ID: "bbb222", Name: "sub dir"},
		{Mode: "160000", Type: gitobjects.ObjectKind("commit"), ID: "ccc333", Name: "vendor/module"},
		{Mode: "100644", Type: gitobjects.ObjectKindBlob, ID: "ddd444", Name: "café.txt"},
	}, entries)
}

func TestParseTreeListingAcceptsSpaceSeparatedLines(testInstance *testing.T) {
	entries := gitobjects.ParseTreeListing("100644 blob aaa111 a.txt\n")

	require.Equal(testInstance, []gitobjects.TreeListingEntry{
		{Mode: "100644", Type: gitobjects.ObjectKindBlob, ID: "aaa111", Name: "a.txt"},
	}, entries)
}

func TestJoinTreePath(testInstance *testing.T) {
	testCases := []struct {
		prefix   string
		name     string
		expected string
	}{
		{prefix: "", name: "a.txt", expected: "a.txt"},
		{prefix: "sub", name: "b.txt", expected: "sub/b.txt"},
		{prefix: "sub/nested", name: "c.txt", expected: "sub/nested/c.txt"},
	}

	for _, testCase := range testCases {
		require.Equal(testInstance, testCase.expected, gitobjects.JoinTreePath(testCase.prefix, testCase.name))
	}
}
