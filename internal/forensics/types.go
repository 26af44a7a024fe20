package forensics

import (
	"github.com/temirov/git_garbage_scraper/internal/gitobjects"
)

// OutputFormat selects how a Report is rendered.
type OutputFormat string

// Supported report formats.
const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ScrapeOptions configures a single scrape run.
type ScrapeOptions struct {
	RepositoryPath      string
	ShowContent         bool
	IncludeOtherObjects bool
	Strict              bool
}

// Report is the outcome of one scrape run.
type Report struct {
	Repository   string                         `json:"repository" yaml:"repository"`
	ProbeError   string                         `json:"probe_error,omitempty" yaml:"probe_error,omitempty"`
	Objects      []gitobjects.UnreachableObject `json:"objects" yaml:"objects"`
	Commits      []CommitReport                 `json:"commits" yaml:"commits"`
	OtherObjects []gitobjects.UnreachableObject `json:"other_objects,omitempty" yaml:"other_objects,omitempty"`
}

// CommitReport holds everything recovered for one unreachable commit.
// Error fields carry git's stderr for the step that failed.
type CommitReport struct {
	ID            string              `json:"id" yaml:"id"`
	Metadata      string              `json:"metadata" yaml:"metadata"`
	MetadataError string              `json:"metadata_error,omitempty" yaml:"metadata_error,omitempty"`
	Parents       []string            `json:"parents,omitempty" yaml:"parents,omitempty"`
	ParentID      string              `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	ParentError   string              `json:"parent_error,omitempty" yaml:"parent_error,omitempty"`
	Diff          string              `json:"diff,omitempty" yaml:"diff,omitempty"`
	DiffError     string              `json:"diff_error,omitempty" yaml:"diff_error,omitempty"`
	TreeID        string              `json:"tree_id,omitempty" yaml:"tree_id,omitempty"`
	TreeError     string              `json:"tree_error,omitempty" yaml:"tree_error,omitempty"`
	Files         []FileReport        `json:"files" yaml:"files"`
	TreeFailures  []TreeFailureReport `json:"tree_failures,omitempty" yaml:"tree_failures,omitempty"`
}

// FileReport is one blob reachable from an unreachable commit's tree.
type FileReport struct {
	Path         string `json:"path" yaml:"path"`
	BlobID       string `json:"blob_id" yaml:"blob_id"`
	Content      string `json:"content,omitempty" yaml:"content,omitempty"`
	ContentError string `json:"content_error,omitempty" yaml:"content_error,omitempty"`
}

// TreeFailureReport is a subtree that could not be listed.
type TreeFailureReport struct {
	Path   string `json:"path" yaml:"path"`
	TreeID string `json:"tree_id" yaml:"tree_id"`
	Reason string `json:"reason" yaml:"reason"`
}

// FailureCount returns the number of per-object failures recorded in the report.
func (report Report) FailureCount() int {
	failureCount := 0
	for _, commitReport := range report.Commits {
		failureCount += commitReport.failureCount()
	}
	return failureCount
}

func (commitReport CommitReport) failureCount() int {
	failureCount := len(commitReport.TreeFailures)
	for _, stageError := range []string{commitReport.MetadataError, commitReport.ParentError, commitReport.DiffError, commitReport.TreeError} {
		if len(stageError) > 0 {
			failureCount++
		}
	}
	for _, fileReport := range commitReport.Files {
		if len(fileReport.ContentError) > 0 {
			failureCount++
		}
	}
	return failureCount
}
