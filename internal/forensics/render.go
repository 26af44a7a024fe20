package forensics

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	noUnreachableObjectsMessageConstant = "No unreachable Git objects found."
	probeErrorTemplateConstant          = "Error running git fsck: %s\n"
	commitHeaderTemplateConstant        = "\n=== Unreachable commit %s ===\n"
	commitMetadataHeaderConstant        = "--- Commit Metadata ---"
	diffHeaderConstant                  = "\n--- Diff from parent ---"
	noParentMessageConstant             = "No parent found. Possibly an initial commit."
	treeFilesHeaderConstant             = "\n--- Commit Tree Files ---"
	noTreeMessageConstant               = "No tree found."
	fileLineTemplateConstant            = "File: %s\nBlob SHA: %s\n"
	objectReadErrorTemplateConstant     = "Error reading object %s: %s\n"
	diffErrorTemplateConstant           = "Error running diff: %s\n"
	treeFailureTemplateConstant         = "Unreadable tree %s (%s): %s\n"
	otherObjectsHeaderConstant          = "\n=== Other unreachable objects ==="
	otherObjectLineTemplateConstant     = "%s %s\n"
	rootTreePathLabelConstant           = "."
	jsonIndentConstant                  = "  "
	yamlIndentConstant                  = 2
	lineTerminatorConstant              = "\n"
)

// ReportRenderer writes a Report to an output stream.
type ReportRenderer interface {
	Render(writer io.Writer, report Report) error
}

// NewRenderer returns the renderer for the requested format.
// Highlighting only applies to the text format and is skipped when highlighter is nil.
func NewRenderer(format OutputFormat, showContent bool, highlighter *Highlighter) (ReportRenderer, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(string(format)))) {
	case OutputFormatText, "":
		return &TextRenderer{ShowContent: showContent, Highlighter: highlighter}, nil
	case OutputFormatJSON:
		return JSONRenderer{}, nil
	case OutputFormatYAML:
		return YAMLRenderer{}, nil
	default:
		return nil, UnsupportedFormatError{Format: string(format)}
	}
}

// TextRenderer prints the human-readable forensic report.
type TextRenderer struct {
	ShowContent bool
	Highlighter *Highlighter
}

// Render writes the report as text sections, one per unreachable commit.
func (renderer *TextRenderer) Render(writer io.Writer, report Report) error {
	output := &reportWriter{writer: writer}

	if len(report.ProbeError) > 0 {
		output.printf(probeErrorTemplateConstant, report.ProbeError)
	}

	if len(report.Objects) == 0 {
		output.println(noUnreachableObjectsMessageConstant)
		return output.err
	}

	for _, commitReport := range report.Commits {
		renderer.renderCommit(output, commitReport)
	}

	if len(report.OtherObjects) > 0 {
		output.println(otherObjectsHeaderConstant)
		for _, object := range report.OtherObjects {
			output.printf(otherObjectLineTemplateConstant, object.Kind, object.ID)
		}
	}

	return output.err
}

func (renderer *TextRenderer) renderCommit(output *reportWriter, commitReport CommitReport) {
	output.printf(commitHeaderTemplateConstant, commitReport.ID)
	output.println(commitMetadataHeaderConstant)
	if len(commitReport.MetadataError) > 0 {
		output.printf(objectReadErrorTemplateConstant, commitReport.ID, commitReport.MetadataError)
	} else {
		output.println(strings.TrimSpace(commitReport.Metadata))
	}

	switch {
	case len(commitReport.ParentError) > 0:
		output.printf(objectReadErrorTemplateConstant, commitReport.ID, commitReport.ParentError)
	case len(commitReport.ParentID) > 0:
		output.println(diffHeaderConstant)
		if len(commitReport.DiffError) > 0 {
			output.printf(diffErrorTemplateConstant, commitReport.DiffError)
		} else {
			output.println(renderer.highlightDiff(strings.TrimSpace(commitReport.Diff)))
		}
	default:
		output.println(noParentMessageConstant)
	}

	output.println(treeFilesHeaderConstant)
	switch {
	case len(commitReport.TreeError) > 0:
		output.printf(objectReadErrorTemplateConstant, commitReport.ID, commitReport.TreeError)
		return
	case len(commitReport.TreeID) == 0:
		output.println(noTreeMessageConstant)
		return
	}

	for _, failure := range commitReport.TreeFailures {
		failurePath := failure.Path
		if len(failurePath) == 0 {
			failurePath = rootTreePathLabelConstant
		}
		output.printf(treeFailureTemplateConstant, failurePath, failure.TreeID, failure.Reason)
	}

	for _, fileReport := range commitReport.Files {
		output.printf(fileLineTemplateConstant, fileReport.Path, fileReport.BlobID)
		if !renderer.ShowContent {
			continue
		}
		if len(fileReport.ContentError) > 0 {
			output.printf(objectReadErrorTemplateConstant, fileReport.BlobID, fileReport.ContentError)
			continue
		}
		output.println(renderer.highlightFile(fileReport.Path, strings.TrimSpace(fileReport.Content)))
	}
}

func (renderer *TextRenderer) highlightDiff(diffText string) string {
	if renderer.Highlighter == nil {
		return diffText
	}
	return renderer.Highlighter.HighlightDiff(diffText)
}

func (renderer *TextRenderer) highlightFile(filePath string, content string) string {
	if renderer.Highlighter == nil {
		return content
	}
	return renderer.Highlighter.HighlightFile(filePath, content)
}

// JSONRenderer writes the report as indented JSON.
type JSONRenderer struct{}

// Render encodes the report.
func (JSONRenderer) Render(writer io.Writer, report Report) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(report)
}

// YAMLRenderer writes the report as a YAML document.
type YAMLRenderer struct{}

// Render encodes the report.
func (YAMLRenderer) Render(writer io.Writer, report Report) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(report); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

// reportWriter keeps the first write error so rendering code stays linear.
type reportWriter struct {
	writer io.Writer
	err    error
}

func (output *reportWriter) printf(template string, arguments ...any) {
	if output.err != nil {
		return
	}
	_, output.err = fmt.Fprintf(output.writer, template, arguments...)
}

func (output *reportWriter) println(line string) {
	if output.err != nil {
		return
	}
	_, output.err = io.WriteString(output.writer, line+lineTerminatorConstant)
}
