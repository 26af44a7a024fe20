package forensics

import (
	"errors"
	"fmt"
)

const (
	inspectorNotConfiguredMessageConstant  = "object inspector not configured"
	rendererNotConfiguredMessageConstant   = "report renderer not configured"
	probeFailedErrorTemplateConstant       = "unable to scan %s for unreachable objects: %v"
	partialFailureErrorTemplateConstant    = "report for %s is incomplete: %d object(s) could not be read"
	unsupportedFormatErrorTemplateConstant = "unsupported report format: %s"
)

var (
	// ErrInspectorNotConfigured indicates the service was constructed without an inspector.
	ErrInspectorNotConfigured = errors.New(inspectorNotConfiguredMessageConstant)
	// ErrRendererNotConfigured indicates the service was constructed without a renderer.
	ErrRendererNotConfigured = errors.New(rendererNotConfiguredMessageConstant)
)

// ProbeFailedError reports that the repository could not be scanned at all.
type ProbeFailedError struct {
	RepositoryPath string
	Cause          error
}

// Error describes the probe failure.
func (probeError ProbeFailedError) Error() string {
	return fmt.Sprintf(probeFailedErrorTemplateConstant, probeError.RepositoryPath, probeError.Cause)
}

// Unwrap exposes the underlying git failure.
func (probeError ProbeFailedError) Unwrap() error {
	return probeError.Cause
}

// PartialFailureError reports a completed run in which some objects could not be read.
type PartialFailureError struct {
	RepositoryPath string
	FailureCount   int
}

// Error describes the incomplete report.
func (partialError PartialFailureError) Error() string {
	return fmt.Sprintf(partialFailureErrorTemplateConstant, partialError.RepositoryPath, partialError.FailureCount)
}

// UnsupportedFormatError reports an unknown --format value.
type UnsupportedFormatError struct {
	Format string
}

// Error describes the unsupported format.
func (formatError UnsupportedFormatError) Error() string {
	return fmt.Sprintf(unsupportedFormatErrorTemplateConstant, formatError.Format)
}
