package forensics

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/git_garbage_scraper/internal/gitobjects"
)

const (
	defaultRepositoryPathConstant      = "."
	renderErrorTemplateConstant        = "unable to render report: %w"
	probeStartedLogMessageConstant     = "scanning repository for unreachable objects"
	probeFailedLogMessageConstant      = "repository scan failed"
	probeCompletedLogMessageConstant   = "repository scan completed"
	commitInspectedLogMessageConstant  = "inspected unreachable commit"
	objectReadFailedLogMessageConstant = "object could not be read"
	logFieldRepositoryConstant         = "repository"
	logFieldObjectCountConstant        = "object_count"
	logFieldCommitIDConstant           = "commit"
	logFieldObjectIDConstant           = "object"
	logFieldFileCountConstant          = "file_count"
	logFieldFailureCountConstant       = "failure_count"
)

// ObjectInspector is the read-only view of a repository's object store used by the service.
type ObjectInspector interface {
	FindUnreachable(executionContext context.Context, repositoryPath string) ([]gitobjects.UnreachableObject, error)
	ReadObject(executionContext context.Context, repositoryPath string, objectID string) (string, error)
	CommitParent(executionContext context.Context, repositoryPath string, commitID string) (string, bool, error)
	CommitTree(executionContext context.Context, repositoryPath string, commitID string) (string, bool, error)
	Diff(executionContext context.Context, repositoryPath string, fromID string, toID string) (string, error)
	ListTree(executionContext context.Context, repositoryPath string, treeID string) ([]gitobjects.TreeListingEntry, error)
}

// Service recovers unreachable commits and renders them as a report.
type Service struct {
	logger       *zap.Logger
	inspector    ObjectInspector
	walker       *gitobjects.TreeWalker
	renderer     ReportRenderer
	outputWriter io.Writer
}

// NewService constructs a Service using the provided dependencies.
func NewService(logger *zap.Logger, inspector ObjectInspector, renderer ReportRenderer, outputWriter io.Writer) (*Service, error) {
	if inspector == nil {
		return nil, ErrInspectorNotConfigured
	}
	if renderer == nil {
		return nil, ErrRendererNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}

	walker, walkerError := gitobjects.NewTreeWalker(inspector)
	if walkerError != nil {
		return nil, walkerError
	}

	return &Service{
		logger:       logger,
		inspector:    inspector,
		walker:       walker,
		renderer:     renderer,
		outputWriter: outputWriter,
	}, nil
}

// Run builds the report, renders it, and reports probe or strict-mode failures.
// The report is rendered even when the probe failed so the operator sees the notice.
func (service *Service) Run(executionContext context.Context, options ScrapeOptions) error {
	report, probeError := service.BuildReport(executionContext, options)

	if renderError := service.renderer.Render(service.outputWriter, report); renderError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, renderError)
	}

	if probeError != nil {
		return probeError
	}

	if options.Strict {
		if failureCount := report.FailureCount(); failureCount > 0 {
			return PartialFailureError{RepositoryPath: report.Repository, FailureCount: failureCount}
		}
	}

	return nil
}

// BuildReport probes the repository and inspects every unreachable commit in probe order.
// Per-object failures are recorded in the report; only a probe failure is returned as an error.
func (service *Service) BuildReport(executionContext context.Context, options ScrapeOptions) (Report, error) {
	repositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(repositoryPath) == 0 {
		repositoryPath = defaultRepositoryPathConstant
	}

	report := Report{Repository: repositoryPath}

	service.logger.Debug(probeStartedLogMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath))
	objects, probeError := service.inspector.FindUnreachable(executionContext, repositoryPath)
	if probeError != nil {
		service.logger.Warn(probeFailedLogMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath), zap.Error(probeError))
		report.ProbeError = gitobjects.StandardError(probeError)
		return report, ProbeFailedError{RepositoryPath: repositoryPath, Cause: probeError}
	}
	service.logger.Info(probeCompletedLogMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath), zap.Int(logFieldObjectCountConstant, len(objects)))

	report.Objects = objects
	for _, object := range objects {
		if object.Kind != gitobjects.ObjectKindCommit {
			if options.IncludeOtherObjects {
				report.OtherObjects = append(report.OtherObjects, object)
			}
			continue
		}
		commitReport := service.inspectCommit(executionContext, repositoryPath, object.ID, options.ShowContent)
		report.Commits = append(report.Commits, commitReport)
	}

	return report, nil
}

func (service *Service) inspectCommit(executionContext context.Context, repositoryPath string, commitID string, showContent bool) CommitReport {
	commitReport := CommitReport{ID: commitID}

	commitText, readError := service.inspector.ReadObject(executionContext, repositoryPath, commitID)
	if readError != nil {
		service.logReadFailure(commitID, readError)
		commitReport.MetadataError = gitobjects.StandardError(readError)
	} else {
		commitReport.Metadata = commitText
		commitReport.Parents = gitobjects.ParseCommitParents(commitText)
	}

	parentID, parentFound, parentError := service.inspector.CommitParent(executionContext, repositoryPath, commitID)
	switch {
	case parentError != nil:
		service.logReadFailure(commitID, parentError)
		commitReport.ParentError = gitobjects.StandardError(parentError)
	case parentFound:
		commitReport.ParentID = parentID
		diffText, diffError := service.inspector.Diff(executionContext, repositoryPath, parentID, commitID)
		if diffError != nil {
			service.logReadFailure(commitID, diffError)
			commitReport.DiffError = gitobjects.StandardError(diffError)
		} else {
			commitReport.Diff = diffText
		}
	}

	treeID, treeFound, treeError := service.inspector.CommitTree(executionContext, repositoryPath, commitID)
	switch {
	case treeError != nil:
		service.logReadFailure(commitID, treeError)
		commitReport.TreeError = gitobjects.StandardError(treeError)
	case treeFound:
		commitReport.TreeID = treeID
		service.collectFiles(executionContext, repositoryPath, &commitReport, showContent)
	}

	service.logger.Debug(
		commitInspectedLogMessageConstant,
		zap.String(logFieldCommitIDConstant, commitID),
		zap.Int(logFieldFileCountConstant, len(commitReport.Files)),
		zap.Int(logFieldFailureCountConstant, commitReport.failureCount()),
	)

	return commitReport
}

func (service *Service) collectFiles(executionContext context.Context, repositoryPath string, commitReport *CommitReport, showContent bool) {
	walkResult := service.walker.ListBlobs(executionContext, repositoryPath, commitReport.TreeID, "")

	for _, failure := range walkResult.Failures {
		service.logReadFailure(failure.TreeID, failure.Err)
		commitReport.TreeFailures = append(commitReport.TreeFailures, TreeFailureReport{
			Path:   failure.Path,
			TreeID: failure.TreeID,
			Reason: gitobjects.StandardError(failure.Err),
		})
	}

	for _, entry := range walkResult.Entries {
		fileReport := FileReport{Path: entry.Path, BlobID: entry.BlobID}
		if showContent {
			blobContent, blobError := service.inspector.ReadObject(executionContext, repositoryPath, entry.BlobID)
			if blobError != nil {
				service.logReadFailure(entry.BlobID, blobError)
				fileReport.ContentError = gitobjects.StandardError(blobError)
			} else {
				fileReport.Content = blobContent
			}
		}
		commitReport.Files = append(commitReport.Files, fileReport)
	}
}

func (service *Service) logReadFailure(objectID string, failure error) {
	service.logger.Warn(objectReadFailedLogMessageConstant, zap.String(logFieldObjectIDConstant, objectID), zap.Error(failure))
}
