package forensics_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/git_garbage_scraper/internal/forensics"
	pathutils "github.com/temirov/git_garbage_scraper/internal/utils/path"
)

const (
	commandTestHomeDirectoryConstant = "/home/forensics"
)

func executeScrapeCommand(testInstance *testing.T, builder forensics.CommandBuilder, arguments []string) (string, error) {
	testInstance.Helper()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetContext(context.Background())
	command.SetArgs(append([]string{}, arguments...))
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SilenceUsage = true
	command.SilenceErrors = true

	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func TestCommandBuilderDefaultsToCurrentDirectory(testInstance *testing.T) {
	inspector := rootCommitInspector()
	builder := forensics.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		Inspector:      inspector,
	}

	output, executionError := executeScrapeCommand(testInstance, builder, nil)

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"."}, inspector.probeRequests)
	require.Equal(testInstance, expectedRootCommitSection, output)
}

func TestCommandBuilderExpandsHomeInRepositoryArgument(testInstance *testing.T) {
	inspector := rootCommitInspector()
	builder := forensics.CommandBuilder{
		Inspector: inspector,
		HomeExpander: pathutils.NewHomeExpanderWithProvider(func() (string, error) {
			return commandTestHomeDirectoryConstant, nil
		}),
	}

	_, executionError := executeScrapeCommand(testInstance, builder, []string{"~/projects/lost"})

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{filepath.Join(commandTestHomeDirectoryConstant, "projects", "lost")}, inspector.probeRequests)
}

func TestCommandBuilderContentFlag(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "short_flag", arguments: []string{"-c", testRepositoryPathConstant}},
		{name: "long_flag", arguments: []string{testRepositoryPathConstant, "--content"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			inspector := rootCommitInspector()
			builder := forensics.CommandBuilder{Inspector: inspector}

			output, executionError := executeScrapeCommand(testInstance, builder, testCase.arguments)

			require.NoError(testInstance, executionError)
			require.Equal(testInstance, expectedRootCommitSection+"hello\n", output)
			require.Equal(testInstance, []string{testRepositoryPathConstant}, inspector.probeRequests)
		})
	}
}

func TestCommandBuilderFlagsOverrideConfiguration(testInstance *testing.T) {
	configuration := forensics.DefaultCommandConfiguration()
	configuration.ShowContent = true
	configuration.Format = "yaml"

	inspector := rootCommitInspector()
	builder := forensics.CommandBuilder{
		Inspector:             inspector,
		ConfigurationProvider: func() forensics.CommandConfiguration { return configuration },
	}

	output, executionError := executeScrapeCommand(testInstance, builder, []string{"--format", "json"})
	require.NoError(testInstance, executionError)

	var report forensics.Report
	require.NoError(testInstance, json.Unmarshal([]byte(output), &report))
	require.Len(testInstance, report.Commits, 1)
	require.Equal(testInstance, "hello\n", report.Commits[0].Files[0].Content)
}

func TestCommandBuilderRejectsInvalidInput(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "unsupported_format", arguments: []string{"--format", "xml"}},
		{name: "too_many_repositories", arguments: []string{"first", "second"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			inspector := rootCommitInspector()
			builder := forensics.CommandBuilder{Inspector: inspector}

			_, executionError := executeScrapeCommand(testInstance, builder, testCase.arguments)

			require.Error(testInstance, executionError)
			require.Empty(testInstance, inspector.probeRequests)
		})
	}
}

func TestCommandBuilderStrictFlag(testInstance *testing.T) {
	inspector := childCommitInspector()
	inspector.treeErrors = map[string]error{"t3": gitFailure([]string{"ls-tree", "t3"}, "fatal: not a tree object")}
	builder := forensics.CommandBuilder{Inspector: inspector}

	_, lenientError := executeScrapeCommand(testInstance, builder, nil)
	require.NoError(testInstance, lenientError)

	_, strictError := executeScrapeCommand(testInstance, builder, []string{"--strict"})
	var partialError forensics.PartialFailureError
	require.ErrorAs(testInstance, strictError, &partialError)
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	sanitized := forensics.CommandConfiguration{
		Format:         "  JSON ",
		HighlightStyle: " ",
		CommandTimeout: -time.Second,
	}.Sanitize()

	require.Equal(testInstance, "json", sanitized.Format)
	require.Equal(testInstance, forensics.DefaultCommandConfiguration().HighlightStyle, sanitized.HighlightStyle)
	require.Zero(testInstance, sanitized.CommandTimeout)

	require.Equal(testInstance, "text", forensics.CommandConfiguration{}.Sanitize().Format)
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	defaults := forensics.DefaultConfigurationValues("scrape")

	require.Equal(testInstance, "30s", defaults["scrape.command_timeout"])
	require.Equal(testInstance, "text", defaults["scrape.format"])
	require.Equal(testInstance, false, defaults["scrape.show_content"])
	require.Len(testInstance, defaults, 8)
}
