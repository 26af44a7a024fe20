package forensics_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/git_garbage_scraper/internal/forensics"
)

const (
	gitExecutableNameConstant = "git"
	integrationAuthorConstant = "Forensics Test"
	integrationEmailConstant  = "forensics@example.com"
)

type gitRepositoryFixture struct {
	testInstance   *testing.T
	repositoryPath string
	environment    []string
}

func newGitRepositoryFixture(testInstance *testing.T) *gitRepositoryFixture {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(gitExecutableNameConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	fixture := &gitRepositoryFixture{
		testInstance:   testInstance,
		repositoryPath: testInstance.TempDir(),
		environment: append(os.Environ(),
			"HOME="+testInstance.TempDir(),
			"GIT_CONFIG_NOSYSTEM=1",
			"GIT_AUTHOR_NAME="+integrationAuthorConstant,
			"GIT_AUTHOR_EMAIL="+integrationEmailConstant,
			"GIT_COMMITTER_NAME="+integrationAuthorConstant,
			"GIT_COMMITTER_EMAIL="+integrationEmailConstant,
		),
	}
	fixture.git("init", "-q")
	return fixture
}

func (fixture *gitRepositoryFixture) git(arguments ...string) string {
	fixture.testInstance.Helper()
	command := exec.Command(gitExecutableNameConstant, arguments...)
	command.Dir = fixture.repositoryPath
	command.Env = fixture.environment
	output, runError := command.CombinedOutput()
	require.NoError(fixture.testInstance, runError, string(output))
	return strings.TrimSpace(string(output))
}

func (fixture *gitRepositoryFixture) writeFile(relativePath string, content string) {
	fixture.testInstance.Helper()
	absolutePath := filepath.Join(fixture.repositoryPath, relativePath)
	require.NoError(fixture.testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
	require.NoError(fixture.testInstance, os.WriteFile(absolutePath, []byte(content), 0o600))
}

func TestScrapeRecoversCommitDiscardedByReset(testInstance *testing.T) {
	fixture := newGitRepositoryFixture(testInstance)

	fixture.writeFile("a.txt", "first version\n")
	fixture.git("add", "a.txt")
	fixture.git("commit", "-q", "-m", "first")
	firstCommitID := fixture.git("rev-parse", "HEAD")

	fixture.writeFile("a.txt", "second version\n")
	fixture.writeFile("sub/b.txt", "nested file\n")
	fixture.git("add", "-A")
	fixture.git("commit", "-q", "-m", "discarded work")
	discardedCommitID := fixture.git("rev-parse", "HEAD")

	fixture.git("reset", "-q", "--hard", firstCommitID)
	_ = os.Remove(filepath.Join(fixture.repositoryPath, ".git", "ORIG_HEAD"))

	builder := forensics.CommandBuilder{LoggerProvider: func() *zap.Logger { return zap.NewNop() }}
	output, executionError := executeScrapeCommand(testInstance, builder, []string{fixture.repositoryPath, "--content"})
	require.NoError(testInstance, executionError)

	require.Contains(testInstance, output, "=== Unreachable commit "+discardedCommitID+" ===")
	require.Contains(testInstance, output, "parent "+firstCommitID)
	require.Contains(testInstance, output, "\n--- Diff from parent ---\n")
	require.Contains(testInstance, output, "+second version")
	require.Contains(testInstance, output, "File: a.txt\n")
	require.Contains(testInstance, output, "File: sub/b.txt\n")
	require.Contains(testInstance, output, "nested file")
}

func TestScrapeFailsOutsideRepository(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(gitExecutableNameConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
	notARepository := testInstance.TempDir()
	testInstance.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(notARepository))

	builder := forensics.CommandBuilder{}
	output, executionError := executeScrapeCommand(testInstance, builder, []string{notARepository})

	var probeError forensics.ProbeFailedError
	require.ErrorAs(testInstance, executionError, &probeError)
	require.True(testInstance, strings.HasPrefix(output, "Error running git fsck: "))
	require.True(testInstance, strings.HasSuffix(output, "No unreachable Git objects found.\n"))
}
