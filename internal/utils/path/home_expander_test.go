package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/git_garbage_scraper/internal/utils/path"
)

const (
	testHomeDirectoryConstant = "/home/operator"
)

func TestHomeExpanderResolveRepositoryPath(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "blank_defaults_to_current_directory", input: "  ", expected: "."},
		{name: "bare_tilde", input: "~", expected: testHomeDirectoryConstant},
		{name: "tilde_prefix", input: "~/work/repo", expected: filepath.Join(testHomeDirectoryConstant, "work", "repo")},
		{name: "other_user_untouched", input: "~someone/repo", expected: "~someone/repo"},
		{name: "absolute_untouched", input: "/srv/repo", expected: "/srv/repo"},
		{name: "trimmed_relative", input: " ../repo ", expected: "../repo"},
	}

	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, expander.ResolveRepositoryPath(testCase.input))
		})
	}
}

func TestHomeExpanderLooksUpHomeOnce(testInstance *testing.T) {
	lookupCount := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		lookupCount++
		return testHomeDirectoryConstant, nil
	})

	expander.Expand("~/a")
	expander.Expand("~/b")
	expander.Expand("plain")

	require.Equal(testInstance, 1, lookupCount)
}

func TestHomeExpanderKeepsPathWhenHomeUnavailable(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home")
	})

	require.Equal(testInstance, "~/repo", expander.Expand("~/repo"))

	var nilExpander *pathutils.HomeExpander
	require.Equal(testInstance, "~/repo", nilExpander.Expand("~/repo"))
}
