package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/codecollector/internal/utils"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(filePath), 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create %s: %v", filepath.Dir(filePath), makeDirError)
	}
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadIgnoreFileLinesSkipsCommentsAndBlanks verifies that only pattern lines are returned.
func TestLoadIgnoreFileLinesSkipsCommentsAndBlanks(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	ignorePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	writeTestFile(testingHandle, ignorePath, "# build output\n\n   \ndist/  \n*.log\r\n!keep.log\n")

	patternLines, loadError := LoadIgnoreFileLines(ignorePath)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnoreFileLines failed: %v", loadError)
	}
	expectedLines := []string{"dist/", "*.log", "!keep.log"}
	if !reflect.DeepEqual(patternLines, expectedLines) {
		testingHandle.Fatalf("unexpected lines: got %v want %v", patternLines, expectedLines)
	}
}

// TestLoadIgnoreFileLinesKeepsSignificantWhitespace verifies that leading and escaped trailing
// spaces stay part of the pattern.
func TestLoadIgnoreFileLinesKeepsSignificantWhitespace(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	ignorePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	writeTestFile(testingHandle, ignorePath, " leading.txt\ntrailing\\ \ntabbed.txt\t\t\nescaped\\  \n")

	patternLines, loadError := LoadIgnoreFileLines(ignorePath)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnoreFileLines failed: %v", loadError)
	}
	expectedLines := []string{" leading.txt", `trailing\ `, "tabbed.txt", `escaped\ `}
	if !reflect.DeepEqual(patternLines, expectedLines) {
		testingHandle.Fatalf("unexpected lines: got %q want %q", patternLines, expectedLines)
	}
}

// TestLoadIgnoreFileLinesMissingFile verifies that a missing ignore file is not an error.
func TestLoadIgnoreFileLinesMissingFile(testingHandle *testing.T) {
	patternLines, loadError := LoadIgnoreFileLines(filepath.Join(testingHandle.TempDir(), utils.IgnoreFileName))
	if loadError != nil {
		testingHandle.Fatalf("expected no error, got %v", loadError)
	}
	if len(patternLines) != 0 {
		testingHandle.Fatalf("expected no lines, got %v", patternLines)
	}
}

// TestLoadIgnoreFileLinesDirectory verifies that an unreadable ignore path is reported.
func TestLoadIgnoreFileLinesDirectory(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	ignorePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	if makeDirError := os.Mkdir(ignorePath, 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir: %v", makeDirError)
	}
	if _, loadError := LoadIgnoreFileLines(ignorePath); loadError == nil {
		testingHandle.Fatalf("expected an error for a directory ignore path")
	}
}

// TestGlobalExcludesFilePath verifies gitconfig and XDG resolution of the global excludes file.
func TestGlobalExcludesFilePath(testingHandle *testing.T) {
	testCases := []struct {
		name          string
		gitConfig     string
		xdgConfigHome string
		expected      func(homeDirectory string, xdgDirectory string) string
	}{
		{
			name:      "core excludesfile with home prefix",
			gitConfig: "[user]\nname = someone\n[core]\nexcludesfile = ~/.global_ignore\n",
			expected: func(homeDirectory string, _ string) string {
				return filepath.Join(homeDirectory, ".global_ignore")
			},
		},
		{
			name:          "xdg config home fallback",
			xdgConfigHome: "xdg",
			expected: func(_ string, xdgDirectory string) string {
				return filepath.Join(xdgDirectory, "git", "ignore")
			},
		},
		{
			name: "home config fallback",
			expected: func(homeDirectory string, _ string) string {
				return filepath.Join(homeDirectory, ".config", "git", "ignore")
			},
		},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			homeDirectory := testingHandle.TempDir()
			testingHandle.Setenv("HOME", homeDirectory)
			testingHandle.Setenv("USERPROFILE", homeDirectory)
			xdgDirectory := ""
			if testCase.xdgConfigHome != "" {
				xdgDirectory = filepath.Join(homeDirectory, testCase.xdgConfigHome)
			}
			testingHandle.Setenv(xdgConfigHomeVariable, xdgDirectory)
			if testCase.gitConfig != "" {
				writeTestFile(testingHandle, filepath.Join(homeDirectory, gitConfigFileName), testCase.gitConfig)
			}
			resolved := GlobalExcludesFilePath()
			expected := testCase.expected(homeDirectory, xdgDirectory)
			if resolved != expected {
				testingHandle.Fatalf("expected %s, got %s", expected, resolved)
			}
		})
	}
}
