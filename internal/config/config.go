// Package config loads ignore files and the application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// gitConfigFileName is the per-user Git configuration file under the home directory.
	gitConfigFileName = ".gitconfig"
	// gitConfigType tells viper how to decode gitconfig syntax.
	gitConfigType = "ini"
	// excludesFileKey is the gitconfig key naming the global excludes file.
	excludesFileKey = "core.excludesfile"
	// xdgConfigHomeVariable overrides the default ~/.config location.
	xdgConfigHomeVariable = "XDG_CONFIG_HOME"
	// commentPrefix starts a comment line inside ignore files.
	commentPrefix = "#"
	// homePrefix marks a home-relative path in gitconfig values.
	homePrefix = "~/"
)

// LoadIgnoreFileLines reads an ignore file and returns its pattern lines.
// Blank lines and comments are dropped. Leading whitespace and backslash-escaped trailing
// spaces belong to the pattern, as in git. A missing file yields no lines and no error.
//
// #nosec G304
func LoadIgnoreFileLines(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var patternLines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		patternLine := trimUnescapedTrailingSpace(scanner.Text())
		if strings.TrimSpace(patternLine) == "" || strings.HasPrefix(patternLine, commentPrefix) {
			continue
		}
		patternLines = append(patternLines, patternLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("reading %s: %w", ignoreFilePath, scanError)
	}
	return patternLines, nil
}

// trimUnescapedTrailingSpace drops trailing whitespace up to the first backslash-escaped space.
func trimUnescapedTrailingSpace(line string) string {
	line = strings.TrimSuffix(line, "\r")
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		if end > 1 && line[end-2] == '\\' {
			break
		}
		end--
	}
	return line[:end]
}

// GlobalExcludesFilePath locates the user's global Git excludes file.
// core.excludesFile from ~/.gitconfig wins; otherwise $XDG_CONFIG_HOME/git/ignore or
// ~/.config/git/ignore is used. An empty string means no candidate could be derived.
func GlobalExcludesFilePath() string {
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil {
		homeDirectory = ""
	}
	if homeDirectory != "" {
		if configured := excludesFileFromGitConfig(filepath.Join(homeDirectory, gitConfigFileName)); configured != "" {
			return expandHome(configured, homeDirectory)
		}
	}
	if xdgConfigHome := strings.TrimSpace(os.Getenv(xdgConfigHomeVariable)); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "git", "ignore")
	}
	if homeDirectory == "" {
		return ""
	}
	return filepath.Join(homeDirectory, ".config", "git", "ignore")
}

// excludesFileFromGitConfig returns core.excludesFile from the gitconfig at path, or "" when
// the file is absent, unparsable, or does not set the key.
func excludesFileFromGitConfig(path string) string {
	if _, statError := os.Stat(path); statError != nil {
		return ""
	}
	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType(gitConfigType)
	if readError := reader.ReadInConfig(); readError != nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(reader.GetString(excludesFileKey)), `"`)
}

func expandHome(path string, homeDirectory string) string {
	if strings.HasPrefix(path, homePrefix) {
		return filepath.Join(homeDirectory, strings.TrimPrefix(path, homePrefix))
	}
	return path
}
