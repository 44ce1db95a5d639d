// Package filter decides which walked entries are pruned, admitted, or skipped.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/codecollector/internal/utils"
)

const (
	extensionDotPrefix        = "."
	invalidExtensionCharacter = "/\\*?[]{}"

	errorInvalidExtensionFormat = "%w %q: %s"
	reasonEmptyExtension        = "empty value"
	reasonExtensionCharacters   = "must not contain path separators or glob characters"
)

// ErrInvalidExtension reports an extension that cannot be used as a filter.
var ErrInvalidExtension = errors.New("invalid extension")

// DefaultExcludedDirectories are directory basenames pruned on every run.
var DefaultExcludedDirectories = []string{
	"node_modules",
	"target",
	"build",
	"dist",
	"venv",
	"env",
	".venv",
	".env",
}

// Options carries switches that widen the default traversal.
type Options struct {
	IncludeHidden bool
	IncludeGit    bool
}

// Config is the immutable filter configuration for one run.
type Config struct {
	extensions             map[string]struct{}
	excludedDirectoryNames map[string]struct{}
	includeHidden          bool
	includeGit             bool
}

// NewConfig normalizes user-supplied extensions and directory names. Extensions are trimmed,
// lowercased, and stripped of one leading dot. Directory names are matched case-sensitively and
// extend DefaultExcludedDirectories. .git joins the exclusions unless IncludeGit is set.
func NewConfig(extensions []string, excludeDirectories []string, options Options) (Config, error) {
	config := Config{
		extensions:             map[string]struct{}{},
		excludedDirectoryNames: map[string]struct{}{},
		includeHidden:          options.IncludeHidden,
		includeGit:             options.IncludeGit,
	}
	for _, rawExtension := range extensions {
		extension, err := normalizeExtension(rawExtension)
		if err != nil {
			return Config{}, err
		}
		config.extensions[extension] = struct{}{}
	}
	for _, directoryName := range DefaultExcludedDirectories {
		config.excludedDirectoryNames[directoryName] = struct{}{}
	}
	for _, rawDirectoryName := range excludeDirectories {
		directoryName := strings.TrimSpace(rawDirectoryName)
		if directoryName == "" {
			continue
		}
		config.excludedDirectoryNames[directoryName] = struct{}{}
	}
	if !options.IncludeGit {
		config.excludedDirectoryNames[utils.GitDirectoryName] = struct{}{}
	}
	return config, nil
}

func normalizeExtension(rawExtension string) (string, error) {
	extension := strings.TrimPrefix(strings.TrimSpace(rawExtension), extensionDotPrefix)
	if extension == "" {
		return "", fmt.Errorf(errorInvalidExtensionFormat, ErrInvalidExtension, rawExtension, reasonEmptyExtension)
	}
	if strings.ContainsAny(extension, invalidExtensionCharacter) {
		return "", fmt.Errorf(errorInvalidExtensionFormat, ErrInvalidExtension, rawExtension, reasonExtensionCharacters)
	}
	return strings.ToLower(extension), nil
}

// Extensions returns the sorted extension set; empty means default type detection.
func (config Config) Extensions() []string {
	return sortedKeys(config.extensions)
}

// ExcludedDirectoryNames returns the sorted set of pruned directory basenames.
func (config Config) ExcludedDirectoryNames() []string {
	return sortedKeys(config.excludedDirectoryNames)
}

// IncludeHidden reports whether hidden entries are admitted.
func (config Config) IncludeHidden() bool {
	return config.includeHidden
}

// IncludeGit reports whether the .git directory is traversed.
func (config Config) IncludeGit() bool {
	return config.includeGit
}

func (config Config) allowsExtension(extension string) bool {
	_, ok := config.extensions[strings.ToLower(extension)]
	return ok
}

func (config Config) excludesDirectory(name string) bool {
	_, ok := config.excludedDirectoryNames[name]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
