// Package ignore evaluates gitignore-style rules collected while a directory tree is walked.
package ignore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/codecollector/internal/config"
	"github.com/temirov/codecollector/internal/utils"
)

const (
	rootDirectoryKey   = "."
	negationPrefix     = "!"
	anyDepthPrefix     = "**/"
	pathSeparator      = "/"
	gitInfoExcludePath = "info/exclude"
	escapedSpace       = `\ `
	literalSpace       = "[ ]"

	errorLoadIgnoreFileFormat = "loading %s: %w"
)

// Options selects which ignore sources participate.
type Options struct {
	UseGitignore  bool
	UseIgnoreFile bool
	UseGlobal     bool
	// GlobalExcludesFile overrides the discovered global excludes file when non-empty.
	GlobalExcludesFile string
}

// Matcher reports whether a path relative to the scan root is excluded by ignore rules.
type Matcher interface {
	Ignored(relativePath string, isDir bool) bool
}

// Rule is one compiled ignore line.
type Rule struct {
	negated bool
	matcher *gitignore.GitIgnore
}

// Rules is an ordered rule set from one ignore file; the last matching rule wins.
type Rules []Rule

// layer is the rule set of one ignore file, matched against paths relative to base.
type layer struct {
	base  string
	rules Rules
}

// Tree holds the ignore layers discovered so far, keyed by slash-separated directory path
// relative to the scan root. Layers are added with Enter as traversal descends.
type Tree struct {
	root    string
	options Options
	layers  map[string][]layer
	global  []layer
}

// NewTree prepares the root-level layers: the global excludes file and .git/info/exclude.
// Per-directory ignore files, including the root's, are added through Enter.
func NewTree(root string, options Options) (*Tree, error) {
	tree := &Tree{
		root:    root,
		options: options,
		layers:  map[string][]layer{},
	}
	if options.UseGitignore && options.UseGlobal {
		globalPath := options.GlobalExcludesFile
		if globalPath == "" {
			globalPath = config.GlobalExcludesFilePath()
		}
		if globalPath != "" {
			if err := tree.appendGlobal(globalPath); err != nil {
				return nil, err
			}
		}
	}
	if options.UseGitignore {
		infoExcludePath := filepath.Join(root, utils.GitDirectoryName, filepath.FromSlash(gitInfoExcludePath))
		if err := tree.appendGlobal(infoExcludePath); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func (tree *Tree) appendGlobal(ignoreFilePath string) error {
	compiled, err := compileFile(ignoreFilePath)
	if err != nil {
		return err
	}
	if compiled != nil {
		tree.global = append(tree.global, layer{base: rootDirectoryKey, rules: compiled})
	}
	return nil
}

// Enter loads the ignore files of a directory about to be traversed. relativeDirectory is
// relative to the scan root ("." for the root itself). .ignore is layered after .gitignore so
// its rules take precedence.
func (tree *Tree) Enter(relativeDirectory string, absoluteDirectory string) error {
	if tree == nil {
		return nil
	}
	key := normalizeDirectoryKey(relativeDirectory)
	var sources []string
	if tree.options.UseGitignore {
		sources = append(sources, utils.GitIgnoreFileName)
	}
	if tree.options.UseIgnoreFile {
		sources = append(sources, utils.IgnoreFileName)
	}
	var directoryLayers []layer
	for _, fileName := range sources {
		compiled, err := compileFile(filepath.Join(absoluteDirectory, fileName))
		if err != nil {
			return err
		}
		if compiled != nil {
			directoryLayers = append(directoryLayers, layer{base: key, rules: compiled})
		}
	}
	if len(directoryLayers) > 0 {
		tree.layers[key] = directoryLayers
	}
	return nil
}

// Ignored reports whether relativePath is excluded. Layers are consulted from the deepest
// ancestor directory up to the root and then the global layers; the first layer whose rules
// match decides, so deeper rules and negations override shallower ones.
func (tree *Tree) Ignored(relativePath string, isDir bool) bool {
	if tree == nil {
		return false
	}
	candidate := filepath.ToSlash(relativePath)
	directory := path.Dir(candidate)
	for {
		if ignored, decided := decide(tree.layers[directory], candidate, isDir); decided {
			return ignored
		}
		if directory == rootDirectoryKey {
			break
		}
		directory = path.Dir(directory)
	}
	ignored, _ := decide(tree.global, candidate, isDir)
	return ignored
}

// decide evaluates layers in reverse order so later layers override earlier ones.
func decide(layers []layer, candidate string, isDir bool) (bool, bool) {
	for index := len(layers) - 1; index >= 0; index-- {
		current := layers[index]
		target := relativeTo(current.base, candidate)
		if isDir {
			target += pathSeparator
		}
		if ignored, decided := current.rules.Match(target); decided {
			return ignored, true
		}
	}
	return false, false
}

// Match returns the verdict of the last rule matching target and whether any rule matched.
// Directory targets carry a trailing slash.
func (rules Rules) Match(target string) (bool, bool) {
	for index := len(rules) - 1; index >= 0; index-- {
		if rules[index].matcher.MatchesPath(target) {
			return !rules[index].negated, true
		}
	}
	return false, false
}

func relativeTo(base string, candidate string) string {
	if base == rootDirectoryKey {
		return candidate
	}
	return strings.TrimPrefix(candidate, base+pathSeparator)
}

func normalizeDirectoryKey(relativeDirectory string) string {
	if relativeDirectory == "" {
		return rootDirectoryKey
	}
	return path.Clean(filepath.ToSlash(relativeDirectory))
}

func compileFile(ignoreFilePath string) (Rules, error) {
	lines, err := config.LoadIgnoreFileLines(ignoreFilePath)
	if err != nil {
		return nil, fmt.Errorf(errorLoadIgnoreFileFormat, ignoreFilePath, err)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return Compile(lines), nil
}

// Compile builds rules from gitignore lines, one matcher per line so negations can be
// resolved across files. Patterns are normalized to git's anchoring: a slash at the start or in
// the middle ties the pattern to the ignore file's directory, and a directory-only pattern
// without one ("build/") matches at any depth.
func Compile(lines []string) Rules {
	rules := make(Rules, 0, len(lines))
	for _, line := range lines {
		negated := strings.HasPrefix(line, negationPrefix)
		pattern := normalizePattern(protectSpaces(strings.TrimPrefix(line, negationPrefix)))
		if pattern == "" {
			continue
		}
		rules = append(rules, Rule{negated: negated, matcher: gitignore.CompileIgnoreLines(pattern)})
	}
	return rules
}

// protectSpaces turns leading and escaped spaces into character classes so the matcher keeps them.
func protectSpaces(pattern string) string {
	body := strings.TrimLeft(pattern, " ")
	leading := len(pattern) - len(body)
	return strings.Repeat(literalSpace, leading) + strings.ReplaceAll(body, escapedSpace, literalSpace)
}

func normalizePattern(pattern string) string {
	trimmed := strings.TrimSuffix(pattern, pathSeparator)
	if trimmed == "" || strings.HasPrefix(trimmed, pathSeparator) || strings.HasPrefix(trimmed, anyDepthPrefix) {
		return pattern
	}
	if strings.Contains(trimmed, pathSeparator) {
		return pathSeparator + pattern
	}
	if strings.HasSuffix(pattern, pathSeparator) {
		return anyDepthPrefix + pattern
	}
	return pattern
}

var _ Matcher = (*Tree)(nil)
