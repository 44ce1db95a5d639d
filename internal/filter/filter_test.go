package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codecollector/internal/filter"
	"github.com/temirov/codecollector/internal/types"
)

type stubMatcher map[string]bool

func (matcher stubMatcher) Ignored(relativePath string, isDir bool) bool {
	return matcher[relativePath]
}

func fileEntry(relativePath string, name string) types.WalkEntry {
	return types.WalkEntry{RelativePath: relativePath, Name: name}
}

func directoryEntry(relativePath string, name string) types.WalkEntry {
	return types.WalkEntry{RelativePath: relativePath, Name: name, IsDir: true}
}

func mustConfig(t *testing.T, extensions []string, excludeDirectories []string, options filter.Options) filter.Config {
	t.Helper()
	config, err := filter.NewConfig(extensions, excludeDirectories, options)
	require.NoError(t, err)
	return config
}

func TestNewConfigNormalizesExtensions(t *testing.T) {
	config := mustConfig(t, []string{" PY ", ".rs", "py", "Go"}, nil, filter.Options{})
	require.Equal(t, []string{"go", "py", "rs"}, config.Extensions())
}

func TestNewConfigRejectsInvalidExtensions(t *testing.T) {
	testCases := []struct {
		name      string
		extension string
	}{
		{name: "empty", extension: "  "},
		{name: "dot only", extension: "."},
		{name: "separator", extension: "src/py"},
		{name: "backslash", extension: `a\b`},
		{name: "glob star", extension: "*.py"},
		{name: "glob class", extension: "p[yi]"},
		{name: "brace", extension: "{go,rs}"},
		{name: "question", extension: "p?"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := filter.NewConfig([]string{testCase.extension}, nil, filter.Options{})
			require.ErrorIs(t, err, filter.ErrInvalidExtension)
		})
	}
}

func TestNewConfigMergesExcludedDirectories(t *testing.T) {
	config := mustConfig(t, nil, []string{"vendor", " ", "build"}, filter.Options{})
	names := config.ExcludedDirectoryNames()
	for _, expected := range append([]string{"vendor", ".git"}, filter.DefaultExcludedDirectories...) {
		require.Contains(t, names, expected)
	}
	require.NotContains(t, names, "")

	withGit := mustConfig(t, nil, nil, filter.Options{IncludeGit: true})
	require.NotContains(t, withGit.ExcludedDirectoryNames(), ".git")
}

func TestExtension(t *testing.T) {
	testCases := map[string]string{
		"main.go":        "go",
		"archive.tar.gz": "gz",
		".bashrc":        "",
		"Makefile":       "",
		"..weird":        "weird",
		"trailing.":      "",
		"UPPER.PY":       "PY",
	}
	for name, expected := range testCases {
		require.Equal(t, expected, filter.Extension(name), name)
	}
}

func TestExtensionsPredicate(t *testing.T) {
	config := mustConfig(t, []string{"py"}, nil, filter.Options{})
	admit := filter.Extensions(config)

	require.True(t, admit(fileEntry("a.py", "a.py")))
	require.True(t, admit(fileEntry("B.PY", "B.PY")))
	require.False(t, admit(fileEntry("b.js", "b.js")))
	require.False(t, admit(fileEntry("python", "python")))
	require.False(t, admit(fileEntry("x.pyc", "x.pyc")))
	require.True(t, admit(directoryEntry("sub", "sub")))
}

func TestExtensionsPredicateFallsBackToDefaultTypes(t *testing.T) {
	admit := filter.Extensions(mustConfig(t, nil, nil, filter.Options{}))

	require.True(t, admit(fileEntry("main.go", "main.go")))
	require.True(t, admit(fileEntry("Makefile", "Makefile")))
	require.True(t, admit(fileEntry("go.mod", "go.mod")))
	require.False(t, admit(fileEntry("image.png", "image.png")))
	require.False(t, admit(fileEntry("binary", "binary")))
}

func TestExcludedDirectoriesPredicate(t *testing.T) {
	admit := filter.ExcludedDirectories(mustConfig(t, nil, []string{"Vendor"}, filter.Options{}))

	require.False(t, admit(directoryEntry("node_modules", "node_modules")))
	require.False(t, admit(directoryEntry("a/b/build", "build")))
	require.False(t, admit(directoryEntry("Vendor", "Vendor")))
	require.True(t, admit(directoryEntry("vendor", "vendor")))
	require.True(t, admit(fileEntry("build", "build")))
}

func TestHiddenPredicate(t *testing.T) {
	admit := filter.Hidden(mustConfig(t, nil, nil, filter.Options{}))
	require.False(t, admit(fileEntry(".env.local", ".env.local")))
	require.False(t, admit(directoryEntry(".cache", ".cache")))
	require.True(t, admit(fileEntry("visible.go", "visible.go")))

	includeHidden := filter.Hidden(mustConfig(t, nil, nil, filter.Options{IncludeHidden: true}))
	require.True(t, includeHidden(fileEntry(".bashrc", ".bashrc")))

	includeGit := filter.Hidden(mustConfig(t, nil, nil, filter.Options{IncludeGit: true}))
	require.True(t, includeGit(directoryEntry(".git", ".git")))
	require.False(t, includeGit(directoryEntry(".cache", ".cache")))
}

func TestIgnoredPredicate(t *testing.T) {
	admit := filter.Ignored(stubMatcher{"dist.js": true})
	require.False(t, admit(fileEntry("dist.js", "dist.js")))
	require.True(t, admit(fileEntry("src.js", "src.js")))
	require.True(t, filter.Ignored(nil)(fileEntry("dist.js", "dist.js")))
}

func TestPolicyAdmitAndPrune(t *testing.T) {
	config := mustConfig(t, []string{"py"}, nil, filter.Options{})
	policy := filter.NewPolicy(config, stubMatcher{"generated.py": true, "ignored_dir": true})

	require.True(t, policy.Admit(fileEntry("a.py", "a.py")))
	require.False(t, policy.Admit(fileEntry("generated.py", "generated.py")))
	require.False(t, policy.Admit(fileEntry(".hidden.py", ".hidden.py")))
	require.False(t, policy.Admit(fileEntry("b.txt", "b.txt")))

	require.False(t, policy.Prune(directoryEntry("sub", "sub")))
	require.True(t, policy.Prune(directoryEntry("node_modules", "node_modules")))
	require.True(t, policy.Prune(directoryEntry("ignored_dir", "ignored_dir")))
	require.True(t, policy.Prune(directoryEntry(".git", ".git")))
	require.False(t, policy.Prune(fileEntry("b.txt", "b.txt")))
}

func TestAndShortCircuits(t *testing.T) {
	calls := 0
	counting := func(types.WalkEntry) bool {
		calls++
		return true
	}
	reject := func(types.WalkEntry) bool { return false }

	require.False(t, filter.And(reject, counting)(fileEntry("a", "a")))
	require.Equal(t, 0, calls)
	require.True(t, filter.And()(fileEntry("a", "a")))
}
