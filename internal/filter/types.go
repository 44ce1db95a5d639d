package filter

import "strings"

// TypeTable recognizes text files by extension or well-known file name.
type TypeTable struct {
	Extensions map[string]struct{}
	FileNames  map[string]struct{}
}

// DefaultTypes is consulted when no extensions are configured.
var DefaultTypes = TypeTable{
	Extensions: setOf(
		"c", "h", "cc", "cpp", "cxx", "hh", "hpp", "m", "mm",
		"cs", "fs", "vb",
		"go", "rs", "zig", "nim", "v",
		"java", "kt", "kts", "scala", "groovy", "gradle", "clj", "cljs",
		"js", "jsx", "mjs", "cjs", "ts", "tsx", "vue", "svelte",
		"py", "pyi", "rb", "pl", "pm", "php", "lua", "r", "jl",
		"swift", "dart", "ex", "exs", "erl", "hrl", "hs", "ml", "mli", "elm",
		"sh", "bash", "zsh", "fish", "ps1", "bat", "cmd",
		"html", "htm", "xhtml", "xml", "svg", "css", "scss", "sass", "less",
		"json", "jsonc", "yaml", "yml", "toml", "ini", "cfg", "conf", "env", "properties",
		"md", "markdown", "rst", "txt", "adoc", "tex",
		"sql", "graphql", "gql", "proto", "thrift",
		"tf", "hcl", "nix", "cmake", "mk", "dockerfile",
	),
	FileNames: setOf(
		"makefile", "gnumakefile", "dockerfile", "containerfile", "jenkinsfile", "vagrantfile",
		"gemfile", "rakefile", "procfile", "justfile", "cmakelists.txt",
		"go.mod", "go.sum", "cargo.toml", "cargo.lock", "package.json",
		"readme", "license", "changelog",
	),
}

// Matches reports whether the basename name is a recognized text file.
func (table TypeTable) Matches(name string) bool {
	lowerName := strings.ToLower(name)
	if _, ok := table.FileNames[lowerName]; ok {
		return true
	}
	extension := Extension(lowerName)
	if extension == "" {
		return false
	}
	_, ok := table.Extensions[extension]
	return ok
}

// Extension returns the text after the last dot of a basename. Names without a dot, and names
// whose only dot is the leading one (".bashrc"), have no extension.
func Extension(name string) string {
	index := strings.LastIndex(name, ".")
	if index <= 0 {
		return ""
	}
	return name[index+1:]
}

func setOf(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
