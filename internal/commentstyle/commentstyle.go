// Package commentstyle maps file extensions to the comment syntax used for path headers.
package commentstyle

// Kind distinguishes line comments from block comments.
type Kind int

const (
	// KindLine is a single-line comment such as "// path".
	KindLine Kind = iota
	// KindBlock is a delimited comment whose suffix sits on its own line.
	KindBlock
)

const (
	slashPrefix       = "//"
	hashPrefix        = "#"
	markupBlockPrefix = "<!--"
	markupBlockSuffix = "-->"
	styleBlockPrefix  = "/*"
	styleBlockSuffix  = "*/"
)

// Style describes how a header comment is written for one language.
type Style struct {
	Kind   Kind
	Prefix string
	Suffix string
}

// Line returns a line comment style.
func Line(prefix string) Style {
	return Style{Kind: KindLine, Prefix: prefix}
}

// Block returns a block comment style.
func Block(prefix string, suffix string) Style {
	return Style{Kind: KindBlock, Prefix: prefix, Suffix: suffix}
}

// Default is used for every key missing from the table.
var Default = Line(slashPrefix)

var styleByKey = map[string]Style{
	"rs":     Line(slashPrefix),
	"js":     Line(slashPrefix),
	"jsx":    Line(slashPrefix),
	"mjs":    Line(slashPrefix),
	"cjs":    Line(slashPrefix),
	"ts":     Line(slashPrefix),
	"tsx":    Line(slashPrefix),
	"c":      Line(slashPrefix),
	"h":      Line(slashPrefix),
	"cc":     Line(slashPrefix),
	"cxx":    Line(slashPrefix),
	"cpp":    Line(slashPrefix),
	"hh":     Line(slashPrefix),
	"hpp":    Line(slashPrefix),
	"m":      Line(slashPrefix),
	"java":   Line(slashPrefix),
	"cs":     Line(slashPrefix),
	"go":     Line(slashPrefix),
	"swift":  Line(slashPrefix),
	"kt":     Line(slashPrefix),
	"kts":    Line(slashPrefix),
	"scala":  Line(slashPrefix),
	"dart":   Line(slashPrefix),
	"groovy": Line(slashPrefix),
	"proto":  Line(slashPrefix),
	"zig":    Line(slashPrefix),

	"py":         Line(hashPrefix),
	"sh":         Line(hashPrefix),
	"bash":       Line(hashPrefix),
	"zsh":        Line(hashPrefix),
	"fish":       Line(hashPrefix),
	"yaml":       Line(hashPrefix),
	"yml":        Line(hashPrefix),
	"toml":       Line(hashPrefix),
	"ini":        Line(hashPrefix),
	"conf":       Line(hashPrefix),
	"cfg":        Line(hashPrefix),
	"rb":         Line(hashPrefix),
	"pl":         Line(hashPrefix),
	"r":          Line(hashPrefix),
	"php":        Line(hashPrefix),
	"ps1":        Line(hashPrefix),
	"tf":         Line(hashPrefix),
	"hcl":        Line(hashPrefix),
	"nix":        Line(hashPrefix),
	"ex":         Line(hashPrefix),
	"exs":        Line(hashPrefix),
	"jl":         Line(hashPrefix),
	"cmake":      Line(hashPrefix),
	"mk":         Line(hashPrefix),
	"makefile":   Line(hashPrefix),
	"dockerfile": Line(hashPrefix),

	"html":     Block(markupBlockPrefix, markupBlockSuffix),
	"htm":      Block(markupBlockPrefix, markupBlockSuffix),
	"xml":      Block(markupBlockPrefix, markupBlockSuffix),
	"xhtml":    Block(markupBlockPrefix, markupBlockSuffix),
	"svg":      Block(markupBlockPrefix, markupBlockSuffix),
	"vue":      Block(markupBlockPrefix, markupBlockSuffix),
	"md":       Block(markupBlockPrefix, markupBlockSuffix),
	"markdown": Block(markupBlockPrefix, markupBlockSuffix),

	"css":  Block(styleBlockPrefix, styleBlockSuffix),
	"scss": Block(styleBlockPrefix, styleBlockSuffix),
	"sass": Block(styleBlockPrefix, styleBlockSuffix),
	"less": Block(styleBlockPrefix, styleBlockSuffix),
}

// Resolve returns the comment style for a lowercase extension or file name.
// Unknown keys fall back to Default.
func Resolve(key string) Style {
	if style, known := styleByKey[key]; known {
		return style
	}
	return Default
}

// Header renders the path header for relativePath without a trailing newline.
// Block styles put the suffix on a second line.
func (style Style) Header(relativePath string) string {
	if style.Kind == KindBlock {
		return style.Prefix + " " + relativePath + "\n" + style.Suffix
	}
	return style.Prefix + " " + relativePath
}
