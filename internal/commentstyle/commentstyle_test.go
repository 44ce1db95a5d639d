package commentstyle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codecollector/internal/commentstyle"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name     string
		key      string
		expected commentstyle.Style
	}{
		{name: "go", key: "go", expected: commentstyle.Line("//")},
		{name: "rust", key: "rs", expected: commentstyle.Line("//")},
		{name: "kotlin script", key: "kts", expected: commentstyle.Line("//")},
		{name: "python", key: "py", expected: commentstyle.Line("#")},
		{name: "yaml", key: "yml", expected: commentstyle.Line("#")},
		{name: "makefile name", key: "makefile", expected: commentstyle.Line("#")},
		{name: "html", key: "html", expected: commentstyle.Block("<!--", "-->")},
		{name: "xhtml", key: "xhtml", expected: commentstyle.Block("<!--", "-->")},
		{name: "css", key: "css", expected: commentstyle.Block("/*", "*/")},
		{name: "unknown", key: "txt", expected: commentstyle.Line("//")},
		{name: "empty", key: "", expected: commentstyle.Line("//")},
		{name: "case sensitive", key: "PY", expected: commentstyle.Line("//")},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, commentstyle.Resolve(testCase.key))
		})
	}
}

func TestHeader(t *testing.T) {
	require.Equal(t, "# sub/c.py", commentstyle.Resolve("py").Header("sub/c.py"))
	require.Equal(t, "// main.go", commentstyle.Resolve("go").Header("main.go"))
	require.Equal(t, "<!-- web/index.html\n-->", commentstyle.Resolve("html").Header("web/index.html"))
	require.Equal(t, "/* site.css\n*/", commentstyle.Resolve("css").Header("site.css"))
}
