package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func createToggleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "kept.py"), "a")
	writeTestFile(t, filepath.Join(root, ".hidden.py"), "b")
	writeTestFile(t, filepath.Join(root, ".git", "hook.py"), "c")
	writeTestFile(t, filepath.Join(root, ".gitignore"), "ignored.py\n")
	writeTestFile(t, filepath.Join(root, "ignored.py"), "d")
	return root
}

func TestRootCommandToggleSpellings(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		included  []string
		excluded  []string
	}{
		{
			name:      "hidden_no_keeps_hidden_files_out",
			arguments: []string{"--hidden", "no"},
			included:  []string{"# kept.py"},
			excluded:  []string{".hidden.py", "hook.py"},
		},
		{
			name:      "hidden_yes_collects_hidden_files",
			arguments: []string{"--hidden", "yes"},
			included:  []string{"# kept.py", "# .hidden.py"},
			excluded:  []string{"hook.py", "ignored.py"},
		},
		{
			name:      "git_yes_collects_repository_directory",
			arguments: []string{"--git", "yes"},
			included:  []string{"# kept.py", "# " + filepath.Join(".git", "hook.py")},
			excluded:  []string{".hidden.py"},
		},
		{
			name:      "no_gitignore_off_keeps_gitignore",
			arguments: []string{"--no-gitignore=off"},
			included:  []string{"# kept.py"},
			excluded:  []string{"ignored.py"},
		},
		{
			name:      "no_gitignore_on_drops_gitignore",
			arguments: []string{"--no-gitignore", "ON"},
			included:  []string{"# kept.py", "# ignored.py"},
		},
		{
			name:      "bare_switch_enables",
			arguments: []string{"--no-gitignore"},
			included:  []string{"# ignored.py"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			harness := newHarness(t)
			root := createToggleTree(t)

			arguments := append([]string{root, "-e", "py"}, testCase.arguments...)
			if err := harness.run(arguments...); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			buffer := harness.copier.copied[0]
			for _, expected := range testCase.included {
				if !strings.Contains(buffer, expected) {
					t.Fatalf("expected %q in buffer %q", expected, buffer)
				}
			}
			for _, unexpected := range testCase.excluded {
				if strings.Contains(buffer, unexpected) {
					t.Fatalf("unexpected %q in buffer %q", unexpected, buffer)
				}
			}
		})
	}
}

func TestRootCommandRejectsUnknownToggleValue(t *testing.T) {
	harness := newHarness(t)
	root := createToggleTree(t)

	err := harness.run(root, "--summary=maybe")
	if err == nil {
		t.Fatalf("expected error for unknown toggle value")
	}
	for _, expected := range []string{`invalid value "maybe" for --summary`, "0, 1, false, no, off, on, true, yes"} {
		if !strings.Contains(err.Error(), expected) {
			t.Fatalf("expected %q in %q", expected, err.Error())
		}
	}
	if len(harness.copier.copied) != 0 {
		t.Fatalf("nothing must be copied on a flag error")
	}
}

func TestRootCommandToggleLeavesOtherWordsPositional(t *testing.T) {
	harness := newHarness(t)
	root := createToggleTree(t)

	err := harness.run(root, "--hidden", "maybe")
	if err == nil || !strings.Contains(err.Error(), "received 2") {
		t.Fatalf("expected the trailing word to count as a second directory, got %v", err)
	}
}

func TestInitCommandAcceptsToggleSpellings(t *testing.T) {
	harness := newHarness(t)
	configurationPath := filepath.Join(harness.workDir, ".codecollector.yaml")
	writeTestFile(t, configurationPath, "summary: true\n")

	if err := harness.run("init", "--force", "no"); err == nil {
		t.Fatalf("expected refusal to overwrite without --force")
	}
	if err := harness.run("init", "--force", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
