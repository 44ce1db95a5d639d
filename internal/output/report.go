// Package output prints the human-readable run report to stdout.
package output

import (
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/temirov/codecollector/internal/tokenizer"
	"github.com/temirov/codecollector/internal/types"
)

const (
	processingDirectoryFormat = "Processing directory: %s"
	copiedFilesTreeHeading    = "Copied Files Tree:"
	summaryFormat             = "Collected %d %s (%s)"
	skippedSuffixFormat       = ", skipped %d"
	tokenEstimateFormat       = "Estimated tokens: %d (%s)"
	clipboardConfirmation     = "Code buffer has been copied to the clipboard."

	fileSingular = "file"
	filePlural   = "files"
)

// Report writes the stdout lines of one run. Write failures are retained and surfaced by Err.
type Report struct {
	writer  io.Writer
	heading *color.Color
	success *color.Color
	err     error
}

// NewReport returns a Report writing to writer. Headings are colored only when colorOutput is set;
// tree lines are always written verbatim.
func NewReport(writer io.Writer, colorOutput bool) *Report {
	heading := color.New(color.Bold)
	success := color.New(color.FgGreen)
	if colorOutput {
		heading.EnableColor()
		success.EnableColor()
	} else {
		heading.DisableColor()
		success.DisableColor()
	}
	return &Report{writer: writer, heading: heading, success: success}
}

// ShouldColor reports whether writer is a terminal that should receive colored output.
// NO_COLOR and an explicit disable both turn color off.
func ShouldColor(writer io.Writer, disabled bool) bool {
	if disabled || color.NoColor {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// Processing announces the directory being scanned.
func (report *Report) Processing(directory string) {
	report.println(report.heading.Sprintf(processingDirectoryFormat, directory))
}

// Tree prints the heading followed by the rendered tree lines.
func (report *Report) Tree(lines iter.Seq[string]) {
	report.println(report.heading.Sprint(copiedFilesTreeHeading))
	for line := range lines {
		if report.err != nil {
			return
		}
		report.println(line)
	}
}

// Summary prints the number and total size of the collected files.
func (report *Report) Summary(collection types.Collection) {
	noun := filePlural
	if len(collection.Files) == 1 {
		noun = fileSingular
	}
	line := fmt.Sprintf(summaryFormat, len(collection.Files), noun, formatSize(collection.TotalBytes()))
	if collection.Skipped > 0 {
		line += fmt.Sprintf(skippedSuffixFormat, collection.Skipped)
	}
	report.println(line)
}

// formatSize renders a byte total in binary units, such as "9 B" or "1.5 KiB".
func formatSize(totalBytes int64) string {
	if totalBytes < 0 {
		totalBytes = 0
	}
	return humanize.IBytes(uint64(totalBytes))
}

// Tokens prints the token estimate of the collected buffer.
func (report *Report) Tokens(estimate tokenizer.Estimate) {
	report.println(fmt.Sprintf(tokenEstimateFormat, estimate.Tokens, estimate.Model))
}

// Copied confirms the clipboard handoff.
func (report *Report) Copied() {
	report.println(report.success.Sprint(clipboardConfirmation))
}

// Err returns the first write failure, if any.
func (report *Report) Err() error {
	return report.err
}

func (report *Report) println(line string) {
	if report.err != nil {
		return
	}
	_, report.err = fmt.Fprintln(report.writer, line)
}
