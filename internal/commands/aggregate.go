package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/codecollector/internal/commentstyle"
	"github.com/temirov/codecollector/internal/filter"
	"github.com/temirov/codecollector/internal/ignore"
	"github.com/temirov/codecollector/internal/types"
	"github.com/temirov/codecollector/internal/utils"
)

const (
	// WarningBinaryFileFormat reports a file skipped because it is not valid UTF-8 text.
	WarningBinaryFileFormat = "Skipping binary file \"%s\""
	// WarningFileReadFormat reports a file skipped because it could not be read.
	WarningFileReadFormat = "Could not read file \"%s\": %v"

	segmentTerminator = "\n\n"

	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	errorInspectRootFormat  = "inspecting %s: %w"
	errorRootNotDirFormat   = "%s is not a directory"
	errorIgnoreTreeFormat   = "building ignore rules for %s: %w"
)

// Aggregator accumulates included files into one buffer. Each file contributes a header
// comment naming its relative path, its content, and a blank line.
type Aggregator struct {
	buffer  strings.Builder
	files   []types.IncludedFile
	skipped int
	warn    func(string)
}

// NewAggregator returns an empty aggregator reporting skipped files through warn.
func NewAggregator(warn func(string)) *Aggregator {
	if warn == nil {
		warn = func(string) {}
	}
	return &Aggregator{warn: warn}
}

// Add reads one admitted file. Binary or unreadable files are reported and skipped.
func (aggregator *Aggregator) Add(entry types.WalkEntry) {
	fileBytes, readError := os.ReadFile(entry.AbsolutePath)
	if readError != nil {
		aggregator.skipped++
		aggregator.warn(fmt.Sprintf(WarningFileReadFormat, entry.AbsolutePath, readError))
		return
	}
	if utils.IsBinary(fileBytes) {
		aggregator.skipped++
		aggregator.warn(fmt.Sprintf(WarningBinaryFileFormat, entry.AbsolutePath))
		return
	}

	style := commentstyle.Resolve(styleKey(entry.Name))
	aggregator.buffer.WriteString(style.Header(entry.RelativePath))
	aggregator.buffer.WriteByte('\n')
	aggregator.buffer.Write(fileBytes)
	aggregator.buffer.WriteString(segmentTerminator)
	aggregator.files = append(aggregator.files, types.IncludedFile{
		RelativePath: entry.RelativePath,
		SizeBytes:    int64(len(fileBytes)),
	})
}

// Collection returns the aggregated result for root.
func (aggregator *Aggregator) Collection(root string) types.Collection {
	return types.Collection{
		Root:    root,
		Buffer:  aggregator.buffer.String(),
		Files:   append([]types.IncludedFile(nil), aggregator.files...),
		Skipped: aggregator.skipped,
	}
}

// styleKey is the lowercase extension, or the lowercase basename for files without one.
func styleKey(name string) string {
	if extension := filter.Extension(name); extension != "" {
		return strings.ToLower(extension)
	}
	return strings.ToLower(name)
}

// CollectOptions describes one scan.
type CollectOptions struct {
	Root   string
	Filter filter.Config
	Ignore ignore.Options
	Warn   func(string)
}

// Collect walks Root and aggregates every admitted text file.
func Collect(options CollectOptions) (types.Collection, error) {
	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return types.Collection{}, fmt.Errorf(errorAbsolutePathFormat, options.Root, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return types.Collection{}, fmt.Errorf(errorInspectRootFormat, absoluteRoot, statError)
	}
	if !rootInfo.IsDir() {
		return types.Collection{}, fmt.Errorf(errorRootNotDirFormat, absoluteRoot)
	}

	ignoreTree, ignoreError := ignore.NewTree(absoluteRoot, options.Ignore)
	if ignoreError != nil {
		return types.Collection{}, fmt.Errorf(errorIgnoreTreeFormat, absoluteRoot, ignoreError)
	}

	aggregator := NewAggregator(options.Warn)
	walkError := Walk(WalkOptions{
		Root:   absoluteRoot,
		Policy: filter.NewPolicy(options.Filter, ignoreTree),
		Ignore: ignoreTree,
		Warn:   options.Warn,
	}, func(entry types.WalkEntry) error {
		aggregator.Add(entry)
		return nil
	})
	if walkError != nil {
		return types.Collection{}, walkError
	}
	return aggregator.Collection(absoluteRoot), nil
}
