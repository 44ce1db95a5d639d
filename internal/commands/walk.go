// Package commands implements the traversal and aggregation behind a codecollector run.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/codecollector/internal/filter"
	"github.com/temirov/codecollector/internal/ignore"
	"github.com/temirov/codecollector/internal/types"
)

const (
	// WarningSkipDirectoryFormat reports a nested directory that could not be read.
	WarningSkipDirectoryFormat = "Skipping directory %q: %v"
	// WarningBrokenSymlinkFormat reports a symbolic link whose target cannot be resolved.
	WarningBrokenSymlinkFormat = "Skipping unresolved link %q: %v"

	errorReadRootFormat        = "reading directory %s: %w"
	errorLoadIgnoreRulesFormat = "loading ignore rules in %s: %w"
)

// WalkOptions configures a traversal rooted at an absolute directory.
type WalkOptions struct {
	Root   string
	Policy filter.Policy
	Ignore *ignore.Tree
	Warn   func(string)
}

// Walk visits every admitted file under Root in lexical order. Rejected directories are pruned
// without being opened. The root itself is never filtered. Failure to read the root or to load
// ignore rules stops the walk; an unreadable nested directory is reported and skipped.
func Walk(options WalkOptions, visit func(types.WalkEntry) error) error {
	warn := options.Warn
	if warn == nil {
		warn = func(string) {}
	}
	root := filepath.Clean(options.Root)

	return filepath.WalkDir(root, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if walkedPath == root {
			if accessError != nil {
				return fmt.Errorf(errorReadRootFormat, root, accessError)
			}
			if err := options.Ignore.Enter(".", root); err != nil {
				return fmt.Errorf(errorLoadIgnoreRulesFormat, root, err)
			}
			return nil
		}
		if accessError != nil {
			warn(fmt.Sprintf(WarningSkipDirectoryFormat, walkedPath, accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath, relativeError := filepath.Rel(root, walkedPath)
		if relativeError != nil {
			return relativeError
		}
		entry := types.WalkEntry{
			AbsolutePath: walkedPath,
			RelativePath: relativePath,
			Name:         directoryEntry.Name(),
			IsDir:        directoryEntry.IsDir(),
		}

		if entry.IsDir {
			if options.Policy.Prune(entry) {
				return filepath.SkipDir
			}
			if err := options.Ignore.Enter(relativePath, walkedPath); err != nil {
				if errors.Is(err, fs.ErrPermission) {
					warn(fmt.Sprintf(WarningSkipDirectoryFormat, walkedPath, err))
					return filepath.SkipDir
				}
				return fmt.Errorf(errorLoadIgnoreRulesFormat, walkedPath, err)
			}
			return nil
		}

		if !isRegularFile(directoryEntry, walkedPath, warn) {
			return nil
		}
		if !options.Policy.Admit(entry) {
			return nil
		}
		return visit(entry)
	})
}

// isRegularFile accepts regular files and links that resolve to one.
func isRegularFile(directoryEntry fs.DirEntry, walkedPath string, warn func(string)) bool {
	entryType := directoryEntry.Type()
	if entryType.IsRegular() {
		return true
	}
	if entryType&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(walkedPath)
	if statError != nil {
		warn(fmt.Sprintf(WarningBrokenSymlinkFormat, walkedPath, statError))
		return false
	}
	return targetInfo.Mode().IsRegular()
}
