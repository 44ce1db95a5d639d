// Package types defines every cross‑package data structure used by the codecollector CLI.
package types

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// WalkEntry is a filesystem entry yielded by traversal before any filtering decision.
type WalkEntry struct {
	AbsolutePath string
	RelativePath string
	Name         string
	IsDir        bool
}

// IncludedFile is a file that passed every filter and was read as text.
type IncludedFile struct {
	RelativePath string
	SizeBytes    int64
}

// Collection is the outcome of one scan: the aggregate buffer and the files it contains
// in traversal order.
type Collection struct {
	Root    string
	Buffer  string
	Files   []IncludedFile
	Skipped int
}

// RelativePaths returns the relative paths of the included files in traversal order.
func (collection Collection) RelativePaths() []string {
	paths := make([]string, 0, len(collection.Files))
	for _, file := range collection.Files {
		paths = append(paths, file.RelativePath)
	}
	return paths
}

// TotalBytes returns the combined size of all included files.
func (collection Collection) TotalBytes() int64 {
	var total int64
	for _, file := range collection.Files {
		total += file.SizeBytes
	}
	return total
}
