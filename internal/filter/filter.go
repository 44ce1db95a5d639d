package filter

import (
	"strings"

	"github.com/temirov/codecollector/internal/ignore"
	"github.com/temirov/codecollector/internal/types"
	"github.com/temirov/codecollector/internal/utils"
)

const hiddenPrefix = "."

// Predicate reports whether an entry is admitted.
type Predicate func(entry types.WalkEntry) bool

// And admits an entry only when every predicate admits it.
func And(predicates ...Predicate) Predicate {
	return func(entry types.WalkEntry) bool {
		for _, predicate := range predicates {
			if !predicate(entry) {
				return false
			}
		}
		return true
	}
}

// ExcludedDirectories rejects directories whose basename is in the excluded set.
func ExcludedDirectories(config Config) Predicate {
	return func(entry types.WalkEntry) bool {
		if !entry.IsDir {
			return true
		}
		return !config.excludesDirectory(entry.Name)
	}
}

// Hidden rejects hidden entries unless the configuration includes them. The .git directory is
// governed by IncludeGit alone.
func Hidden(config Config) Predicate {
	return func(entry types.WalkEntry) bool {
		if config.includeHidden {
			return true
		}
		if entry.IsDir && entry.Name == utils.GitDirectoryName && config.includeGit {
			return true
		}
		return !IsHidden(entry)
	}
}

// IsHidden reports whether the entry is hidden by name or, where supported, by file attribute.
func IsHidden(entry types.WalkEntry) bool {
	if strings.HasPrefix(entry.Name, hiddenPrefix) {
		return true
	}
	return hasHiddenAttribute(entry.AbsolutePath)
}

// Ignored rejects entries matched by ignore rules. A nil matcher admits everything.
func Ignored(matcher ignore.Matcher) Predicate {
	return func(entry types.WalkEntry) bool {
		if matcher == nil {
			return true
		}
		return !matcher.Ignored(entry.RelativePath, entry.IsDir)
	}
}

// Extensions admits files whose extension is configured, or recognized by DefaultTypes when
// none are configured. Directories are always admitted.
func Extensions(config Config) Predicate {
	return func(entry types.WalkEntry) bool {
		if entry.IsDir {
			return true
		}
		if len(config.extensions) == 0 {
			return DefaultTypes.Matches(entry.Name)
		}
		extension := Extension(entry.Name)
		return extension != "" && config.allowsExtension(extension)
	}
}

// Policy combines every predicate of a run.
type Policy struct {
	admit Predicate
}

// NewPolicy builds the run policy from the filter configuration and ignore rules.
func NewPolicy(config Config, matcher ignore.Matcher) Policy {
	return Policy{
		admit: And(
			ExcludedDirectories(config),
			Hidden(config),
			Ignored(matcher),
			Extensions(config),
		),
	}
}

// Admit reports whether the entry passes every predicate.
func (policy Policy) Admit(entry types.WalkEntry) bool {
	return policy.admit(entry)
}

// Prune reports whether a directory is rejected and its subtree must not be opened.
func (policy Policy) Prune(entry types.WalkEntry) bool {
	return entry.IsDir && !policy.admit(entry)
}
