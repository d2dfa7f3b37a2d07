package tree

import "errors"

// ErrConflictingFilters reports that directories-only and files-only were both requested.
var ErrConflictingFilters = errors.New("directories-only and files-only are mutually exclusive")

// Options controls which entries a Walker reports and how deep it descends.
type Options struct {
	ShowHidden      bool
	DirectoriesOnly bool
	FilesOnly       bool
	ShowFullPath    bool
	// MaxDepth is nil for an unbounded walk. The root directory is depth 0.
	MaxDepth *int
}

// Validate rejects option combinations that cannot be rendered.
func (options Options) Validate() error {
	if options.DirectoriesOnly && options.FilesOnly {
		return ErrConflictingFilters
	}
	return nil
}

// exceedsDepth reports whether a directory at the given depth must not be listed.
func (options Options) exceedsDepth(depth int) bool {
	return options.MaxDepth != nil && depth > *options.MaxDepth
}
