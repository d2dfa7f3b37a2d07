// Package tree walks a directory depth-first and reports every visible entry
// together with the box-drawing prefix that places it in the rendered tree.
package tree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	// errorReadDirectoryFormat is used when a directory cannot be listed.
	errorReadDirectoryFormat = "reading directory %s: %w"

	skippedEntryMessage = "skipping entry that is neither a directory nor a regular file"
	brokenLinkMessage   = "skipping unresolvable symbolic link"
)

var errNilHandler = errors.New("tree handler is nil")

// Walker renders a directory hierarchy into a sequence of entries.
type Walker struct {
	filesystem afero.Fs
	options    Options
	logger     *zap.Logger
}

// NewWalker constructs a Walker over the given filesystem.
// A nil filesystem selects the operating system, a nil logger discards messages.
func NewWalker(filesystem afero.Fs, options Options, logger *zap.Logger) *Walker {
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{filesystem: filesystem, options: options, logger: logger}
}

// Walk visits root at depth 0 with an empty prefix and passes each visible entry to handler.
// The first listing error stops the walk; no entries after it are delivered.
func (walker *Walker) Walk(root string, handler Handler) error {
	if handler == nil {
		return errNilHandler
	}
	if validationError := walker.options.Validate(); validationError != nil {
		return validationError
	}
	return walker.walkDirectory(root, utils.EmptyString, 0, handler)
}

func (walker *Walker) walkDirectory(directory string, prefix string, depth int, handler Handler) error {
	if walker.options.exceedsDepth(depth) {
		return nil
	}

	children, readError := afero.ReadDir(walker.filesystem, directory)
	if readError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, directory, readError)
	}
	sort.Slice(children, func(left, right int) bool {
		return children[left].Name() < children[right].Name()
	})

	for index, child := range children {
		connector, childPrefix := connectorsFor(prefix, index == len(children)-1)
		childPath := filepath.Join(directory, child.Name())

		childInfo, resolved := walker.resolve(childPath, child)
		if !resolved {
			continue
		}

		switch {
		case childInfo.IsDir():
			if !walker.options.FilesOnly {
				directoryEntry := Entry{
					Kind:        types.NodeTypeDirectory,
					Name:        child.Name(),
					Path:        childPath,
					DisplayName: child.Name(),
					Depth:       depth,
					Prefix:      prefix,
					Connector:   connector,
				}
				if handlerError := handler(directoryEntry); handlerError != nil {
					return handlerError
				}
			}
			if walkError := walker.walkDirectory(childPath, childPrefix, depth+1, handler); walkError != nil {
				return walkError
			}
		case childInfo.Mode().IsRegular():
			if walker.options.DirectoriesOnly {
				continue
			}
			if !walker.options.ShowHidden && utils.IsHiddenName(child.Name()) {
				continue
			}
			displayName := child.Name()
			if walker.options.ShowFullPath {
				displayName = childPath
			}
			fileEntry := Entry{
				Kind:        types.NodeTypeFile,
				Name:        child.Name(),
				Path:        childPath,
				DisplayName: displayName,
				SizeBytes:   childInfo.Size(),
				Depth:       depth,
				Prefix:      prefix,
				Connector:   connector,
			}
			if handlerError := handler(fileEntry); handlerError != nil {
				return handlerError
			}
		default:
			walker.logger.Debug(skippedEntryMessage, zap.String("path", childPath), zap.Stringer("mode", childInfo.Mode()))
		}
	}

	return nil
}

// resolve classifies symbolic links by their target. Links that cannot be
// followed are reported as unresolved and skipped by the caller.
func (walker *Walker) resolve(path string, info os.FileInfo) (os.FileInfo, bool) {
	if info.Mode()&os.ModeSymlink == 0 {
		return info, true
	}
	targetInfo, statError := walker.filesystem.Stat(path)
	if statError != nil {
		walker.logger.Debug(brokenLinkMessage, zap.String("path", path), zap.Error(statError))
		return nil, false
	}
	return targetInfo, true
}
