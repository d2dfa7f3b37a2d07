// Package output renders walked tree entries in the supported formats.
package output

import (
	"fmt"
	"io"

	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

// invalidFormatMessage reports an output format that has no renderer.
const invalidFormatMessage = "invalid format value '%s'"

// StreamRenderer consumes entries in traversal order and writes them out on Flush.
type StreamRenderer interface {
	Handle(entry tree.Entry) error
	Flush() error
}

// RendererOptions selects the renderer and its presentation details.
type RendererOptions struct {
	Format        string
	HumanReadable bool
}

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch utils.NormalizeFormat(format) {
	case types.FormatRaw, types.FormatJSON:
		return true
	default:
		return false
	}
}

// NewStreamRenderer returns the renderer for options.Format writing to stdout.
func NewStreamRenderer(stdout io.Writer, options RendererOptions) (StreamRenderer, error) {
	switch utils.NormalizeFormat(options.Format) {
	case types.FormatRaw, utils.EmptyString:
		return NewRawStreamRenderer(stdout, options.HumanReadable), nil
	case types.FormatJSON:
		return NewJSONStreamRenderer(stdout), nil
	default:
		return nil, fmt.Errorf(invalidFormatMessage, options.Format)
	}
}
