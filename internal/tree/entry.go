package tree

import "github.com/temirov/dirtree/internal/types"

const (
	// ConnectorMiddle precedes every entry that has a following sibling.
	ConnectorMiddle = "├── "
	// ConnectorLast precedes the final entry of a directory.
	ConnectorLast = "└── "
	// PrefixContinue extends the prefix beneath a non-final entry.
	PrefixContinue = "│   "
	// PrefixBlank extends the prefix beneath a final entry.
	PrefixBlank = "    "
)

// Entry is one visible line of the tree, delivered in pre-order.
type Entry struct {
	Kind        string
	Name        string
	Path        string
	DisplayName string
	SizeBytes   int64
	Depth       int
	Prefix      string
	Connector   string
}

// IsDirectory reports whether the entry describes a directory.
func (entry Entry) IsDirectory() bool {
	return entry.Kind == types.NodeTypeDirectory
}

// Handler consumes entries as the walk produces them. A non-nil error aborts the walk.
type Handler func(Entry) error

// connectorsFor returns the connector for an entry and the prefix its children inherit.
func connectorsFor(prefix string, isLast bool) (string, string) {
	if isLast {
		return ConnectorLast, prefix + PrefixBlank
	}
	return ConnectorMiddle, prefix + PrefixContinue
}
