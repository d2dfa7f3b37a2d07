// Package types defines every cross‑package data structure used by the dirtree CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
)

// ValidatedPath is an absolute root path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// EntryOutput is one visible tree entry in structured output.
type EntryOutput struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Depth     int    `json:"depth"`
	SizeBytes *int64 `json:"sizeBytes,omitempty"`
}
