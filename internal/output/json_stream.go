package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
)

const jsonIndent = "  "

type jsonStreamRenderer struct {
	stdout  io.Writer
	entries []types.EntryOutput
}

// NewJSONStreamRenderer collects entries and writes them as one indented JSON array.
func NewJSONStreamRenderer(stdout io.Writer) StreamRenderer {
	return &jsonStreamRenderer{stdout: stdout, entries: []types.EntryOutput{}}
}

func (renderer *jsonStreamRenderer) Handle(entry tree.Entry) error {
	record := types.EntryOutput{
		Path:  entry.Path,
		Name:  entry.Name,
		Type:  entry.Kind,
		Depth: entry.Depth,
	}
	if !entry.IsDirectory() {
		sizeBytes := entry.SizeBytes
		record.SizeBytes = &sizeBytes
	}
	renderer.entries = append(renderer.entries, record)
	return nil
}

func (renderer *jsonStreamRenderer) Flush() error {
	encoded, marshalError := json.MarshalIndent(renderer.entries, "", jsonIndent)
	if marshalError != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", marshalError)
	}
	if _, writeError := fmt.Fprintln(renderer.stdout, string(encoded)); writeError != nil {
		return writeError
	}
	return nil
}
