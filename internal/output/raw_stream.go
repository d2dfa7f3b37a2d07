package output

import (
	"bufio"
	"io"

	"github.com/temirov/dirtree/internal/tree"
)

type rawStreamRenderer struct {
	writer        *bufio.Writer
	humanReadable bool
}

// NewRawStreamRenderer renders one box-drawn line per entry.
func NewRawStreamRenderer(stdout io.Writer, humanReadable bool) StreamRenderer {
	return &rawStreamRenderer{
		writer:        bufio.NewWriter(stdout),
		humanReadable: humanReadable,
	}
}

func (renderer *rawStreamRenderer) Handle(entry tree.Entry) error {
	_, writeError := renderer.writer.WriteString(FormatEntryLine(entry, renderer.humanReadable) + "\n")
	return writeError
}

func (renderer *rawStreamRenderer) Flush() error {
	return renderer.writer.Flush()
}

// FormatEntryLine returns the text line for an entry without a trailing newline.
func FormatEntryLine(entry tree.Entry, humanReadable bool) string {
	line := entry.Prefix + entry.Connector + entry.DisplayName
	if entry.IsDirectory() {
		return line + directorySuffix
	}
	return line + formatFileSize(entry.SizeBytes, humanReadable)
}
