package output

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const (
	directorySuffix   = "/"
	byteSizeFormat    = " (%d bytes)"
	humanSizeFormat   = " (%s)"
	minimumSizeBytes  = 0
)

// formatFileSize renders the parenthesized size suffix of a file line.
func formatFileSize(sizeBytes int64, humanReadable bool) string {
	if !humanReadable {
		return fmt.Sprintf(byteSizeFormat, sizeBytes)
	}
	if sizeBytes < 0 {
		sizeBytes = minimumSizeBytes
	}
	return fmt.Sprintf(humanSizeFormat, humanize.Bytes(uint64(sizeBytes)))
}
