package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
)

func TestRawStreamRendererWritesLines(t *testing.T) {
	t.Parallel()

	entries := []tree.Entry{
		{Kind: types.NodeTypeFile, Name: "a.txt", DisplayName: "a.txt", SizeBytes: 10, Connector: tree.ConnectorMiddle},
		{Kind: types.NodeTypeDirectory, Name: "sub", DisplayName: "sub", Connector: tree.ConnectorLast},
		{Kind: types.NodeTypeFile, Name: "c.txt", DisplayName: "c.txt", SizeBytes: 1234, Depth: 1, Prefix: tree.PrefixBlank, Connector: tree.ConnectorLast},
	}

	testCases := []struct {
		name           string
		humanReadable  bool
		expectedOutput string
	}{
		{
			name:           "byte_counts",
			humanReadable:  false,
			expectedOutput: "├── a.txt (10 bytes)\n└── sub/\n    └── c.txt (1234 bytes)\n",
		},
		{
			name:           "human_readable_sizes",
			humanReadable:  true,
			expectedOutput: "├── a.txt (10 B)\n└── sub/\n    └── c.txt (1.2 kB)\n",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var buffer bytes.Buffer
			renderer := output.NewRawStreamRenderer(&buffer, testCase.humanReadable)
			for _, entry := range entries {
				require.NoError(t, renderer.Handle(entry))
			}
			require.NoError(t, renderer.Flush())
			require.Equal(t, testCase.expectedOutput, buffer.String())
		})
	}
}

func TestRawStreamRendererEmptyTree(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	renderer := output.NewRawStreamRenderer(&buffer, false)
	require.NoError(t, renderer.Flush())
	require.Empty(t, buffer.String())
}

func TestFormatEntryLineFullPath(t *testing.T) {
	t.Parallel()

	entry := tree.Entry{
		Kind:        types.NodeTypeFile,
		Name:        "c.txt",
		Path:        "/root/sub/c.txt",
		DisplayName: "/root/sub/c.txt",
		SizeBytes:   3,
		Prefix:      tree.PrefixContinue,
		Connector:   tree.ConnectorMiddle,
	}
	require.Equal(t, "│   ├── /root/sub/c.txt (3 bytes)", output.FormatEntryLine(entry, false))
}
