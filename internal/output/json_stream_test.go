package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/types"
)

func TestJSONStreamRendererCollectsEntries(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	renderer := output.NewJSONStreamRenderer(&buffer)
	require.NoError(t, renderer.Handle(tree.Entry{Kind: types.NodeTypeDirectory, Name: "sub", Path: "/root/sub"}))
	require.NoError(t, renderer.Handle(tree.Entry{Kind: types.NodeTypeFile, Name: "empty.txt", Path: "/root/sub/empty.txt", Depth: 1}))
	require.NoError(t, renderer.Flush())

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	require.Equal(t, "directory", decoded[0]["type"])
	require.Equal(t, "/root/sub", decoded[0]["path"])
	require.NotContains(t, decoded[0], "sizeBytes")

	require.Equal(t, "file", decoded[1]["type"])
	require.Equal(t, float64(1), decoded[1]["depth"])
	require.Equal(t, float64(0), decoded[1]["sizeBytes"])
}

func TestJSONStreamRendererEmptyArray(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	renderer := output.NewJSONStreamRenderer(&buffer)
	require.NoError(t, renderer.Flush())
	require.Equal(t, "[]\n", buffer.String())
}

func TestNewStreamRendererSelectsFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		format      string
		expectError bool
	}{
		{name: "raw", format: "raw"},
		{name: "json_uppercase", format: "JSON"},
		{name: "empty_defaults_to_raw", format: ""},
		{name: "xml_unsupported", format: "xml", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			renderer, rendererError := output.NewStreamRenderer(&bytes.Buffer{}, output.RendererOptions{Format: testCase.format})
			if testCase.expectError {
				require.Error(t, rendererError)
				require.False(t, output.IsSupportedFormat(testCase.format))
				return
			}
			require.NoError(t, rendererError)
			require.NotNil(t, renderer)
		})
	}
}
