package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
)

func TestOutputCmd_Stream(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "output", testPath, "2", "1")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestOutputCmd_AddsTrailingNewline(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "output", testPath, "2", "2")
	require.NoError(t, err)
	assert.Equal(t, "   a\n0  1\n", out)
}

func TestOutputCmd_Hint(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "output", testPath, "2", "2", "--hint", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestOutputCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "output", testPath, "3", "1", "--json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.MIMEJSON, got["mime_type"])
	assert.Equal(t, "error", got["output_type"])
	assert.Contains(t, got["full_output_data"], "ZeroDivisionError")
}

func TestOutputCmd_JSONStreamName(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "output", testPath, "2", "1", "--json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "stdout", got["stream_name"])
	assert.Equal(t, "stream", got["output_type"])
	assert.Equal(t, "hello\n", got["full_output_data"])
}

func TestOutputCmd_PassesHint(t *testing.T) {
	defer saveServices()()
	stub := &stubOutputService{full: &domain.FullOutput{Data: "x", MIMEType: domain.MIMETextPlain}}
	SetServices(&Services{Outputs: stub})

	_, err := execute(t, "", "output", "nb.ipynb", "1", "1", "--hint", "image")
	require.NoError(t, err)
	assert.Equal(t, domain.TypeHintImage, stub.hint)
	assert.Equal(t, "nb.ipynb", stub.path)
}

func TestOutputCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"cell not a number", []string{"output", testPath, "two", "1"}, `cell index "two" is not an integer`},
		{"output not a number", []string{"output", testPath, "2", "x"}, `output index "x" is not an integer`},
		{"bad hint", []string{"output", testPath, "2", "1", "--hint", "audio"}, `type hint "audio"`},
		{"cell out of range", []string{"output", testPath, "9", "1"}, "out of range"},
		{"output out of range", []string{"output", testPath, "2", "5"}, "out of range"},
		{"markdown cell", []string{"output", testPath, "1", "1"}, "markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOutputCmd_ServiceNotConfigured(t *testing.T) {
	defer saveServices()()
	SetServices(&Services{})

	_, err := execute(t, "", "output", testPath, "1", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output service not configured")
}
