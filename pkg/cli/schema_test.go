package cli

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transcribeSchema = `
- name: output
  type: string
  short: o
  usage: Write .txt files to directory
- name: translate
  type: boolean
  short: t
- name: model
  type: enum
  values: [tiny, base, large]
  required: true
- name: threads
  type: number
`

func TestLoadSchema(t *testing.T) {
	options, err := LoadSchema([]byte(transcribeSchema))
	require.NoError(t, err)

	assert.Equal(t, []Option{
		{Name: "output", Kind: String, Short: "o", Usage: "Write .txt files to directory"},
		{Name: "translate", Kind: Boolean, Short: "t"},
		{Name: "model", Kind: Enum, Values: []string{"tiny", "base", "large"}, Required: true},
		{Name: "threads", Kind: Number},
	}, options)

	parser, err := New(Config{Options: options})
	require.NoError(t, err)

	result, err := parser.Parse([]string{"--model", "base", "-t", "--threads=4"})
	require.NoError(t, err)
	model, _ := result.Values.Enum("model")
	assert.Equal(t, "base", model)
	threads, _ := result.Values.Int("threads")
	assert.Equal(t, 4, threads)
}

func TestLoadSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", "", "schema is empty"},
		{"unknown type", "- name: x\n  type: float\n", `unknown option type "float"`},
		{"unknown key", "- name: x\n  kind: string\n", "field kind not found"},
		{"not a list", "name: x\n", "failed to parse schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSchema([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadSchemaFS(t *testing.T) {
	fsys := fstest.MapFS{
		"options.yaml": &fstest.MapFile{Data: []byte(transcribeSchema)},
	}

	options, err := LoadSchemaFS(fsys, "options.yaml")
	require.NoError(t, err)
	assert.Len(t, options, 4)

	_, err = LoadSchemaFS(fsys, "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema missing.yaml")
}
