package jsonschema

import (
	"testing"

	"github.com/acronis/go-stacktrace"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string", "minLength": 1}
	}
}`

func Test_ValidateBytes(t *testing.T) {
	type testcase struct {
		data  string
		valid bool
	}

	testcases := map[string]testcase{
		"valid document":    {data: `{"name": "scoop"}`, valid: true},
		"missing field":     {data: `{}`, valid: false},
		"wrong type":        {data: `{"name": 1}`, valid: false},
		"empty string":      {data: `{"name": ""}`, valid: false},
		"extra fields pass": {data: `{"name": "scoop", "other": true}`, valid: true},
	}

	s := MustCompileSchema(testSchema)
	for tcName, tc := range testcases {
		t.Run(tcName, func(t *testing.T) {
			err := ValidateBytes(s, []byte(tc.data))
			if tc.valid {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			_, ok := err.(*stacktrace.StackTrace)
			require.True(t, ok, "expected stacktrace, got %T", err)
		})
	}
}

func Test_ValidateBytesMalformedJSON(t *testing.T) {
	err := ValidateBytes(MustCompileSchema(testSchema), []byte(`{"name":`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema validate")
}

func Test_MustCompileSchemaPanics(t *testing.T) {
	require.Panics(t, func() {
		MustCompileSchema(`{"type": `)
	})
}
