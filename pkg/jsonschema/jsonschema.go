package jsonschema

import (
	"fmt"

	"github.com/acronis/go-stacktrace"
	"github.com/xeipuuv/gojsonschema"
)

// MustCompileSchema compiles a JSON schema document and panics if it is malformed.
// It is meant for schemas embedded in the binary.
func MustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchemaLoader().Compile(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Errorf("compile schema: %w", err))
	}
	return s
}

// ValidatorMessagesAsStackTrace folds schema violations into a single trace,
// one appended entry per violation with its JSON context.
func ValidatorMessagesAsStackTrace(errResults []gojsonschema.ResultError) *stacktrace.StackTrace {
	st := stacktrace.New("validation failed", stacktrace.WithType("validation"))
	for i := range errResults {
		errResult := errResults[i]
		_ = st.Append(stacktrace.New(errResult.Description(), stacktrace.WithInfo("context", errResult.Context().String("."))))
	}
	return st
}

// ValidateBytes validates a raw JSON document against s.
func ValidateBytes(s *gojsonschema.Schema, data []byte) error {
	return ValidateWrapper(s, gojsonschema.NewBytesLoader(data))
}

// ValidateWrapper is used by public validation methods to validate the data
func ValidateWrapper(s *gojsonschema.Schema, loader gojsonschema.JSONLoader) error {
	res, err := s.Validate(loader)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if !res.Valid() {
		return ValidatorMessagesAsStackTrace(res.Errors())
	}
	return nil
}
