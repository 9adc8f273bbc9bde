package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const taskFileSchemaURL = "https://todo.local/schema/todo_data.json"

// taskFileSchema describes the persisted file: an ordered array of task
// records, each with all four fields present.
const taskFileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "priority", "deadline", "completed"],
    "properties": {
      "title":     {"type": "string"},
      "priority":  {"type": "string"},
      "deadline":  {"type": ["string", "null"], "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compileTaskFileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(taskFileSchemaURL, strings.NewReader(taskFileSchema)); err != nil {
		return nil, fmt.Errorf("add task file schema: %w", err)
	}
	return compiler.Compile(taskFileSchemaURL)
})

// validateTaskFile checks raw file contents against the task file schema.
// Decoding errors and schema violations are both returned; the caller wraps
// them as a PersistenceError.
func validateTaskFile(data []byte) error {
	schema, err := compileTaskFileSchema()
	if err != nil {
		return err
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return err
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var problems []string
	collectSchemaProblems(&problems, ve)
	return errors.New(strings.Join(problems, "; "))
}

func collectSchemaProblems(out *[]string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaProblems(out, cause)
	}
}
