package fs

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://specvital.dev/schemas/report/"

type schemas struct {
	result     *jsonschema.Schema
	container  *jsonschema.Schema
	categories *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	names := []string{"result.schema.json", "container.schema.json", "categories.schema.json"}
	for _, name := range names {
		raw, err := schemaFS.ReadFile("schema/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(schemaBaseURL+name, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("add schema resource %s: %w", name, err)
		}
	}

	compiled := make([]*jsonschema.Schema, len(names))
	for i, name := range names {
		s, err := compiler.Compile(schemaBaseURL + name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		compiled[i] = s
	}

	return &schemas{result: compiled[0], container: compiled[1], categories: compiled[2]}, nil
}

func validateAgainstSchema(schema *jsonschema.Schema, raw []byte) error {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	return schema.Validate(payload)
}
