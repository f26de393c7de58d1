package judgment

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"
)

//go:embed verdict.schema.json
var verdictSchemaJSON []byte

var verdictSchema = mustCompile(verdictSchemaJSON)

func mustCompile(data []byte) *jsonschema.Schema {
	schema, err := jsonschema.NewCompiler().Compile(data)
	if err != nil {
		panic(fmt.Sprintf("compile verdict schema: %v", err))
	}
	return schema
}

// Validate reports whether result is a verdict object with exactly the keys
// type and reason, a known type and a reason of at most 300 characters.
func Validate(result any) bool {
	data, err := json.Marshal(result)
	if err != nil {
		return false
	}
	return validJSON(data)
}

func validJSON(data []byte) bool {
	return verdictSchema.ValidateJSON(data).IsValid()
}
