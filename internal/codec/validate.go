package codec

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed scene.schema.json
var sceneSchemaJSON string

var sceneSchema = jsonschema.MustCompileString("scene.schema.json", sceneSchemaJSON)

// Validate checks raw against the strict scene schema (compact keys only,
// normalized color range). The interactive import path stays tolerant of
// legacy aliases; Validate is for the remote transport and for verifying that
// exported documents conform to the published format.
func Validate(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("scene validate: %w", err)
	}
	if err := sceneSchema.Validate(doc); err != nil {
		return fmt.Errorf("scene validate: %w", err)
	}
	return nil
}
