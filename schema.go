package transproc

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ASTSchema is the JSON Schema every AST document must satisfy. A document
// is a non-empty list of nodes; a node is a bare name or an array holding an
// identifier and an optional list of arguments.
const ASTSchema = `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "title": "transproc AST",
  "type": "array",
  "minItems": 1,
  "items": {
    "oneOf": [
      {"type": "string", "minLength": 1},
      {
        "type": "array",
        "minItems": 1,
        "maxItems": 2,
        "items": [
          {
            "oneOf": [
              {"type": "string", "minLength": 1},
              {
                "type": "object",
                "required": ["ref"],
                "properties": {"ref": {"type": "string"}},
                "additionalProperties": false
              }
            ]
          },
          {"type": "array"}
        ]
      }
    ]
  }
}`

var astSchemaLoader = gojsonschema.NewStringLoader(ASTSchema)

// Validate checks a decoded document against ASTSchema. The violations are
// joined into a single error wrapping ErrInvalidAST.
func Validate(doc any) error {
	result, err := gojsonschema.Validate(astSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAST, err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidAST, strings.Join(violations, "; "))
}
