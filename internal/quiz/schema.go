package quiz

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const createQuizSchemaJSON = `{
	"type": "object",
	"required": ["question", "choices", "correct_answer", "topic_id"],
	"properties": {
		"question": {"type": "string", "minLength": 1},
		"choices": {
			"type": "array",
			"minItems": 2,
			"maxItems": 4,
			"items": {"type": "string", "minLength": 1}
		},
		"correct_answer": {"type": "string", "minLength": 1},
		"topic_id": {"type": "integer", "minimum": 1}
	}
}`

var createQuizSchema = mustSchema(createQuizSchemaJSON)

func mustSchema(def string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(def))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return s
}

// validateCreateQuizBody checks the raw request body before it is decoded.
func validateCreateQuizBody(body []byte) error {
	res, err := createQuizSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: invalid request body", ErrInvalidInput)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}
