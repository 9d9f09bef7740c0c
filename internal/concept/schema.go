package concept

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes a well-formed concept document as authored in the
// content repository. The read path never rejects documents; this schema only
// gates authoring tools (validate, seed).
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["gradeLevel", "sequenceOrder", "topic", "localizedContent"],
  "properties": {
    "gradeLevel": {"type": "integer", "minimum": 1},
    "sequenceOrder": {"type": "integer", "minimum": 0},
    "topic": {"type": "string", "minLength": 1},
    "estimatedTimeMinutes": {"type": "integer", "minimum": 0},
    "difficulty": {"type": "string"},
    "prerequisites": {"type": "array", "items": {"type": "string"}},
    "localizedContent": {
      "type": "object",
      "required": ["en"],
      "properties": {
        "en": {"$ref": "#/definitions/localized"},
        "ur": {"$ref": "#/definitions/localized"}
      }
    }
  },
  "definitions": {
    "namedList": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "localized": {
      "type": "object",
      "required": ["title", "content"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "content": {
          "type": "object",
          "properties": {
            "introduction": {"type": "string"},
            "definition": {"type": "string"},
            "examples": {"type": "array", "items": {"type": ["object", "string"]}},
            "example": {"type": "string"},
            "forms": {"$ref": "#/definitions/namedList"},
            "membership_symbols": {"type": "string"},
            "cardinality": {"type": "string"},
            "types_by_size": {"$ref": "#/definitions/namedList"},
            "comparison": {"$ref": "#/definitions/namedList"},
            "universal_set": {"type": "string"},
            "subset_superset": {"type": "string"},
            "proper_improper": {"type": "string"},
            "operations": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["name"],
                "properties": {
                  "name": {"type": "string"},
                  "description": {"type": "string"},
                  "example": {"type": "string"}
                }
              }
            },
            "laws": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["name", "formula"],
                "properties": {
                  "name": {"type": "string"},
                  "formula": {"type": "string"},
                  "in_words": {"type": "string"}
                }
              }
            },
            "properties": {"$ref": "#/definitions/namedList"},
            "formula": {"type": "string"}
          }
        },
        "keySentences": {"type": "array", "items": {"type": "string"}},
        "practiceQuiz": {"type": "array", "items": {"$ref": "#/definitions/quiz"}}
      }
    },
    "quiz": {
      "type": "object",
      "required": ["questionId", "type", "questionText", "correctAnswer", "feedback"],
      "properties": {
        "questionId": {"type": "string", "minLength": 1},
        "type": {"enum": ["multiple_choice", "fill_in_the_blank", "short_answer"]},
        "questionText": {"type": "string", "minLength": 1},
        "options": {"type": "array", "items": {"type": ["string", "number"]}},
        "correctAnswer": {"type": ["string", "number"]},
        "feedback": {"type": "string"}
      },
      "if": {"properties": {"type": {"const": "multiple_choice"}}},
      "then": {"required": ["options"], "properties": {"options": {"minItems": 1}}}
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
})

// ValidateDocument checks a raw concept document against the authoring schema and
// returns one message per violation. An empty result means the document is valid.
func ValidateDocument(fields map[string]any) ([]string, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling concept schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(fields))
	if err != nil {
		return nil, fmt.Errorf("validating concept document: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}
