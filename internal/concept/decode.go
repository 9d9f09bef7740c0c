package concept

import (
	"encoding/json"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Decode converts a raw store document into a Concept. It never fails: fields of
// the wrong shape are dropped, so downstream code only sees typed values.
// The store key id always wins over any conceptId stored inside the document.
func Decode(id string, fields map[string]any) Concept {
	c := Concept{
		ConceptID:        id,
		GradeLevel:       intField(fields, "gradeLevel"),
		SequenceOrder:    intField(fields, "sequenceOrder"),
		Topic:            stringField(fields, "topic"),
		Difficulty:       stringField(fields, "difficulty"),
		Prerequisites:    stringSlice(fields["prerequisites"]),
		LocalizedContent: make(map[Language]LocalizedContent),
	}

	if v, ok := toInt(fields["estimatedTimeMinutes"]); ok && v >= 0 {
		c.EstimatedTimeMinutes = &v
	}

	if raw, ok := fields["localizedContent"].(map[string]any); ok {
		// An exact code beats a variant such as "EN" or " ur"; among variants
		// the first in sorted key order wins.
		exact := make(map[Language]bool)
		for _, code := range slices.Sorted(maps.Keys(raw)) {
			lang := Language(strings.ToLower(strings.TrimSpace(code)))
			if !lang.Supported() || exact[lang] {
				continue
			}
			m, ok := raw[code].(map[string]any)
			if !ok {
				continue
			}
			if _, seen := c.LocalizedContent[lang]; seen && code != string(lang) {
				continue
			}
			c.LocalizedContent[lang] = decodeLocalized(m)
			exact[lang] = code == string(lang)
		}
	}

	return c
}

func decodeLocalized(m map[string]any) LocalizedContent {
	lc := LocalizedContent{
		Title:        stringField(m, "title"),
		KeySentences: stringSlice(m["keySentences"]),
	}
	if content, ok := m["content"].(map[string]any); ok {
		lc.Content = decodeContent(content)
	}
	for _, item := range objects(m["practiceQuiz"]) {
		lc.PracticeQuiz = append(lc.PracticeQuiz, PracticeQuiz{
			QuestionID:    stringField(item, "questionId"),
			Type:          QuizType(stringField(item, "type")),
			QuestionText:  stringField(item, "questionText"),
			Options:       stringSlice(item["options"]),
			CorrectAnswer: stringField(item, "correctAnswer"),
			Feedback:      stringField(item, "feedback"),
		})
	}
	return lc
}

func decodeContent(m map[string]any) Content {
	c := Content{
		Introduction:      stringField(m, "introduction"),
		Definition:        stringField(m, "definition"),
		Example:           stringField(m, "example"),
		MembershipSymbols: stringField(m, "membership_symbols"),
		Cardinality:       stringField(m, "cardinality"),
		UniversalSet:      stringField(m, "universal_set"),
		SubsetSuperset:    stringField(m, "subset_superset"),
		ProperImproper:    stringField(m, "proper_improper"),
		Formula:           stringField(m, "formula"),
		Forms:             namedItems(m["forms"]),
		TypesBySize:       namedItems(m["types_by_size"]),
		Comparison:        namedItems(m["comparison"]),
		Properties:        namedItems(m["properties"]),
	}

	if raw, ok := m["examples"].([]any); ok {
		c.Examples = make([]Example, 0, len(raw))
		for _, item := range raw {
			switch v := item.(type) {
			case string:
				if v != "" {
					c.Examples = append(c.Examples, Example{Example: v})
				}
			case map[string]any:
				c.Examples = append(c.Examples, Example{
					Rule:        stringField(v, "rule"),
					Type:        stringField(v, "type"),
					Name:        stringField(v, "name"),
					Example:     stringField(v, "example"),
					Description: stringField(v, "description"),
					IsSet:       stringField(v, "example_is_set"),
					IsNotSet:    stringField(v, "example_is_not_set"),
				})
			}
		}
	}

	for _, item := range objects(m["operations"]) {
		c.Operations = append(c.Operations, Operation{
			Name:        stringField(item, "name"),
			Description: stringField(item, "description"),
			Example:     stringField(item, "example"),
		})
	}
	for _, item := range objects(m["laws"]) {
		c.Laws = append(c.Laws, Law{
			Name:    stringField(item, "name"),
			Formula: stringField(item, "formula"),
			InWords: stringField(item, "in_words"),
		})
	}

	return c
}

func namedItems(v any) []NamedItem {
	var items []NamedItem
	for _, item := range objects(v) {
		items = append(items, NamedItem{
			Name:        stringField(item, "name"),
			Description: stringField(item, "description"),
		})
	}
	return items
}

// objects returns the map elements of a list, skipping anything else.
func objects(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func stringField(m map[string]any, key string) string {
	s, _ := scalarString(m[key])
	return s
}

// stringSlice keeps the scalar elements of a list as strings, so quiz options
// written as bare numbers in YAML still compare against a quoted answer.
func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := scalarString(item); ok {
			out = append(out, s)
		}
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		return n, true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case json.Number:
		return n.String(), true
	case bool:
		return strconv.FormatBool(n), true
	default:
		return "", false
	}
}

func intField(m map[string]any, key string) int {
	n, _ := toInt(m[key])
	return n
}

// toInt accepts the numeric shapes produced by encoding/json, yaml.v3 and
// hand-edited documents that quote their numbers.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
