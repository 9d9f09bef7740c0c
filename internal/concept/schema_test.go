package concept_test

import (
	"strings"
	"testing"

	"github.com/p-n-ai/taleem/internal/concept"
)

func validDocument() map[string]any {
	return map[string]any{
		"gradeLevel":    7,
		"sequenceOrder": 1,
		"topic":         "Sets",
		"localizedContent": map[string]any{
			"en": map[string]any{
				"title":   "Introduction to Sets",
				"content": map[string]any{"introduction": "A set is a collection."},
				"practiceQuiz": []any{
					map[string]any{
						"questionId":    "q1",
						"type":          "multiple_choice",
						"questionText":  "Which is a set?",
						"options":       []any{"{1,2}", "1,2"},
						"correctAnswer": "{1,2}",
						"feedback":      "Braces denote a set.",
					},
				},
			},
		},
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantErr string
	}{
		{"valid", func(map[string]any) {}, ""},
		{"missing topic", func(d map[string]any) { delete(d, "topic") }, "topic"},
		{"missing english", func(d map[string]any) {
			d["localizedContent"] = map[string]any{"ur": map[string]any{"title": "T", "content": map[string]any{}}}
		}, "en"},
		{"grade below one", func(d map[string]any) { d["gradeLevel"] = 0 }, "gradeLevel"},
		{"choice without options", func(d map[string]any) {
			en := d["localizedContent"].(map[string]any)["en"].(map[string]any)
			q := en["practiceQuiz"].([]any)[0].(map[string]any)
			delete(q, "options")
		}, "options"},
		{"unknown quiz type", func(d map[string]any) {
			en := d["localizedContent"].(map[string]any)["en"].(map[string]any)
			q := en["practiceQuiz"].([]any)[0].(map[string]any)
			q["type"] = "essay"
		}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			problems, err := concept.ValidateDocument(doc)
			if err != nil {
				t.Fatalf("ValidateDocument() error = %v", err)
			}
			if tt.wantErr == "" {
				if len(problems) != 0 {
					t.Errorf("ValidateDocument() problems = %v, want none", problems)
				}
				return
			}
			if len(problems) == 0 {
				t.Fatalf("ValidateDocument() found no problems, want one mentioning %q", tt.wantErr)
			}
			joined := strings.Join(problems, "\n")
			if !strings.Contains(joined, tt.wantErr) {
				t.Errorf("problems = %q, want mention of %q", joined, tt.wantErr)
			}
		})
	}
}
