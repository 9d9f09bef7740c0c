package lesson_test

import (
	"slices"
	"testing"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/lesson"
)

func kinds(sections []lesson.Section) []lesson.SectionKind {
	out := make([]lesson.SectionKind, len(sections))
	for i, s := range sections {
		out[i] = s.Kind
	}
	return out
}

func TestPlan_FullOrder(t *testing.T) {
	named := []concept.NamedItem{{Name: "n"}}
	lc := concept.LocalizedContent{
		Title: "Sets",
		Content: concept.Content{
			Formula:           "n(A ∪ B) = n(A) + n(B) - n(A ∩ B)",
			Properties:        named,
			Laws:              []concept.Law{{Name: "Commutative", Formula: "A ∪ B = B ∪ A"}},
			Operations:        []concept.Operation{{Name: "Union"}},
			ProperImproper:    "p",
			SubsetSuperset:    "s",
			UniversalSet:      "U",
			Comparison:        named,
			TypesBySize:       named,
			Cardinality:       "n(A)",
			MembershipSymbols: "∈",
			Forms:             named,
			Definition:        "d",
			Introduction:      "i",
		},
		KeySentences: []string{"Sets group objects."},
		PracticeQuiz: []concept.PracticeQuiz{{QuestionID: "q1"}},
	}

	want := []lesson.SectionKind{
		lesson.KindIntroduction, lesson.KindDefinition, lesson.KindForms,
		lesson.KindMembershipSymbols, lesson.KindCardinality, lesson.KindTypesBySize,
		lesson.KindComparison, lesson.KindUniversalSet, lesson.KindSubsetSuperset,
		lesson.KindProperImproper, lesson.KindOperations, lesson.KindLaws,
		lesson.KindProperties, lesson.KindFormula, lesson.KindKeyTakeaways,
		lesson.KindPracticeQuiz,
	}
	if got := kinds(lesson.Plan(lc)); !slices.Equal(got, want) {
		t.Errorf("Plan() kinds =\n%v\nwant\n%v", got, want)
	}
}

func TestPlan_OrderIndependentOfConstruction(t *testing.T) {
	a := concept.LocalizedContent{}
	a.Content.Formula = "f"
	a.Content.Introduction = "i"
	a.Content.Laws = []concept.Law{{Name: "l"}}
	a.Content.Definition = "d"

	b := concept.LocalizedContent{}
	b.Content.Definition = "d"
	b.Content.Laws = []concept.Law{{Name: "l"}}
	b.Content.Introduction = "i"
	b.Content.Formula = "f"

	want := []lesson.SectionKind{
		lesson.KindIntroduction, lesson.KindDefinition, lesson.KindLaws,
		lesson.KindFormula, lesson.KindQuizPending,
	}
	for name, lc := range map[string]concept.LocalizedContent{"a": a, "b": b} {
		if got := kinds(lesson.Plan(lc)); !slices.Equal(got, want) {
			t.Errorf("Plan(%s) kinds = %v, want %v", name, got, want)
		}
	}
}

func TestPlan_SingleExampleRule(t *testing.T) {
	tests := []struct {
		name       string
		examples   []concept.Example
		wantPlural bool
		wantSingle bool
	}{
		{"examples missing", nil, false, true},
		{"examples empty", []concept.Example{}, false, false},
		{"examples present", []concept.Example{{Example: "{1,2}"}}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := concept.LocalizedContent{Content: concept.Content{
				Examples: tt.examples,
				Example:  "{a, b}",
			}}
			got := kinds(lesson.Plan(lc))
			if slices.Contains(got, lesson.KindExamples) != tt.wantPlural {
				t.Errorf("examples included = %v, want %v", !tt.wantPlural, tt.wantPlural)
			}
			if slices.Contains(got, lesson.KindExample) != tt.wantSingle {
				t.Errorf("example included = %v, want %v", !tt.wantSingle, tt.wantSingle)
			}
		})
	}
}

func TestPlan_ExampleIsLastContentSection(t *testing.T) {
	lc := concept.LocalizedContent{Content: concept.Content{
		Introduction: "i",
		Formula:      "f",
		Example:      "{a}",
	}}
	got := kinds(lesson.Plan(lc))
	want := []lesson.SectionKind{lesson.KindIntroduction, lesson.KindFormula, lesson.KindExample, lesson.KindQuizPending}
	if !slices.Equal(got, want) {
		t.Errorf("Plan() kinds = %v, want %v", got, want)
	}
}

func TestPlan_EmptyPayload(t *testing.T) {
	got := lesson.Plan(concept.LocalizedContent{})
	if len(got) != 1 || got[0].Kind != lesson.KindQuizPending {
		t.Errorf("Plan(empty) = %+v, want only quiz_pending", got)
	}
}

func TestPlan_EmptyListsExcluded(t *testing.T) {
	lc := concept.LocalizedContent{
		Content: concept.Content{
			Forms:      []concept.NamedItem{},
			Operations: []concept.Operation{},
		},
		KeySentences: []string{},
		PracticeQuiz: []concept.PracticeQuiz{},
	}
	got := kinds(lesson.Plan(lc))
	if !slices.Equal(got, []lesson.SectionKind{lesson.KindQuizPending}) {
		t.Errorf("Plan() kinds = %v, want [quiz_pending]", got)
	}
}

func TestPlan_PayloadPassedThrough(t *testing.T) {
	laws := []concept.Law{{Name: "De Morgan", Formula: "(A ∪ B)' = A' ∩ B'", InWords: "w"}}
	sections := lesson.Plan(concept.LocalizedContent{
		Content:      concept.Content{Laws: laws, Cardinality: "n(A) = 3"},
		KeySentences: []string{"k1", "k2"},
	})

	for _, s := range sections {
		switch s.Kind {
		case lesson.KindLaws:
			if !slices.Equal(s.Laws, laws) {
				t.Errorf("laws payload = %+v", s.Laws)
			}
		case lesson.KindCardinality:
			if s.Text != "n(A) = 3" {
				t.Errorf("cardinality text = %q", s.Text)
			}
		case lesson.KindKeyTakeaways:
			if len(s.Sentences) != 2 {
				t.Errorf("key takeaways = %v", s.Sentences)
			}
		}
	}
}
