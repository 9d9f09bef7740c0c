// Package lesson turns a resolved concept payload into an ordered list of
// renderable sections and assembles the pages served to learners.
package lesson

import "github.com/p-n-ai/taleem/internal/concept"

// SectionKind identifies a lesson section.
type SectionKind string

const (
	KindIntroduction      SectionKind = "introduction"
	KindDefinition        SectionKind = "definition"
	KindExamples          SectionKind = "examples"
	KindForms             SectionKind = "forms"
	KindMembershipSymbols SectionKind = "membership_symbols"
	KindCardinality       SectionKind = "cardinality"
	KindTypesBySize       SectionKind = "types_by_size"
	KindComparison        SectionKind = "comparison"
	KindUniversalSet      SectionKind = "universal_set"
	KindSubsetSuperset    SectionKind = "subset_superset"
	KindProperImproper    SectionKind = "proper_improper"
	KindOperations        SectionKind = "operations"
	KindLaws              SectionKind = "laws"
	KindProperties        SectionKind = "properties"
	KindFormula           SectionKind = "formula"
	KindExample           SectionKind = "example"
	KindKeyTakeaways      SectionKind = "key_takeaways"
	KindPracticeQuiz      SectionKind = "practice_quiz"
	KindQuizPending       SectionKind = "quiz_pending"
)

// Section is one planned block of a lesson. Kind selects which payload field
// is set; KindQuizPending carries none.
type Section struct {
	Kind       SectionKind            `json:"kind"`
	Heading    string                 `json:"heading,omitempty"`
	Text       string                 `json:"text,omitempty"`
	Examples   []concept.Example      `json:"examples,omitempty"`
	Items      []concept.NamedItem    `json:"items,omitempty"`
	Operations []concept.Operation    `json:"operations,omitempty"`
	Laws       []concept.Law          `json:"laws,omitempty"`
	Sentences  []string               `json:"sentences,omitempty"`
	Quizzes    []concept.PracticeQuiz `json:"quizzes,omitempty"`
}

// Plan returns the sections to render for lc in fixed display order. A text
// section is included when non-empty, a list section when it has elements.
// The single example is only used when the examples field is missing.
func Plan(lc concept.LocalizedContent) []Section {
	c := lc.Content
	var sections []Section

	text := func(kind SectionKind, s string) {
		if s != "" {
			sections = append(sections, Section{Kind: kind, Text: s})
		}
	}
	items := func(kind SectionKind, v []concept.NamedItem) {
		if len(v) > 0 {
			sections = append(sections, Section{Kind: kind, Items: v})
		}
	}

	text(KindIntroduction, c.Introduction)
	text(KindDefinition, c.Definition)
	if len(c.Examples) > 0 {
		sections = append(sections, Section{Kind: KindExamples, Examples: c.Examples})
	}
	items(KindForms, c.Forms)
	text(KindMembershipSymbols, c.MembershipSymbols)
	text(KindCardinality, c.Cardinality)
	items(KindTypesBySize, c.TypesBySize)
	items(KindComparison, c.Comparison)
	text(KindUniversalSet, c.UniversalSet)
	text(KindSubsetSuperset, c.SubsetSuperset)
	text(KindProperImproper, c.ProperImproper)
	if len(c.Operations) > 0 {
		sections = append(sections, Section{Kind: KindOperations, Operations: c.Operations})
	}
	if len(c.Laws) > 0 {
		sections = append(sections, Section{Kind: KindLaws, Laws: c.Laws})
	}
	items(KindProperties, c.Properties)
	text(KindFormula, c.Formula)
	if c.Examples == nil {
		text(KindExample, c.Example)
	}

	if len(lc.KeySentences) > 0 {
		sections = append(sections, Section{Kind: KindKeyTakeaways, Sentences: lc.KeySentences})
	}
	if len(lc.PracticeQuiz) > 0 {
		sections = append(sections, Section{Kind: KindPracticeQuiz, Quizzes: lc.PracticeQuiz})
	} else {
		sections = append(sections, Section{Kind: KindQuizPending})
	}

	return sections
}
