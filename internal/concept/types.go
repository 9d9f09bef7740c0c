// Package concept holds the lesson data model and the repository that reads
// concept documents from the document store.
package concept

// Language is a content language code.
type Language string

// Supported content languages. English is the universal fallback.
const (
	English Language = "en"
	Urdu    Language = "ur"
)

// Languages lists the supported languages in display order.
var Languages = []Language{English, Urdu}

// Supported reports whether l is one of the content languages.
func (l Language) Supported() bool {
	return l == English || l == Urdu
}

// QuizType determines the answer input shape shown for a question.
type QuizType string

const (
	MultipleChoice QuizType = "multiple_choice"
	FillInTheBlank QuizType = "fill_in_the_blank"
	ShortAnswer    QuizType = "short_answer"
)

// Concept is one teachable unit served to learners.
type Concept struct {
	ConceptID            string                        `json:"conceptId"`
	GradeLevel           int                           `json:"gradeLevel"`
	SequenceOrder        int                           `json:"sequenceOrder"`
	Topic                string                        `json:"topic"`
	EstimatedTimeMinutes *int                          `json:"estimatedTimeMinutes,omitempty"`
	Difficulty           string                        `json:"difficulty,omitempty"`
	Prerequisites        []string                      `json:"prerequisites,omitempty"`
	LocalizedContent     map[Language]LocalizedContent `json:"localizedContent"`
}

// Localized returns the payload stored for lang, if any.
func (c Concept) Localized(lang Language) (LocalizedContent, bool) {
	lc, ok := c.LocalizedContent[lang]
	return lc, ok
}

// LocalizedContent is the language-specific rendering of a Concept.
type LocalizedContent struct {
	Title        string         `json:"title"`
	Content      Content        `json:"content"`
	KeySentences []string       `json:"keySentences"`
	PracticeQuiz []PracticeQuiz `json:"practiceQuiz"`
}

// Quiz returns the question with the given id.
func (lc LocalizedContent) Quiz(questionID string) (PracticeQuiz, bool) {
	for _, q := range lc.PracticeQuiz {
		if q.QuestionID == questionID {
			return q, true
		}
	}
	return PracticeQuiz{}, false
}

// Content is a sparse record of optional lesson sections.
// Empty strings and empty slices mean the section is absent. For Examples a nil
// slice means the field is missing and a non-nil empty slice means it was present
// but empty; the single Example is shown only in the first case.
type Content struct {
	Introduction      string      `json:"introduction,omitempty"`
	Definition        string      `json:"definition,omitempty"`
	Examples          []Example   `json:"examples"`
	Example           string      `json:"example,omitempty"`
	Forms             []NamedItem `json:"forms,omitempty"`
	MembershipSymbols string      `json:"membership_symbols,omitempty"`
	Cardinality       string      `json:"cardinality,omitempty"`
	TypesBySize       []NamedItem `json:"types_by_size,omitempty"`
	Comparison        []NamedItem `json:"comparison,omitempty"`
	UniversalSet      string      `json:"universal_set,omitempty"`
	SubsetSuperset    string      `json:"subset_superset,omitempty"`
	ProperImproper    string      `json:"proper_improper,omitempty"`
	Operations        []Operation `json:"operations,omitempty"`
	Laws              []Law       `json:"laws,omitempty"`
	Properties        []NamedItem `json:"properties,omitempty"`
	Formula           string      `json:"formula,omitempty"`
}

// Example is one entry of the examples section. Older records label it with
// Rule or Type, newer ones with Name; IsSet/IsNotSet pair a set with a non-set.
type Example struct {
	Rule        string `json:"rule,omitempty"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	Example     string `json:"example,omitempty"`
	Description string `json:"description,omitempty"`
	IsSet       string `json:"example_is_set,omitempty"`
	IsNotSet    string `json:"example_is_not_set,omitempty"`
}

// NamedItem is a titled description (forms, set types, comparisons, properties).
type NamedItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Operation describes a set operation with an optional worked example.
type Operation struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Example     string `json:"example,omitempty"`
}

// Law is a named identity such as De Morgan's law.
type Law struct {
	Name    string `json:"name"`
	Formula string `json:"formula,omitempty"`
	InWords string `json:"in_words,omitempty"`
}

// PracticeQuiz is one self-check question.
type PracticeQuiz struct {
	QuestionID    string   `json:"questionId"`
	Type          QuizType `json:"type"`
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Feedback      string   `json:"feedback"`
}
