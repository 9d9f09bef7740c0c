package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/p-n-ai/taleem/internal/concept"
)

// Label keys used by the presentation layer.
const (
	LabelSidebarTitle   = "sidebar_title"
	LabelLoading        = "loading"
	LabelNotAvailable   = "content_not_available"
	LabelNotFound       = "concept_not_found"
	LabelGrade          = "grade"
	LabelMinutes        = "minutes"
	LabelTotalMinutes   = "total_minutes"
	LabelPracticeQuiz   = "practice_quiz"
	LabelQuizPending    = "quiz_pending"
	LabelSubmit         = "submit"
	LabelTryAgain       = "try_again"
	LabelCorrect        = "correct"
	LabelIncorrect      = "incorrect"
	LabelCorrectAnswer  = "correct_answer"
	LabelFeedback       = "feedback"
	LabelShowAnswer     = "show_answer"
	LabelHideAnswer     = "hide_answer"
	LabelToggleLanguage = "toggle_language"
)

var english = map[string]string{
	LabelSidebarTitle:   "Learning Path",
	LabelLoading:        "Loading...",
	LabelNotAvailable:   "Content not available",
	LabelNotFound:       "Concept not found",
	LabelGrade:          "Grade",
	LabelMinutes:        "min",
	LabelTotalMinutes:   "Total time",
	LabelPracticeQuiz:   "Practice Quiz",
	LabelQuizPending:    "Practice questions coming soon",
	LabelSubmit:         "Submit",
	LabelTryAgain:       "Try Again",
	LabelCorrect:        "Correct!",
	LabelIncorrect:      "Not quite.",
	LabelCorrectAnswer:  "Correct answer",
	LabelFeedback:       "Feedback",
	LabelShowAnswer:     "Show Answer",
	LabelHideAnswer:     "Hide Answer",
	LabelToggleLanguage: "اردو",

	"section.introduction":       "Introduction",
	"section.definition":         "Definition",
	"section.examples":           "Examples",
	"section.forms":              "Ways to Write Sets",
	"section.membership_symbols": "Membership Symbols",
	"section.cardinality":        "Cardinality",
	"section.types_by_size":      "Types of Sets",
	"section.comparison":         "Comparing Sets",
	"section.universal_set":      "Universal Set",
	"section.subset_superset":    "Subsets and Supersets",
	"section.proper_improper":    "Proper and Improper Subsets",
	"section.operations":         "Set Operations",
	"section.laws":               "Mathematical Laws",
	"section.properties":         "Properties",
	"section.formula":            "Formula",
	"section.example":            "Example",
	"section.key_takeaways":      "Key Takeaways",
	"section.practice_quiz":      "Practice Quiz",
	"section.quiz_pending":       "Practice Quiz",
}

var urdu = map[string]string{
	LabelSidebarTitle:   "سیکھنے کا راستہ",
	LabelLoading:        "لوڈ ہو رہا ہے...",
	LabelNotAvailable:   "مواد دستیاب نہیں",
	LabelNotFound:       "تصور نہیں ملا",
	LabelGrade:          "جماعت",
	LabelMinutes:        "منٹ",
	LabelTotalMinutes:   "کل وقت",
	LabelPracticeQuiz:   "مشقی سوالات",
	LabelQuizPending:    "مشقی سوالات جلد آ رہے ہیں",
	LabelSubmit:         "جمع کریں",
	LabelTryAgain:       "دوبارہ کوشش کریں",
	LabelCorrect:        "درست!",
	LabelIncorrect:      "درست نہیں۔",
	LabelCorrectAnswer:  "درست جواب",
	LabelFeedback:       "وضاحت",
	LabelShowAnswer:     "جواب دکھائیں",
	LabelHideAnswer:     "جواب چھپائیں",
	LabelToggleLanguage: "English",

	"section.introduction":       "تعارف",
	"section.definition":         "تعریف",
	"section.examples":           "مثالیں",
	"section.forms":              "سیٹ لکھنے کے طریقے",
	"section.membership_symbols": "رکنیت کی علامات",
	"section.cardinality":        "عددِ اراکین",
	"section.types_by_size":      "سیٹ کی اقسام",
	"section.comparison":         "سیٹوں کا موازنہ",
	"section.universal_set":      "عالمگیر سیٹ",
	"section.subset_superset":    "ذیلی اور فوقی سیٹ",
	"section.proper_improper":    "واجب اور غیر واجب ذیلی سیٹ",
	"section.operations":         "سیٹ کے عوامل",
	"section.laws":               "ریاضیاتی قوانین",
	"section.properties":         "خصوصیات",
	"section.formula":            "فارمولا",
	"section.example":            "مثال",
	"section.key_takeaways":      "اہم نکات",
	"section.practice_quiz":      "مشقی سوالات",
	"section.quiz_pending":       "مشقی سوالات",
}

var labels = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		_ = b.SetString(language.English, key, msg)
	}
	for key, msg := range english {
		if ur, ok := urdu[key]; ok {
			msg = ur
		}
		_ = b.SetString(language.Urdu, key, msg)
	}
	return b
}

func tagFor(lang concept.Language) language.Tag {
	if lang == concept.Urdu {
		return language.Urdu
	}
	return language.English
}

// Label returns the UI string for key in lang. Keys without an Urdu
// translation use the English string; unknown keys are returned unchanged.
func Label(lang concept.Language, key string) string {
	p := message.NewPrinter(tagFor(lang), message.Catalog(labels))
	return p.Sprintf(key)
}

// SectionLabel returns the heading of a lesson section kind.
func SectionLabel(lang concept.Language, kind string) string {
	return Label(lang, "section."+kind)
}

// Labels returns every UI string for lang.
func Labels(lang concept.Language) map[string]string {
	out := make(map[string]string, len(english))
	for key := range english {
		out[key] = Label(lang, key)
	}
	return out
}
