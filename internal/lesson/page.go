package lesson

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/i18n"
)

// SiteName is appended to every page title.
const SiteName = "Taleem AI"

// Page is a fully planned concept page. When Available is false the concept
// has no usable language payload and only the header fields are set.
type Page struct {
	ConceptID            string           `json:"conceptId"`
	Available            bool             `json:"available"`
	Requested            concept.Language `json:"requestedLanguage"`
	Language             concept.Language `json:"language,omitempty"`
	Fallback             bool             `json:"fallback"`
	Title                string           `json:"title,omitempty"`
	GradeLevel           int              `json:"gradeLevel"`
	SequenceOrder        int              `json:"sequenceOrder"`
	Topic                string           `json:"topic"`
	EstimatedTimeMinutes *int             `json:"estimatedTimeMinutes,omitempty"`
	Difficulty           string           `json:"difficulty,omitempty"`
	Sections             []Section        `json:"sections,omitempty"`
}

// BuildPage resolves c in lang and plans its sections. Section headings are
// in lang even when the content falls back to English.
func BuildPage(c concept.Concept, lang concept.Language) Page {
	p := Page{
		ConceptID:            c.ConceptID,
		Requested:            lang,
		GradeLevel:           c.GradeLevel,
		SequenceOrder:        c.SequenceOrder,
		Topic:                c.Topic,
		EstimatedTimeMinutes: c.EstimatedTimeMinutes,
		Difficulty:           c.Difficulty,
	}

	res, ok := i18n.Resolve(c, lang)
	if !ok {
		return p
	}
	p.Available = true
	p.Language = res.Language
	p.Fallback = res.Fallback
	p.Title = res.Content.Title
	p.Sections = Plan(res.Content)
	for i := range p.Sections {
		p.Sections[i].Heading = i18n.SectionLabel(lang, string(p.Sections[i].Kind))
	}
	return p
}

// Meta is the document title and description of a concept page.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Metadata builds page metadata from the English payload regardless of the
// learner's language.
func Metadata(c concept.Concept, found bool) Meta {
	if !found {
		return Meta{
			Title:       "Concept Not Found - " + SiteName,
			Description: "The requested concept could not be found.",
		}
	}
	en, ok := c.LocalizedContent[concept.English]
	if !ok {
		return Meta{
			Title:       "Concept - " + SiteName,
			Description: "Learn Set Theory with " + SiteName,
		}
	}

	title := strings.TrimSpace(en.Title)
	if title == "" {
		title = "Concept"
	}
	description := strings.TrimSpace(en.Content.Introduction)
	if description == "" {
		description = "Learn Set Theory with " + SiteName
	}
	return Meta{Title: fmt.Sprintf("%s - %s", title, SiteName), Description: description}
}

// Card is the catalog entry of one concept.
type Card struct {
	ConceptID            string `json:"conceptId"`
	SequenceOrder        int    `json:"sequenceOrder"`
	Title                string `json:"title"`
	Introduction         string `json:"introduction"`
	Topic                string `json:"topic"`
	EstimatedTimeMinutes *int   `json:"estimatedTimeMinutes,omitempty"`
}

// GradeGroup lists the concepts of one grade.
type GradeGroup struct {
	GradeLevel   int    `json:"gradeLevel"`
	TotalMinutes int    `json:"totalMinutes"`
	Concepts     []Card `json:"concepts"`
}

// GroupByGrade groups concepts by grade level in ascending grade order. The
// order of concepts inside a grade is the order of the input.
func GroupByGrade(concepts []concept.Concept, lang concept.Language) []GradeGroup {
	index := make(map[int]int)
	var groups []GradeGroup

	for _, c := range concepts {
		i, ok := index[c.GradeLevel]
		if !ok {
			i = len(groups)
			index[c.GradeLevel] = i
			groups = append(groups, GradeGroup{GradeLevel: c.GradeLevel, Concepts: []Card{}})
		}
		g := &groups[i]
		g.Concepts = append(g.Concepts, Card{
			ConceptID:            c.ConceptID,
			SequenceOrder:        c.SequenceOrder,
			Title:                i18n.Title(c, lang),
			Introduction:         i18n.Introduction(c, lang),
			Topic:                capitalize(c.Topic),
			EstimatedTimeMinutes: c.EstimatedTimeMinutes,
		})
		if c.EstimatedTimeMinutes != nil {
			g.TotalMinutes += *c.EstimatedTimeMinutes
		}
	}

	slices.SortStableFunc(groups, func(a, b GradeGroup) int {
		return cmp.Compare(a.GradeLevel, b.GradeLevel)
	})
	if groups == nil {
		groups = []GradeGroup{}
	}
	return groups
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
