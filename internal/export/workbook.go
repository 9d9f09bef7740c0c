// Package export writes the concept catalog as an Excel workbook for content
// reviewers.
package export

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/i18n"
	"github.com/p-n-ai/taleem/internal/lesson"
)

// Sheet names.
const (
	ConceptsSheet = "Concepts"
	QuizzesSheet  = "Quizzes"
)

var conceptHeader = []any{
	"Concept ID", "Grade", "Sequence", "Topic", "Title", "Language",
	"Fallback", "Minutes", "Difficulty", "Sections", "Quiz Questions", "Languages",
}

var quizHeader = []any{
	"Concept ID", "Language", "Question ID", "Type", "Question", "Options", "Correct Answer", "Feedback",
}

// WriteWorkbook writes one row per concept and one row per practice question,
// rendered in lang with the usual English fallback. Concepts without usable
// content are listed with an empty language column.
func WriteWorkbook(w io.Writer, concepts []concept.Concept, lang concept.Language) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ConceptsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(QuizzesSheet); err != nil {
		return fmt.Errorf("creating quiz sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	for _, sheet := range []struct {
		name   string
		header []any
	}{
		{ConceptsSheet, conceptHeader},
		{QuizzesSheet, quizHeader},
	} {
		if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
			return fmt.Errorf("writing %s header: %w", sheet.name, err)
		}
		if err := f.SetRowStyle(sheet.name, 1, 1, bold); err != nil {
			return fmt.Errorf("styling %s header: %w", sheet.name, err)
		}
		if err := f.SetPanes(sheet.name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freezing %s header: %w", sheet.name, err)
		}
	}

	quizRow := 2
	for i, c := range concepts {
		page := lesson.BuildPage(c, lang)

		var minutes any
		if c.EstimatedTimeMinutes != nil {
			minutes = *c.EstimatedTimeMinutes
		}
		row := []any{
			c.ConceptID, c.GradeLevel, c.SequenceOrder, c.Topic,
			i18n.Title(c, lang), string(page.Language), page.Fallback, minutes,
			c.Difficulty, sectionList(page.Sections), 0, languageList(c),
		}

		if res, ok := i18n.Resolve(c, lang); ok {
			row[10] = len(res.Content.PracticeQuiz)
			for _, q := range res.Content.PracticeQuiz {
				qr := []any{
					c.ConceptID, string(res.Language), q.QuestionID, string(q.Type),
					q.QuestionText, strings.Join(q.Options, " | "), q.CorrectAnswer, q.Feedback,
				}
				if err := setRow(f, QuizzesSheet, quizRow, qr); err != nil {
					return err
				}
				quizRow++
			}
		}

		if err := setRow(f, ConceptsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(ConceptsSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(QuizzesSheet, "E", "E", 48); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("addressing %s row %d: %w", sheet, row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func sectionList(sections []lesson.Section) string {
	kinds := make([]string, 0, len(sections))
	for _, s := range sections {
		kinds = append(kinds, string(s.Kind))
	}
	return strings.Join(kinds, ", ")
}

func languageList(c concept.Concept) string {
	var langs []string
	for l := range c.LocalizedContent {
		langs = append(langs, string(l))
	}
	slices.Sort(langs)
	return strings.Join(langs, ", ")
}
