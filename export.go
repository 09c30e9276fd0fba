package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxSheetName    = 31
)

// ExportWarnings lists the problems that block a download.
type ExportWarnings []string

func (w ExportWarnings) Error() string {
	return "cannot export quiz: " + strings.Join(w, "; ")
}

func ValidateForExport(q Quiz) ExportWarnings {
	var warnings ExportWarnings
	if q.Title == defaultQuizTitle {
		warnings = append(warnings, fmt.Sprintf("Quiz title is still %q. Please give your quiz a proper title.", defaultQuizTitle))
	}
	for i, qu := range q.Questions {
		hasCorrect := false
		for _, a := range qu.Answers {
			if a.Correct {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			warnings = append(warnings, fmt.Sprintf("Question %d does not have any correct answer marked.", i+1))
		}
	}
	return warnings
}

// exportRows lays the quiz out one row per line: header rows, a blank, then
// each question followed by its answers and a blank.
func exportRows(q Quiz) [][]any {
	rows := [][]any{{"Quiz Title:", q.Title}}
	if q.Category != "" {
		rows = append(rows, []any{"Category:", q.Category})
	}
	if q.Status != "" {
		rows = append(rows, []any{"Status:", string(q.Status)})
	}
	rows = append(rows, nil)
	for i, qu := range q.Questions {
		rows = append(rows, []any{fmt.Sprintf("Question %d:", i+1), qu.Question})
		for j, a := range qu.Answers {
			mark := ""
			if a.Correct {
				mark = "CORRECT"
			}
			rows = append(rows, []any{fmt.Sprintf("Answer %d:", j+1), a.Text, mark})
		}
		rows = append(rows, nil)
	}
	return rows
}

// SheetName truncates the title to the sheet-name limit and strips the
// characters spreadsheets reject.
func SheetName(title string) string {
	r := []rune(title)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	name := strings.Map(func(c rune) rune {
		if strings.ContainsRune(`:\/?*[]`, c) {
			return -1
		}
		return c
	}, string(r))
	name = strings.Trim(name, "'")
	if strings.TrimSpace(name) == "" {
		return "Quiz"
	}
	return name
}

func ExportFileName(q Quiz) string {
	title := strings.TrimSpace(q.Title)
	if title == "" {
		title = "quiz"
	}
	return title + ".xlsx"
}

// ExportWorkbook renders q as a single-sheet xlsx file. Quizzes with
// warnings are refused with ExportWarnings.
func ExportWorkbook(q Quiz) ([]byte, error) {
	if w := ValidateForExport(q); len(w) > 0 {
		return nil, w
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(q.Title)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	for i, row := range exportRows(q) {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
