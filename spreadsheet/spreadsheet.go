// Package spreadsheet handles the batch mode workbook I/O: reading the
// ordered question list from the input workbook and writing one result row
// per question to a timestamped output workbook. Cells are truncated to the
// xlsx cell character ceiling before writing.
package spreadsheet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// CellLimit is the maximum number of characters a single xlsx cell can hold.
const CellLimit = 32767

// Default workbook layout of a batch run.
const (
	QuestionsFile  = "questions.xlsx"
	QuestionsSheet = "Questions"
	ResultsSheet   = "Results"
)

// ErrNoQuestions is returned when the questions sheet yields zero non-blank
// rows starting at row 1 in column A.
var ErrNoQuestions = errors.New("no questions found")

// ReadQuestions reads the contiguous non-blank run of column A cells starting
// at row 1 of the given sheet. The first blank cell terminates the set.
func ReadQuestions(path, sheet string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open questions workbook %s: %w", path, err)
	}
	defer f.Close()

	var questions []string
	for row := 1; ; row++ {
		cell, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", row))
		if err != nil {
			return nil, fmt.Errorf("read %s!A%d: %w", sheet, row, err)
		}
		if strings.TrimSpace(cell) == "" {
			break
		}
		questions = append(questions, cell)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%s sheet %s: %w", path, sheet, ErrNoQuestions)
	}
	return questions, nil
}

// Result is one output row of a batch run. Lifetime ends at file save; there
// is no identity beyond row position.
type Result struct {
	Question       string
	Response       string
	ConversationID string
	Timestamp      string
	ResponseLog    string
}

// ResultWriter accumulates result rows on the Results sheet and writes the
// workbook once at the end. Not safe for concurrent use; batch runs are
// strictly sequential.
type ResultWriter struct {
	file *excelize.File
	row  int
}

// NewResultWriter creates a workbook with the Results sheet and header row.
func NewResultWriter() (*ResultWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ResultsSheet); err != nil {
		return nil, fmt.Errorf("create results sheet: %w", err)
	}
	header := []any{"Question", "Response", "Conversation id", "Timestamp", "Response Log"}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	return &ResultWriter{file: f, row: 1}, nil
}

// Append adds one result row, truncating every cell to CellLimit characters.
func (w *ResultWriter) Append(res Result) error {
	w.row++
	cells := []any{
		truncate(res.Question),
		truncate(res.Response),
		truncate(res.ConversationID),
		truncate(res.Timestamp),
		truncate(res.ResponseLog),
	}
	if err := w.file.SetSheetRow(ResultsSheet, fmt.Sprintf("A%d", w.row), &cells); err != nil {
		return fmt.Errorf("write result row %d: %w", w.row, err)
	}
	return nil
}

// Rows returns the number of data rows appended so far (header excluded).
func (w *ResultWriter) Rows() int { return w.row - 1 }

// SaveAs writes the workbook to disk. Called once at the end of a batch run;
// there is no partial-write recovery.
func (w *ResultWriter) SaveAs(path string) error {
	defer w.file.Close()
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("save results workbook %s: %w", path, err)
	}
	return nil
}

// truncate clips a value to the first CellLimit characters.
func truncate(s string) string {
	if len(s) > CellLimit {
		return s[:CellLimit]
	}
	return s
}

// OutputFilename returns the timestamped output workbook name for a run
// started at t.
func OutputFilename(t time.Time) string {
	return fmt.Sprintf("Response_%s.xlsx", t.Format("2006-01-02_15-04-05"))
}
