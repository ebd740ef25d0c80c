package spreadsheet

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeQuestions creates an input workbook with the given column A values.
func writeQuestions(t *testing.T, path string, cells []string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), QuestionsSheet))
	for i, cell := range cells {
		require.NoError(t, f.SetCellValue(QuestionsSheet, fmt.Sprintf("A%d", i+1), cell))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	writeQuestions(t, path, []string{"first", "second", "third"})

	questions, err := ReadQuestions(path, QuestionsSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, questions)
}

func TestReadQuestions_StopsAtBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	// Row 3 is blank; row 4 must not be read.
	writeQuestions(t, path, []string{"one", "two", "", "orphan"})

	questions, err := ReadQuestions(path, QuestionsSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, questions)
}

func TestReadQuestions_MissingFile(t *testing.T) {
	_, err := ReadQuestions(filepath.Join(t.TempDir(), "absent.xlsx"), QuestionsSheet)
	assert.Error(t, err)
}

func TestReadQuestions_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	writeQuestions(t, path, nil)

	_, err := ReadQuestions(path, QuestionsSheet)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestResultWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	w, err := NewResultWriter()
	require.NoError(t, err)
	require.NoError(t, w.Append(Result{
		Question:       "Hello",
		Response:       "Hi there\n",
		ConversationID: "conv-1",
		Timestamp:      "2026-08-25T10:00:00Z",
		ResponseLog:    `[{"type":"message"}]`,
	}))
	assert.Equal(t, 1, w.Rows())
	require.NoError(t, w.SaveAs(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Question", "Response", "Conversation id", "Timestamp", "Response Log"}, rows[0])
	assert.Equal(t, "Hello", rows[1][0])
	assert.Equal(t, "Hi there\n", rows[1][1])
	assert.Equal(t, "conv-1", rows[1][2])
}

func TestResultWriter_Truncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	long := strings.Repeat("x", CellLimit) + "overflow"
	short := strings.Repeat("y", CellLimit)

	w, err := NewResultWriter()
	require.NoError(t, err)
	require.NoError(t, w.Append(Result{Question: "q", Response: long, ResponseLog: short}))
	require.NoError(t, w.SaveAs(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	response, err := f.GetCellValue(ResultsSheet, "B2")
	require.NoError(t, err)
	assert.Len(t, response, CellLimit)
	assert.Equal(t, long[:CellLimit], response)

	log, err := f.GetCellValue(ResultsSheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, short, log, "values at the limit are unmodified")
}

func TestOutputFilename(t *testing.T) {
	at := time.Date(2026, 8, 25, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "Response_2026-08-25_09-05-07.xlsx", OutputFilename(at))
}
