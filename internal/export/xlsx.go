// Package export appends graded attempts to an Excel workbook.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/quizclient/internal/quiz"
	"github.com/abhisek/quizclient/internal/view"
)

// Sheet names.
const (
	SummarySheet   = "Summary"
	QuestionsSheet = "Questions"
)

// Column headings.
var (
	SummaryHeaders   = []any{"Graded At", "Quiz ID", "Score", "Max", "Total Time"}
	QuestionsHeaders = []any{"Graded At", "Quiz ID", "#", "Q ID", "Type", "Earned", "Max", "Time (s)", "Feedback"}
)

const timeLayout = "2006-01-02 15:04:05"

var plainText = bluemonday.StrictPolicy()

// Exporter writes every grade it receives to Path.
type Exporter struct {
	Path string
	Now  func() time.Time
}

// New creates an Exporter for path.
func New(path string) *Exporter {
	return &Exporter{Path: path, Now: time.Now}
}

// Export appends one graded attempt. The workbook is created on first use.
func (e *Exporter) Export(quizID string, res *quiz.GradeResult) error {
	f, err := openOrCreate(e.Path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	at := e.Now().Format(timeLayout)

	summary := []any{at, quizID, res.ScoreTotal, res.ScoreMax, view.TimeSummaryText(res)}
	if err := appendRow(f, SummarySheet, summary); err != nil {
		return err
	}

	for i, pq := range res.PerQuestion {
		feedback := ""
		if pq.Feedback != nil {
			feedback = plainText.Sanitize(*pq.Feedback)
		}
		row := []any{at, quizID, i + 1, pq.ID, pq.Type, pq.Earned, pq.Max, pq.Seconds(), feedback}
		if err := appendRow(f, QuestionsSheet, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(e.Path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func openOrCreate(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		return f, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat workbook: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	if _, err := f.NewSheet(QuestionsSheet); err != nil {
		return nil, fmt.Errorf("create questions sheet: %w", err)
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &SummaryHeaders); err != nil {
		return nil, fmt.Errorf("write headers: %w", err)
	}
	if err := f.SetSheetRow(QuestionsSheet, "A1", &QuestionsHeaders); err != nil {
		return nil, fmt.Errorf("write headers: %w", err)
	}
	return f, nil
}

func appendRow(f *excelize.File, sheet string, values []any) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read %s: %w", sheet, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row: %w", sheet, err)
	}
	return nil
}
