// Package export builds spreadsheet downloads of class-record history.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/typing"
)

var recordHeaders = []string{
	"授業日", "授業範囲", "タイピング", "作文", "作文ステップ",
	"コメント", "次回範囲", "担当",
}

// RecordsFilename names the per-student export download.
func RecordsFilename(studentName string) string {
	return fmt.Sprintf("records_%s.xlsx", studentName)
}

// Records renders a student's class records to an .xlsx workbook, newest
// first, matching the order the API lists them in.
func Records(student *model.Student, records []model.ClassRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "授業記録"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetCellValue(sheet, "A1", student.Name); err != nil {
		return nil, err
	}
	for i, header := range recordHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, rec := range records {
		step := ""
		if n, ok := typing.WritingStep(rec.WritingStep, rec.WritingResult); ok {
			step = fmt.Sprintf("STEP%d", n)
		}
		values := []interface{}{
			rec.TaughtOn.Format("2006-01-02"),
			rec.ClassRange,
			typing.Decode(rec.TypingResult).Display(),
			rec.WritingResult,
			step,
			rec.Comment,
			rec.NextClassRange,
			rec.Instructor,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+3)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
