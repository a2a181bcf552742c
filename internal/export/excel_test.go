package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jukulab/classdesk-backend/internal/model"
)

func TestRecords(t *testing.T) {
	student := &model.Student{ID: "s1", Name: "山田太郎"}
	step := 2
	records := []model.ClassRecord{
		{
			TaughtOn:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			ClassRange:   "第3章",
			TypingResult: `{"grade":"10級","charCount":"120","accuracy":"95%"}`,
			WritingStep:  &step,
			Instructor:   "佐藤",
		},
		{
			TaughtOn:   time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
			ClassRange: "第2章",
			Instructor: "鈴木",
		},
	}

	data, err := Records(student, records)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("授業記録", "A1")
	if err != nil {
		t.Fatalf("read A1: %v", err)
	}
	if got != "山田太郎" {
		t.Errorf("A1 = %q, want student name", got)
	}

	date, _ := f.GetCellValue("授業記録", "A3")
	if date != "2024-05-10" {
		t.Errorf("first data row date = %q, want 2024-05-10", date)
	}

	stepCell, _ := f.GetCellValue("授業記録", "E3")
	if stepCell != "STEP2" {
		t.Errorf("writing step cell = %q, want STEP2", stepCell)
	}
}

func TestRecordsFilename(t *testing.T) {
	if got := RecordsFilename("山田太郎"); got != "records_山田太郎.xlsx" {
		t.Errorf("RecordsFilename() = %q", got)
	}
}
