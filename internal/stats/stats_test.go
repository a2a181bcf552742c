package stats

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/jukulab/classdesk-backend/internal/model"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func record(id string, daysAgo int, typingResult string) model.ClassRecord {
	return model.ClassRecord{
		ID:           id,
		StudentID:    "student-1",
		StudentName:  "山田太郎",
		TaughtOn:     testNow.AddDate(0, 0, -daysAgo),
		ClassRange:   "p.10-12",
		TypingResult: typingResult,
		Instructor:   "佐藤",
	}
}

func TestBuildWindowCounts(t *testing.T) {
	records := []model.ClassRecord{
		record("a", 1, ""),
		record("b", 6, ""),
		record("c", 20, ""),
		record("d", 80, ""),
		record("e", 200, ""),
	}

	s := Build(records, testNow)

	if s.Counts.Last7 != 2 {
		t.Errorf("Last7 = %d, want 2", s.Counts.Last7)
	}
	if s.Counts.Last30 != 3 {
		t.Errorf("Last30 = %d, want 3", s.Counts.Last30)
	}
	if s.Counts.Last90 != 4 {
		t.Errorf("Last90 = %d, want 4", s.Counts.Last90)
	}
}

func TestBuildBasicAndAdvancedGroups(t *testing.T) {
	records := []model.ClassRecord{
		record("a", 30, `{"grade":"10級","data":{"basicData":{"charCount":"120","accuracy":"95%"}}}`),
		record("b", 20, `{"grade":"10級","data":{"basicData":{"charCount":140,"accuracy":97}}}`),
		record("c", 10, `{"grade":"9級","data":{"advancedData":[{"theme":"A","level":"B+"}]}}`),
	}

	s := Build(records, testNow)

	if len(s.Grades) != 2 {
		t.Fatalf("Grades = %d groups, want 2", len(s.Grades))
	}

	basic := s.Grades[0]
	if !basic.Basic || basic.Grade != "10級" {
		t.Fatalf("first group = %+v, want basic 10級", basic)
	}
	if len(basic.Points) != 2 {
		t.Fatalf("basic points = %d, want 2", len(basic.Points))
	}
	if basic.Points[0].CharCount != 120 || basic.Points[0].Accuracy != 95 {
		t.Errorf("first basic point = %+v, want 120/95", basic.Points[0])
	}

	adv := s.Grades[1]
	if adv.Basic || adv.Grade != "9級" {
		t.Fatalf("second group = %+v, want advanced 9級", adv)
	}
	if len(adv.Levels) != 1 || adv.Levels[0].Level != 12 {
		t.Errorf("advanced levels = %+v, want one point at 12", adv.Levels)
	}

	if len(s.Progress) != 3 {
		t.Fatalf("Progress = %d points, want 3", len(s.Progress))
	}
	for i := 1; i < len(s.Progress); i++ {
		if s.Progress[i].Date.Before(s.Progress[i-1].Date) {
			t.Error("Progress not date-ascending")
		}
	}
}

func TestBuildThemeSeries(t *testing.T) {
	records := []model.ClassRecord{
		record("a", 20, `{"grade":"9級","data":{"advancedData":[{"theme":"記号","level":"C"},{"theme":"数字","level":"B"}]}}`),
		record("b", 10, `{"grade":"9級","data":{"advancedData":[{"theme":"記号","level":"B-"}]}}`),
	}

	s := Build(records, testNow)

	if len(s.ThemeSeries) != 2 {
		t.Fatalf("ThemeSeries = %d, want 2", len(s.ThemeSeries))
	}
	kigou := s.ThemeSeries[0]
	if kigou.Theme != "記号" || len(kigou.Points) != 2 {
		t.Fatalf("series[0] = %+v, want 記号 with 2 points", kigou)
	}
	if kigou.Points[0].Level != 8 || kigou.Points[1].Level != 10 {
		t.Errorf("記号 levels = %+v, want [8 10]", kigou.Points)
	}
	if s.ThemeSeries[1].Theme != "数字" || len(s.ThemeSeries[1].Points) != 1 {
		t.Errorf("series[1] = %+v, want 数字 with 1 point", s.ThemeSeries[1])
	}
}

func TestBuildWritingSteps(t *testing.T) {
	one := 1
	records := []model.ClassRecord{
		record("a", 5, ""),
		record("b", 4, ""),
		record("c", 3, ""),
	}
	records[0].WritingStep = &one
	records[1].WritingResult = "STEP2の練習"
	records[2].WritingResult = "自由練習" // no step

	s := Build(records, testNow)

	if s.WritingSteps != [3]int{1, 1, 0} {
		t.Errorf("WritingSteps = %v, want [1 1 0]", s.WritingSteps)
	}
}

func TestBuildMalformedPayloadsSkipped(t *testing.T) {
	records := []model.ClassRecord{
		record("a", 3, `{"grade":"10級",`),
		record("b", 2, "ホームポジション"),
		record("c", 1, `{"grade":"10級","data":{"basicData":{"charCount":100,"accuracy":90}}}`),
	}

	s := Build(records, testNow)

	if len(s.Progress) != 1 {
		t.Errorf("Progress = %d points, want 1 (malformed skipped)", len(s.Progress))
	}
	if s.Counts.Last7 != 3 {
		t.Errorf("Last7 = %d, want 3 (malformed still counted)", s.Counts.Last7)
	}
	if len(s.Recent) != 3 {
		t.Errorf("Recent = %d, want 3", len(s.Recent))
	}
}

func TestBuildRecentNewestFirst(t *testing.T) {
	var records []model.ClassRecord
	for i := 0; i < 8; i++ {
		records = append(records, record(fmt.Sprintf("r%d", i), i, ""))
	}

	s := Build(records, testNow)

	if len(s.Recent) != 5 {
		t.Fatalf("Recent = %d, want 5", len(s.Recent))
	}
	for i := 1; i < len(s.Recent); i++ {
		if s.Recent[i].TaughtOn.After(s.Recent[i-1].TaughtOn) {
			t.Error("Recent not date-descending")
		}
	}
	if s.Recent[0].ID != "r0" {
		t.Errorf("Recent[0] = %s, want r0 (newest)", s.Recent[0].ID)
	}
}

func TestBuildIsPureAndOrderIndependent(t *testing.T) {
	records := []model.ClassRecord{
		record("a", 40, `{"grade":"10級","data":{"basicData":{"charCount":90,"accuracy":92}}}`),
		record("b", 25, `{"grade":"9級","data":{"advancedData":[{"theme":"A","level":"C+"}]}}`),
		record("c", 10, `{"grade":"9級","data":{"advancedData":[{"theme":"A","level":"B"}]}}`),
		record("d", 2, "legacy"),
	}

	first, err := json.Marshal(Build(records, testNow))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(Build(records, testNow))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("two runs on identical input differ")
	}

	reversed := make([]model.ClassRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	third, err := json.Marshal(Build(reversed, testNow))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(third) {
		t.Error("reversed input yields a different summary")
	}
}
