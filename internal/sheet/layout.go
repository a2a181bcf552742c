// Package sheet renders the per-session evaluation sheet. The visible
// content is computed first as a Layout so the comparison logic stays
// testable without touching pixels; rasterization is a separate step.
package sheet

import (
	"fmt"
	"time"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/typing"
)

// KV is one labeled line on the sheet.
type KV struct {
	Label string
	Value string
}

// Block is one typing-result column.
type Block struct {
	Heading string
	Lines   []string
}

// Layout is the deterministic content of one evaluation sheet.
type Layout struct {
	Title       string
	StudentName string
	Date        time.Time
	Info        []KV
	// Comparison is true when a previous result of the same grade exists;
	// Blocks then holds the previous and current columns side by side.
	Comparison bool
	Blocks     []Block
	Comment    string
}

// BuildLayout computes the sheet content for a record. prevTyping is the
// previous record's raw typing result for the same student, if any: when
// it decodes to the same grade as the current result a side-by-side
// comparison is produced, otherwise only the current result is shown.
func BuildLayout(rec model.ClassRecord, prevTyping *string) Layout {
	current := typing.Decode(rec.TypingResult)

	l := Layout{
		Title:       "授業評価シート",
		StudentName: orNoRecord(rec.StudentName),
		Date:        rec.TaughtOn,
		Info: []KV{
			{Label: "授業範囲", Value: orNoRecord(rec.ClassRange)},
			{Label: "担当", Value: orNoRecord(rec.Instructor)},
			{Label: "次回範囲", Value: orNoRecord(rec.NextClassRange)},
			{Label: "作文", Value: orNoRecord(rec.WritingResult)},
		},
		Comment: rec.Comment,
	}

	if prevTyping != nil {
		previous := typing.Decode(*prevTyping)
		if sameGrade(previous, current) {
			l.Comparison = true
			l.Blocks = []Block{
				{Heading: "前回", Lines: resultLines(previous)},
				{Heading: "今回", Lines: resultLines(current)},
			}
			return l
		}
	}

	l.Blocks = []Block{{Heading: "タイピング", Lines: resultLines(current)}}
	return l
}

// Filename returns the download name for a rendered sheet.
func Filename(studentName string, date time.Time) string {
	return fmt.Sprintf("evaluation_%s_%s.png", studentName, date.Format("20060102"))
}

func sameGrade(prev, cur typing.Result) bool {
	return prev.Kind != typing.KindLegacy &&
		cur.Kind != typing.KindLegacy &&
		prev.Grade == cur.Grade
}

func resultLines(res typing.Result) []string {
	switch res.Kind {
	case typing.KindBasic:
		if res.Basic == nil {
			return []string{typing.NoRecord}
		}
		return []string{
			"級: " + res.Grade,
			fmt.Sprintf("文字数: %d", res.Basic.CharCount),
			fmt.Sprintf("正確率: %.0f%%", res.Basic.Accuracy),
		}
	case typing.KindAdvanced:
		if len(res.Themes) == 0 {
			return []string{typing.NoRecord}
		}
		lines := []string{"級: " + res.Grade}
		for _, t := range res.Themes {
			lines = append(lines, t.Theme+": "+t.Level)
		}
		if avg, ok := typing.AverageLevel(res.Themes); ok {
			lines = append(lines, fmt.Sprintf("平均レベル: %.1f / %d", avg, typing.LevelCount))
		}
		return lines
	default:
		return []string{orNoRecord(res.Raw)}
	}
}

func orNoRecord(s string) string {
	if s == "" {
		return typing.NoRecord
	}
	return s
}
