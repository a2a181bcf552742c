// Package stats derives the per-student dashboard view model from class
// records. The transform is pure: no I/O, and identical input always
// yields identical output, so it can run on every request without caching.
package stats

import (
	"sort"
	"time"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/typing"
)

// WindowCounts holds record counts over trailing day windows.
type WindowCounts struct {
	Last7  int `json:"last_7"`
	Last30 int `json:"last_30"`
	Last90 int `json:"last_90"`
}

// ProgressPoint is one chronological typing-progress sample. Value is the
// character count for basic grades and the theme-averaged ordinal level
// for advanced grades.
type ProgressPoint struct {
	Date  time.Time `json:"date"`
	Grade string    `json:"grade"`
	Value float64   `json:"value"`
}

// BasicPoint is one basic-grade sample.
type BasicPoint struct {
	Date      time.Time `json:"date"`
	CharCount int       `json:"char_count"`
	Accuracy  float64   `json:"accuracy"`
}

// LevelPoint is one advanced-grade sample on the ordinal scale.
type LevelPoint struct {
	Date  time.Time `json:"date"`
	Level float64   `json:"level"`
}

// GradeGroup collects the typing points of one grade. Exactly one of the
// point slices is populated depending on whether the grade is basic.
type GradeGroup struct {
	Grade  string       `json:"grade"`
	Basic  bool         `json:"basic"`
	Points []BasicPoint `json:"points,omitempty"`
	Levels []LevelPoint `json:"levels,omitempty"`
}

// ThemeSeries is the chronological level series of one advanced theme.
type ThemeSeries struct {
	Grade  string       `json:"grade"`
	Theme  string       `json:"theme"`
	Points []LevelPoint `json:"points"`
}

// Summary is the derived view model for one student.
type Summary struct {
	Counts       WindowCounts        `json:"counts"`
	Progress     []ProgressPoint     `json:"progress"`
	Grades       []GradeGroup        `json:"grades"`
	ThemeSeries  []ThemeSeries       `json:"theme_series"`
	WritingSteps [3]int              `json:"writing_steps"`
	Recent       []model.ClassRecord `json:"recent"`
}

// recentLimit caps the most-recent-records list.
const recentLimit = 5

// Build derives the Summary for one student's records. The input order is
// irrelevant: records are sorted date-ascending first (stable, with id as
// the final tie-break so equal dates produce a deterministic order).
// Records whose typing payload cannot be decoded contribute no typing
// points but still count toward windows and the recent list.
func Build(records []model.ClassRecord, now time.Time) Summary {
	sorted := make([]model.ClassRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].TaughtOn.Equal(sorted[j].TaughtOn) {
			return sorted[i].TaughtOn.Before(sorted[j].TaughtOn)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var s Summary
	s.Counts = countWindows(sorted, now)

	groupIndex := make(map[string]int)
	themeIndex := make(map[[2]string]int)

	for _, rec := range sorted {
		if step, ok := typing.WritingStep(rec.WritingStep, rec.WritingResult); ok {
			s.WritingSteps[step-1]++
		}

		res := typing.Decode(rec.TypingResult)
		if !res.HasData() {
			continue
		}

		switch res.Kind {
		case typing.KindBasic:
			point := BasicPoint{Date: rec.TaughtOn, CharCount: res.Basic.CharCount, Accuracy: res.Basic.Accuracy}
			idx, ok := groupIndex[res.Grade]
			if !ok {
				idx = len(s.Grades)
				groupIndex[res.Grade] = idx
				s.Grades = append(s.Grades, GradeGroup{Grade: res.Grade, Basic: true})
			}
			s.Grades[idx].Points = append(s.Grades[idx].Points, point)
			s.Progress = append(s.Progress, ProgressPoint{Date: rec.TaughtOn, Grade: res.Grade, Value: float64(res.Basic.CharCount)})

		case typing.KindAdvanced:
			avg, ok := typing.AverageLevel(res.Themes)
			if ok {
				idx, seen := groupIndex[res.Grade]
				if !seen {
					idx = len(s.Grades)
					groupIndex[res.Grade] = idx
					s.Grades = append(s.Grades, GradeGroup{Grade: res.Grade})
				}
				s.Grades[idx].Levels = append(s.Grades[idx].Levels, LevelPoint{Date: rec.TaughtOn, Level: avg})
				s.Progress = append(s.Progress, ProgressPoint{Date: rec.TaughtOn, Grade: res.Grade, Value: avg})
			}

			for _, theme := range res.Themes {
				lv, known := typing.LevelValue(theme.Level)
				if !known {
					continue
				}
				key := [2]string{res.Grade, theme.Theme}
				idx, seen := themeIndex[key]
				if !seen {
					idx = len(s.ThemeSeries)
					themeIndex[key] = idx
					s.ThemeSeries = append(s.ThemeSeries, ThemeSeries{Grade: res.Grade, Theme: theme.Theme})
				}
				s.ThemeSeries[idx].Points = append(s.ThemeSeries[idx].Points, LevelPoint{Date: rec.TaughtOn, Level: float64(lv)})
			}
		}
	}

	// Most recent records, newest first.
	n := len(sorted)
	limit := recentLimit
	if n < limit {
		limit = n
	}
	for i := 0; i < limit; i++ {
		s.Recent = append(s.Recent, sorted[n-1-i])
	}

	return s
}

func countWindows(sorted []model.ClassRecord, now time.Time) WindowCounts {
	var c WindowCounts
	d7 := now.AddDate(0, 0, -7)
	d30 := now.AddDate(0, 0, -30)
	d90 := now.AddDate(0, 0, -90)

	for _, rec := range sorted {
		if rec.TaughtOn.After(d90) {
			c.Last90++
			if rec.TaughtOn.After(d30) {
				c.Last30++
				if rec.TaughtOn.After(d7) {
					c.Last7++
				}
			}
		}
	}
	return c
}
