// Package typing decodes the typing-result payload stored on class records.
//
// The stored value is either a legacy free-text string or a JSON object of
// the shape {grade, data: {basicData: {charCount, accuracy},
// advancedData: [{theme, level}]}}. Decoding happens once at the store
// boundary; consumers work with the tagged Result and never re-parse.
package typing

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags the decoded variant of a typing result.
type Kind int

const (
	// KindLegacy marks a free-text or unparseable payload. It carries no
	// chartable data and renders as the raw string (or "no record").
	KindLegacy Kind = iota
	// KindBasic marks a basic-grade payload with char count and accuracy.
	KindBasic
	// KindAdvanced marks an advanced-grade payload with per-theme levels.
	KindAdvanced
)

// basicGrades is the fixed set of grade labels scored by character count
// and accuracy. Every other grade uses the ordinal level scale.
var basicGrades = map[string]bool{
	"12級": true,
	"11級": true,
	"10級": true,
}

// IsBasicGrade reports whether the grade label belongs to the basic set.
func IsBasicGrade(grade string) bool {
	return basicGrades[grade]
}

// BasicScore holds the metrics of a basic-grade result.
type BasicScore struct {
	CharCount int     `json:"char_count"`
	Accuracy  float64 `json:"accuracy"`
}

// ThemeScore holds one sub-theme of an advanced-grade result.
type ThemeScore struct {
	Theme string `json:"theme"`
	Level string `json:"level"`
}

// Result is the decoded typing payload.
type Result struct {
	Kind   Kind         `json:"kind"`
	Grade  string       `json:"grade,omitempty"`
	Basic  *BasicScore  `json:"basic,omitempty"`
	Themes []ThemeScore `json:"themes,omitempty"`
	// Raw preserves the original payload for legacy display.
	Raw string `json:"raw,omitempty"`
}

// HasData reports whether the result carries chartable data.
func (r Result) HasData() bool {
	switch r.Kind {
	case KindBasic:
		return r.Basic != nil
	case KindAdvanced:
		return len(r.Themes) > 0
	default:
		return false
	}
}

// NoRecord is the display fallback for missing or unparseable results.
const NoRecord = "記録なし"

// Display formats the result for sheets and exports.
func (r Result) Display() string {
	switch r.Kind {
	case KindBasic:
		if r.Basic == nil {
			return NoRecord
		}
		return fmt.Sprintf("%s 文字数%d 正確率%.0f%%", r.Grade, r.Basic.CharCount, r.Basic.Accuracy)
	case KindAdvanced:
		if len(r.Themes) == 0 {
			return NoRecord
		}
		parts := make([]string, 0, len(r.Themes))
		for _, t := range r.Themes {
			parts = append(parts, t.Theme+":"+t.Level)
		}
		return r.Grade + " " + strings.Join(parts, " ")
	default:
		if strings.TrimSpace(r.Raw) == "" {
			return NoRecord
		}
		return r.Raw
	}
}

// wire mirrors the stored JSON shape. Numeric fields arrive either as
// numbers or strings depending on which form saved the record, so they
// are decoded loosely.
type wire struct {
	Grade string `json:"grade"`
	Data  struct {
		BasicData *struct {
			CharCount json.RawMessage `json:"charCount"`
			Accuracy  json.RawMessage `json:"accuracy"`
		} `json:"basicData"`
		AdvancedData []struct {
			Theme string `json:"theme"`
			Level string `json:"level"`
		} `json:"advancedData"`
	} `json:"data"`
}

// Decode parses a stored typing-result payload into a Result. It never
// fails: anything that is not a well-formed payload with a grade comes
// back as KindLegacy carrying the raw string.
func Decode(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !strings.HasPrefix(trimmed, "{") {
		return Result{Kind: KindLegacy, Raw: raw}
	}

	var w wire
	if err := json.Unmarshal([]byte(trimmed), &w); err != nil || w.Grade == "" {
		return Result{Kind: KindLegacy, Raw: raw}
	}

	if IsBasicGrade(w.Grade) {
		res := Result{Kind: KindBasic, Grade: w.Grade}
		if b := w.Data.BasicData; b != nil {
			count, okCount := looseInt(b.CharCount)
			acc, okAcc := loosePercent(b.Accuracy)
			if okCount || okAcc {
				res.Basic = &BasicScore{CharCount: count, Accuracy: acc}
			}
		}
		return res
	}

	res := Result{Kind: KindAdvanced, Grade: w.Grade}
	for _, t := range w.Data.AdvancedData {
		if t.Theme == "" && t.Level == "" {
			continue
		}
		res.Themes = append(res.Themes, ThemeScore{Theme: t.Theme, Level: t.Level})
	}
	return res
}

// looseInt parses a JSON number or numeric string.
func looseInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	s := strings.Trim(string(raw), `"`)
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// loosePercent parses a JSON number or string, tolerating a trailing "%".
func loosePercent(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	s := strings.Trim(string(raw), `"`)
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var stepPattern = regexp.MustCompile(`(?i)STEP\s*([1-3])`)

// WritingStep resolves the writing-practice step of a record. A structured
// step value wins; the "STEPn" pattern in the free text is only a fallback
// for legacy rows.
func WritingStep(structured *int, freeText string) (int, bool) {
	if structured != nil && *structured >= 1 && *structured <= 3 {
		return *structured, true
	}
	m := stepPattern.FindStringSubmatch(freeText)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	return n, true
}
