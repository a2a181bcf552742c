package typing

import "testing"

func TestDecodeBasic(t *testing.T) {
	res := Decode(`{"grade":"10級","data":{"basicData":{"charCount":"120","accuracy":"95%"}}}`)

	if res.Kind != KindBasic {
		t.Fatalf("Kind = %v, want KindBasic", res.Kind)
	}
	if res.Grade != "10級" {
		t.Errorf("Grade = %q, want 10級", res.Grade)
	}
	if res.Basic == nil {
		t.Fatal("Basic is nil")
	}
	if res.Basic.CharCount != 120 {
		t.Errorf("CharCount = %d, want 120", res.Basic.CharCount)
	}
	if res.Basic.Accuracy != 95 {
		t.Errorf("Accuracy = %v, want 95", res.Basic.Accuracy)
	}
}

func TestDecodeBasicNumericFields(t *testing.T) {
	res := Decode(`{"grade":"11級","data":{"basicData":{"charCount":80,"accuracy":88.5}}}`)

	if res.Kind != KindBasic || res.Basic == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Basic.CharCount != 80 || res.Basic.Accuracy != 88.5 {
		t.Errorf("Basic = %+v, want {80 88.5}", res.Basic)
	}
}

func TestDecodeAdvanced(t *testing.T) {
	res := Decode(`{"grade":"9級","data":{"advancedData":[{"theme":"A","level":"B+"}]}}`)

	if res.Kind != KindAdvanced {
		t.Fatalf("Kind = %v, want KindAdvanced", res.Kind)
	}
	if len(res.Themes) != 1 {
		t.Fatalf("Themes = %v, want one entry", res.Themes)
	}
	if res.Themes[0].Theme != "A" || res.Themes[0].Level != "B+" {
		t.Errorf("Themes[0] = %+v, want {A B+}", res.Themes[0])
	}

	avg, ok := AverageLevel(res.Themes)
	if !ok {
		t.Fatal("AverageLevel not ok")
	}
	if avg != 12 {
		t.Errorf("AverageLevel = %v, want 12 (ordinal of B+)", avg)
	}
}

func TestDecodeLegacy(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"free text", "ホームポジション練習"},
		{"broken json", `{"grade":"10級",`},
		{"json without grade", `{"data":{"basicData":{"charCount":10}}}`},
		{"empty", ""},
		{"garbage braces", `{{{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Decode(tc.raw)
			if res.Kind != KindLegacy {
				t.Errorf("Kind = %v, want KindLegacy", res.Kind)
			}
			if res.HasData() {
				t.Error("HasData() = true, want false")
			}
			if res.Raw != tc.raw {
				t.Errorf("Raw = %q, want %q", res.Raw, tc.raw)
			}
		})
	}
}

func TestDecodeBasicGradeWithoutData(t *testing.T) {
	res := Decode(`{"grade":"12級","data":{}}`)

	if res.Kind != KindBasic {
		t.Fatalf("Kind = %v, want KindBasic", res.Kind)
	}
	if res.HasData() {
		t.Error("HasData() = true for payload without basicData")
	}
	if res.Display() != NoRecord {
		t.Errorf("Display() = %q, want %q", res.Display(), NoRecord)
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"basic", `{"grade":"10級","data":{"basicData":{"charCount":120,"accuracy":95}}}`, "10級 文字数120 正確率95%"},
		{"advanced", `{"grade":"8級","data":{"advancedData":[{"theme":"記号","level":"A"},{"theme":"数字","level":"B"}]}}`, "8級 記号:A 数字:B"},
		{"legacy text", "手書き練習", "手書き練習"},
		{"empty", "", NoRecord},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decode(tc.raw).Display(); got != tc.want {
				t.Errorf("Display() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLevelValue(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"E-", 1},
		{"D", 5},
		{"B+", 12},
		{"A+", 15},
		{"S", 16},
		{"Fast", 18},
	}

	for _, tc := range cases {
		v, ok := LevelValue(tc.label)
		if !ok {
			t.Errorf("LevelValue(%q) not ok", tc.label)
			continue
		}
		if v != tc.want {
			t.Errorf("LevelValue(%q) = %d, want %d", tc.label, v, tc.want)
		}
	}

	if _, ok := LevelValue("Z"); ok {
		t.Error("LevelValue(Z) ok, want not ok")
	}
}

func TestAverageLevelSkipsUnknown(t *testing.T) {
	themes := []ThemeScore{
		{Theme: "A", Level: "B"},  // 11
		{Theme: "B", Level: "??"}, // skipped
		{Theme: "C", Level: "A-"}, // 13
	}

	avg, ok := AverageLevel(themes)
	if !ok {
		t.Fatal("AverageLevel not ok")
	}
	if avg != 12 {
		t.Errorf("AverageLevel = %v, want 12", avg)
	}

	if _, ok := AverageLevel([]ThemeScore{{Theme: "A", Level: "??"}}); ok {
		t.Error("AverageLevel ok with only unknown labels")
	}
}

func TestWritingStep(t *testing.T) {
	two := 2
	zero := 0

	cases := []struct {
		name       string
		structured *int
		text       string
		want       int
		ok         bool
	}{
		{"structured wins", &two, "STEP3まで完了", 2, true},
		{"pattern fallback", nil, "今日はSTEP1を練習", 1, true},
		{"case insensitive", nil, "step 3 done", 3, true},
		{"out of range structured falls through", &zero, "STEP2", 2, true},
		{"no step", nil, "自由練習", 0, false},
		{"step out of range in text", nil, "STEP4", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := WritingStep(tc.structured, tc.text)
			if ok != tc.ok || got != tc.want {
				t.Errorf("WritingStep() = (%d, %v), want (%d, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}
