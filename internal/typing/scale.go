package typing

// levelRanks is the fixed ordinal scale for advanced-grade skill levels,
// ascending from the lowest rank to the fastest. Positions are 1-based.
var levelRanks = []string{
	"E-", "E", "E+",
	"D-", "D", "D+",
	"C-", "C", "C+",
	"B-", "B", "B+",
	"A-", "A", "A+",
	"S", "Good!", "Fast",
}

var levelValues = func() map[string]int {
	m := make(map[string]int, len(levelRanks))
	for i, label := range levelRanks {
		m[label] = i + 1
	}
	return m
}()

// LevelCount is the number of ranks on the ordinal scale.
const LevelCount = 18

// LevelValue converts a level label to its 1..18 ordinal value.
func LevelValue(label string) (int, bool) {
	v, ok := levelValues[label]
	return v, ok
}

// LevelLabel returns the label for a 1..18 ordinal value.
func LevelLabel(value int) (string, bool) {
	if value < 1 || value > len(levelRanks) {
		return "", false
	}
	return levelRanks[value-1], true
}

// AverageLevel converts each theme's level to its ordinal value and
// averages them. Themes with unknown labels are skipped; ok is false
// when no theme could be converted.
func AverageLevel(themes []ThemeScore) (float64, bool) {
	sum, n := 0, 0
	for _, t := range themes {
		if v, ok := levelValues[t.Level]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
