package sheet

import (
	"bytes"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Sheet geometry. Width is fixed; height grows with the content so long
// comments never clip.
const (
	sheetWidth = 900
	margin     = 40.0
	lineHeight = 26.0
	headerGap  = 16.0
	// commentWidth is the wrap width in runes. Japanese glyphs are full
	// width at the sheet's point size, so this keeps lines inside the
	// drawable area.
	commentWidth = 46
)

// Render rasterizes a layout to a PNG using the given face. The output is
// deterministic for a given layout and face: fixed geometry, no
// timestamps.
func Render(l Layout, face font.Face) ([]byte, error) {
	commentLines := wrapCount(l.Comment, commentWidth)
	blockLines := 0
	for _, b := range l.Blocks {
		if n := len(b.Lines) + 1; n > blockLines {
			blockLines = n
		}
	}

	// Title + student/date + info + result block + comment heading + comment.
	totalLines := 2 + len(l.Info) + blockLines + 1 + commentLines
	height := int(2*margin + float64(totalLines)*lineHeight + 4*headerGap)

	dc := gg.NewContext(sheetWidth, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)

	y := margin

	dc.DrawString(l.Title, margin, y)
	y += lineHeight + headerGap

	dc.DrawString(l.StudentName+"  "+l.Date.Format("2006年01月02日"), margin, y)
	y += lineHeight + headerGap

	for _, kv := range l.Info {
		dc.DrawString(kv.Label+": "+kv.Value, margin, y)
		y += lineHeight
	}
	y += headerGap

	// Result blocks: one column, or two side by side for a comparison.
	colWidth := (sheetWidth - 2*margin) / float64(len(l.Blocks))
	blockTop := y
	for i, b := range l.Blocks {
		x := margin + float64(i)*colWidth
		by := blockTop
		dc.DrawString("■ "+b.Heading, x, by)
		by += lineHeight
		for _, line := range b.Lines {
			dc.DrawString("  "+line, x, by)
			by += lineHeight
		}
	}
	y = blockTop + float64(blockLines)*lineHeight + headerGap

	dc.DrawString("■ コメント", margin, y)
	y += lineHeight
	for _, line := range wrapRunes(l.Comment, commentWidth) {
		dc.DrawString("  "+line, margin, y)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrapRunes breaks text into lines of at most width runes. Comments are
// mostly Japanese, so rune-count wrapping is good enough.
func wrapRunes(text string, width int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	var lines []string
	for len(runes) > width {
		lines = append(lines, string(runes[:width]))
		runes = runes[width:]
	}
	return append(lines, string(runes))
}

func wrapCount(text string, width int) int {
	return len(wrapRunes(text, width))
}
