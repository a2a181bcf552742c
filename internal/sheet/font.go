package sheet

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Face geometry is fixed so a given font file always produces the same
// raster for the same layout.
const (
	fontSize = 16
	fontDPI  = 72
)

// requiredRunes must all map to real glyphs in a usable sheet font.
// Sheets are written in Japanese, so a Latin-only font would render
// every line as the missing-glyph box.
var requiredRunes = []rune{'あ', 'カ', '級', '授', '業'}

// DefaultFontPaths lists well-known install locations of Japanese-capable
// fonts, tried in order when no explicit path is configured.
var DefaultFontPaths = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJKjp-Regular.otf",
	"/usr/share/fonts/truetype/noto/NotoSansCJKjp-Regular.ttf",
	"/usr/share/fonts/opentype/ipaexfont-gothic/ipaexg.ttf",
	"/usr/share/fonts/truetype/fonts-japanese-gothic.ttf",
	"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
}

// FindFace loads the evaluation-sheet font face. With an explicit path the
// file must load; with an empty path the default locations are tried in
// order. No usable font is a startup error, not a render-time surprise.
func FindFace(path string) (font.Face, error) {
	if path != "" {
		return LoadFace(path)
	}
	for _, p := range DefaultFontPaths {
		if _, err := os.Stat(p); err == nil {
			return LoadFace(p)
		}
	}
	return nil, fmt.Errorf("no sheet font found, set SHEET_FONT_PATH to a Japanese-capable TTF/OTF (tried %s)",
		strings.Join(DefaultFontPaths, ", "))
}

// LoadFace reads a TTF/OTF/TTC file and builds the fixed sheet face. Fonts
// without Japanese glyph coverage are rejected.
func LoadFace(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}

	f, err := parseFont(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	if err := checkCoverage(f); err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
}

// parseFont handles both single fonts and collections; a .ttc yields its
// first member.
func parseFont(data []byte) (*opentype.Font, error) {
	if bytes.HasPrefix(data, []byte("ttcf")) {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		return coll.Font(0)
	}
	return opentype.Parse(data)
}

// checkCoverage verifies the font maps representative Japanese runes to
// real glyphs. Index zero is the .notdef glyph.
func checkCoverage(f *opentype.Font) error {
	var buf sfnt.Buffer
	for _, r := range requiredRunes {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return fmt.Errorf("glyph lookup for %q: %w", r, err)
		}
		if idx == 0 {
			return fmt.Errorf("no glyph for %q, a Japanese-capable font is required", r)
		}
	}
	return nil
}
