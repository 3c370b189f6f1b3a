package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// run is a directional run of text in visual order.
type run struct {
	text []rune
	rtl  bool
}

// segment splits s into bidi runs in visual order. Text the bidi algorithm
// rejects is returned as a single left-to-right run.
func segment(s string) []run {
	if s == "" {
		return nil
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return []run{{text: []rune(s)}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []run{{text: []rune(s)}}
	}

	runs := make([]run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		text := []rune(r.String())
		if len(text) == 0 {
			continue
		}
		runs = append(runs, run{text: text, rtl: r.Direction() == bidi.RightToLeft})
	}
	return runs
}

// shape shapes one run. Glyphs come back in visual order.
func (c *Converter) shape(r run, size float64) []shaping.Glyph {
	dir := di.DirectionLTR
	if r.rtl {
		dir = di.DirectionRTL
	}

	// font.Face is not safe for concurrent use; NewFace is cheap.
	face := font.NewFace(c.shaped)

	input := shaping.Input{
		Text:      r.text,
		RunStart:  0,
		RunEnd:    len(r.text),
		Direction: dir,
		Face:      face,
		Size:      floatToFixed(size),
		Script:    detectScript(r.text),
		Language:  language.NewLanguage(c.cfg.language),
	}

	hb := c.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	c.shaperPool.Put(hb)
	return out.Glyphs
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
