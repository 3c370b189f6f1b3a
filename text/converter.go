package text

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"honnef.co/go/curve"

	"github.com/gogpu/offset/document"
	"github.com/gogpu/offset/svgpath"
)

// Replacer swaps an element for another and returns the applied command.
// *document.Document implements Replacer.
type Replacer interface {
	Replace(old, repl *document.Element) (document.Command, error)
}

// textOnlyAttrs are dropped when a text element becomes a path.
var textOnlyAttrs = []string{
	"x", "y", "dx", "dy", "font-size", "font-family", "font-weight",
	"font-style", "text-anchor", "letter-spacing",
}

// Converter turns text elements into path elements.
//
// Converter is safe for concurrent use. The parsed fonts are read-only;
// HarfbuzzShaper instances and sfnt buffers are pooled because they are
// not safe for concurrent use.
type Converter struct {
	replacer Replacer
	cfg      config

	outlines *sfnt.Font
	shaped   *font.Font

	shaperPool sync.Pool
	bufPool    sync.Pool
}

// NewConverter parses the configured font and returns a Converter that
// applies replacements through r.
func NewConverter(r Replacer, opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fontData == nil {
		cfg.fontData = goregular.TTF
	}
	if len(cfg.fontData) == 0 {
		return nil, ErrEmptyFontData
	}

	outlines, err := sfnt.Parse(cfg.fontData)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	face, err := font.ParseTTF(bytes.NewReader(cfg.fontData))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}

	return &Converter{
		replacer: r,
		cfg:      cfg,
		outlines: outlines,
		shaped:   face.Font,
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		bufPool: sync.Pool{
			New: func() any { return new(sfnt.Buffer) },
		},
	}, nil
}

// Convert replaces the text element el with a path element carrying the
// outline of its glyphs. It returns the new element and the applied
// replacement command. The path keeps el's id and presentation attributes.
func (c *Converter) Convert(el *document.Element) (*document.Element, document.Command, error) {
	if el == nil || !el.IsText() {
		return nil, nil, ErrNotText
	}
	if strings.TrimSpace(el.Text) == "" {
		return nil, nil, ErrEmptyText
	}

	size := el.Float("font-size", c.cfg.size)
	bez, err := c.Outline(el.Text, size, el.Float("x", 0), el.Float("y", 0))
	if err != nil {
		return nil, nil, err
	}
	if len(bez) == 0 {
		return nil, nil, ErrNoGlyphs
	}

	attrs := make(map[string]string, len(el.Attrs)+1)
	for k, v := range el.Attrs {
		attrs[k] = v
	}
	for _, k := range textOnlyAttrs {
		delete(attrs, k)
	}
	attrs["d"] = svgpath.Format(bez)
	repl := document.NewElement(document.TagPath, attrs)

	cmd, err := c.replacer.Replace(el, repl)
	if err != nil {
		return nil, nil, fmt.Errorf("text: replace %q: %w", el.ID, err)
	}
	return repl, cmd, nil
}

// Outline returns the glyph outlines of s set at size with the baseline
// origin at (x, y). The y axis points down, as in SVG.
func (c *Converter) Outline(s string, size, x, y float64) (curve.BezPath, error) {
	var p curve.BezPath
	pen := x
	for _, r := range segment(s) {
		for _, g := range c.shape(r, size) {
			gx := pen + fixedToFloat(g.XOffset)
			gy := y - fixedToFloat(g.YOffset)
			if err := c.appendGlyph(&p, uint32(g.GlyphID), size, gx, gy); err != nil {
				return nil, err
			}
			pen += fixedToFloat(g.Advance)
		}
	}
	return p, nil
}
