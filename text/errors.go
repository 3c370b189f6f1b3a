package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNotText is returned when Convert is given a non-text element.
	ErrNotText = errors.New("text: element is not a text element")

	// ErrEmptyText is returned for text elements without visible content.
	ErrEmptyText = errors.New("text: element has no content")

	// ErrNoGlyphs is returned when shaping produced no outlines.
	ErrNoGlyphs = errors.New("text: no glyph outlines")
)

// GlyphError reports a glyph whose outline could not be loaded.
type GlyphError struct {
	GID uint32
	Err error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("text: load glyph %d: %v", e.GID, e.Err)
}

func (e *GlyphError) Unwrap() error { return e.Err }
