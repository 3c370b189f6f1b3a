// Package text converts <text> elements into <path> elements.
//
// Text is split into bidirectional runs with golang.org/x/text/unicode/bidi,
// shaped with the HarfBuzz port from go-text/typesetting, and the glyph
// outlines of the shaped runs are loaded with golang.org/x/image/font/sfnt.
// The resulting outline replaces the text element in the document so the
// offset pipeline can treat it like any other path.
//
// # Example usage
//
//	conv, err := text.NewConverter(doc, text.WithSize(24))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pathEl, cmd, err := conv.Convert(textEl)
//
// The default font is Go Regular. Use [WithFont] to supply other TrueType or
// OpenType data.
package text
