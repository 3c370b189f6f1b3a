package text

// Option configures a Converter.
type Option func(*config)

// config holds Converter configuration.
type config struct {
	fontData []byte
	size     float64
	language string
}

// defaultConfig returns the default converter configuration.
func defaultConfig() config {
	return config{
		size:     16, // SVG default font size
		language: "en",
	}
}

// WithFont sets the TrueType or OpenType font used for outlines.
// The default is Go Regular.
func WithFont(data []byte) Option {
	return func(c *config) {
		c.fontData = data
	}
}

// WithSize sets the font size used when an element has no font-size
// attribute. Non-positive sizes are ignored.
func WithSize(size float64) Option {
	return func(c *config) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithLanguage sets the language tag passed to the shaper (e.g., "en", "ar").
func WithLanguage(lang string) Option {
	return func(c *config) {
		c.language = lang
	}
}
