package pdfoverlay

import (
	"log/slog"
)

// Config holds user options for rendering page text to PDF
type Config struct {
	Debug     bool         // Draw text in red with word boxes instead of invisibly
	Force     bool         // Render onto a source PDF that already carries the text layer
	LayerName string       // Base name of the text layer (page number will be appended)
	StartPage int          // First page of Source to import
	Source    []byte       // Existing PDF whose pages are imported under the text
	Logger    *slog.Logger // nil means slog.Default()
	Font      FontConfig

	SelectionColor Color   // Fill for selected glyphs
	HighlightColor Color   // Fill for highlighted glyphs
	MarkAlpha      float64 // Opacity of selection and highlight fills
}

// Color is an RGB triple in the 0-255 range.
type Color struct {
	R, G, B int
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		LayerName:      "Page Text", // Will be formatted as "Page Text (Page X)" in the final PDF
		StartPage:      1,
		Font:           DefaultFont,
		SelectionColor: Color{R: 51, G: 153, B: 255},
		HighlightColor: Color{R: 255, G: 230, B: 0},
		MarkAlpha:      0.35,
	}
}

// FontConfig contains font settings for text rendering
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont sets the default font to Helvetica, one of the core PDF fonts
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
