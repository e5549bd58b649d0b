package pagetext

import (
	"golang.org/x/image/math/f64"
)

// Glyph is a single positioned character in page space.
type Glyph struct {
	Codepoint rune    // Unicode code point
	Bounds    Rect    // Page-space bounding box
	Baseline  float64 // Page-space baseline Y

	synthetic   bool // Inserted by space detection, not painted
	selected    bool
	highlighted bool
	word        *Word
}

// NewGlyph returns a glyph record as produced by a content interpreter.
func NewGlyph(codepoint rune, bounds Rect, baseline float64) Glyph {
	return Glyph{
		Codepoint: codepoint,
		Bounds:    bounds,
		Baseline:  baseline,
	}
}

// Synthetic reports whether the glyph was materialized by space detection.
func (g *Glyph) Synthetic() bool { return g.synthetic }

// Selected reports whether the glyph is selected.
func (g *Glyph) Selected() bool { return g.selected }

// Highlighted reports whether the glyph is highlighted.
func (g *Glyph) Highlighted() bool { return g.highlighted }

// Word returns the word owning the glyph, nil before ingestion.
func (g *Glyph) Word() *Word { return g.word }

// Path returns the glyph's bounds mapped through t.
func (g *Glyph) Path(t f64.Aff3) Path { return g.Bounds.Path(t) }

// Contains reports whether the point, given in the space of t, hits the glyph.
func (g *Glyph) Contains(t f64.Aff3, pt Point) bool {
	return g.Path(t).Contains(pt)
}

// Intersects reports whether r, given in the space of t, overlaps the glyph.
func (g *Glyph) Intersects(t f64.Aff3, r Rect) bool {
	return g.Path(t).Intersects(r)
}

// transform maps the glyph through t. Baseline is a single Y, so it stays
// exact for translation, scale and flips only. Under rotation or shear it
// is the Y of the mapped left baseline point.
func (g *Glyph) transform(t f64.Aff3) {
	_, baseline := Apply(t, g.Bounds.X, g.Baseline)
	g.Bounds = g.Bounds.Transform(t)
	g.Baseline = baseline
}

// SplitRun lays the runes of text side by side across r in equal widths.
// Sources that only know the box of a whole string (OCR tokens, text
// showing operators) use it to produce per-glyph records.
func SplitRun(text string, r Rect, baseline float64) []Glyph {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	w := r.W / float64(len(runes))
	out := make([]Glyph, len(runes))
	for i, c := range runes {
		out[i] = NewGlyph(c, Rect{X: r.X + float64(i)*w, Y: r.Y, W: w, H: r.H}, baseline)
	}
	return out
}
