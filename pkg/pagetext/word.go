package pagetext

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Word is an ordered run of glyphs judged to belong together. Whitespace
// words stand for the gap between two content words.
type Word struct {
	flags

	glyphs     []*Glyph
	text       []rune
	bounds     boundsCache
	whitespace bool
	line       *Line
}

// Glyphs returns the word's glyphs in paint order. The slice must not be
// modified.
func (w *Word) Glyphs() []*Glyph { return w.glyphs }

// Len returns the number of glyphs.
func (w *Word) Len() int { return len(w.glyphs) }

// Text returns the word's text, one rune per glyph.
func (w *Word) Text() string { return string(w.text) }

// IsWhitespace reports whether the word represents a gap.
func (w *Word) IsWhitespace() bool { return w.whitespace }

// IsPunctuation reports whether every glyph of a non-empty word is punctuation.
func (w *Word) IsPunctuation() bool {
	if len(w.text) == 0 {
		return false
	}
	for _, r := range w.text {
		if !IsPunctuation(r) {
			return false
		}
	}
	return true
}

// Line returns the owning line.
func (w *Word) Line() *Line { return w.line }

// Bounds returns the union of the glyph boxes; ok is false for a word with
// no glyphs.
func (w *Word) Bounds() (Rect, bool) {
	return w.bounds.get(w.unionGlyphs)
}

func (w *Word) unionGlyphs() (Rect, bool) {
	if len(w.glyphs) == 0 {
		return Rect{}, false
	}
	r := w.glyphs[0].Bounds
	for _, g := range w.glyphs[1:] {
		r = r.Union(g.Bounds)
	}
	return r, true
}

// Path returns the word's bounds mapped through t. It is rebuilt on every
// call and never cached.
func (w *Word) Path(t f64.Aff3) Path {
	r, ok := w.Bounds()
	if !ok {
		return nil
	}
	return r.Path(t)
}

// Contains reports whether the point, given in the space of t, hits the word.
func (w *Word) Contains(t f64.Aff3, pt Point) bool {
	return w.Path(t).Contains(pt)
}

// Intersects reports whether r, given in the space of t, overlaps the word.
func (w *Word) Intersects(t f64.Aff3, r Rect) bool {
	return w.Path(t).Intersects(r)
}

func (w *Word) add(g *Glyph) {
	g.word = w
	w.glyphs = append(w.glyphs, g)
	w.text = append(w.text, g.Codepoint)
	w.bounds.extend(g.Bounds)
	if w.line != nil {
		w.line.bounds.extend(g.Bounds)
	}
}

func (w *Word) last() *Glyph {
	if len(w.glyphs) == 0 {
		return nil
	}
	return w.glyphs[len(w.glyphs)-1]
}

// SelectAll selects the word and all of its glyphs.
func (w *Word) SelectAll() {
	w.markAllSelected()
	for _, g := range w.glyphs {
		g.selected = true
	}
	w.propagateSelected()
}

// SelectGlyphs selects glyphs [from, to) and propagates the hint upwards.
// The range is clamped to the word; an empty range changes nothing.
func (w *Word) SelectGlyphs(from, to int) {
	from = max(from, 0)
	to = min(to, len(w.glyphs))
	if from >= to {
		return
	}
	for _, g := range w.glyphs[from:to] {
		g.selected = true
	}
	w.glyphsSelected()
}

func (w *Word) selectGlyph(g *Glyph) {
	g.selected = true
	w.glyphsSelected()
}

// glyphsSelected updates the word flags after glyph selection; the word
// counts as selected once all of its glyphs are.
func (w *Word) glyphsSelected() {
	w.hasSelected = true
	w.selected = true
	for _, g := range w.glyphs {
		if !g.selected {
			w.selected = false
			break
		}
	}
	w.propagateSelected()
}

// ClearSelected deselects the word and its glyphs. The hints of the owning
// line and trees are recomputed.
func (w *Word) ClearSelected() {
	w.resetSelected()
	if w.line != nil {
		w.line.refreshSelected()
	}
}

func (w *Word) resetSelected() {
	w.clearSelected()
	for _, g := range w.glyphs {
		g.selected = false
	}
}

// Highlight marks the word and its glyphs highlighted.
func (w *Word) Highlight() {
	w.highlighted = true
	w.hasHighlighted = true
	for _, g := range w.glyphs {
		g.highlighted = true
	}
	if w.line != nil {
		w.line.propagateHighlighted()
	}
}

// ClearHighlighted removes the highlight from the word and its glyphs.
func (w *Word) ClearHighlighted() {
	w.resetHighlighted()
	if w.line != nil {
		w.line.refreshHighlighted()
	}
}

func (w *Word) resetHighlighted() {
	w.clearHighlighted()
	for _, g := range w.glyphs {
		g.highlighted = false
	}
}

// SelectedText returns the whole text of a selected word, or the text of
// its selected glyphs.
func (w *Word) SelectedText() string {
	if w.selected {
		return w.Text()
	}
	if !w.hasSelected {
		return ""
	}
	out := make([]rune, 0, len(w.glyphs))
	for _, g := range w.glyphs {
		if g.selected {
			out = append(out, g.Codepoint)
		}
	}
	return string(out)
}

func (w *Word) propagateSelected() {
	if w.line != nil {
		w.line.propagateSelected()
	}
}

func (w *Word) transform(t f64.Aff3) {
	for _, g := range w.glyphs {
		g.transform(t)
	}
	w.bounds.invalidate()
	w.bounds.refresh(w.unionGlyphs)
}

// spaceGap runs the boundary test between two consecutive glyph boxes and
// returns the gap when it is wide enough to read as a space.
func spaceGap(prev, next Rect, fraction float64) (float64, bool) {
	gap := next.X - prev.MaxX()
	if gap <= 0 {
		return 0, false
	}
	return gap, gap > prev.W/fraction
}

// MaxSpaceRun caps the synthetic glyphs of one whitespace word. Near-zero
// glyph widths would otherwise turn a small gap into millions of spaces.
const MaxSpaceRun = 64

// newSpaceWord materializes a gap as a whitespace word of evenly sized
// space glyphs, sitting on the previous glyph's baseline.
func newSpaceWord(prev, next *Glyph, gap float64) *Word {
	half := math.Max(prev.Bounds.W, next.Bounds.W) / 2
	spaces := 1
	if half > 0 {
		// Clamped as a float so the conversion stays in range.
		spaces = max(1, int(math.Min(math.Floor(gap/half), MaxSpaceRun)))
	}
	width := gap / float64(spaces)
	start := prev.Bounds.MaxX()

	w := &Word{whitespace: true}
	for i := 0; i < spaces; i++ {
		w.add(&Glyph{
			Codepoint: ' ',
			Bounds: Rect{
				X: start + float64(i)*width,
				Y: prev.Bounds.Y,
				W: width,
				H: prev.Bounds.H,
			},
			Baseline:  prev.Baseline,
			synthetic: true,
		})
	}
	return w
}
