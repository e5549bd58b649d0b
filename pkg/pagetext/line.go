package pagetext

import (
	"strings"

	"golang.org/x/image/math/f64"
)

// Line is an ordered sequence of words on one visual baseline, kept in
// paint order.
type Line struct {
	flags

	words  []*Word
	bounds boundsCache
	tree   *Tree
}

// Words returns the line's words in paint order. The slice must not be
// modified.
func (l *Line) Words() []*Word { return l.words }

// Tree returns the tree owning the line.
func (l *Line) Tree() *Tree { return l.tree }

// Text returns the concatenated text of all words.
func (l *Line) Text() string {
	var b strings.Builder
	for _, w := range l.words {
		b.WriteString(w.Text())
	}
	return b.String()
}

// Bounds returns the union of the word boxes.
func (l *Line) Bounds() (Rect, bool) {
	return l.bounds.get(l.unionWords)
}

func (l *Line) unionWords() (Rect, bool) {
	var r Rect
	found := false
	for _, w := range l.words {
		wr, ok := w.Bounds()
		if !ok {
			continue
		}
		if !found {
			r, found = wr, true
			continue
		}
		r = r.Union(wr)
	}
	return r, found
}

// WordAt returns the first word hit by the point, given in the space of t.
func (l *Line) WordAt(t f64.Aff3, pt Point) *Word {
	for _, w := range l.words {
		if w.Contains(t, pt) {
			return w
		}
	}
	return nil
}

// Contains reports whether any word of the line is hit by the point.
func (l *Line) Contains(t f64.Aff3, pt Point) bool {
	return l.WordAt(t, pt) != nil
}

// Intersects reports whether any word of the line overlaps r.
func (l *Line) Intersects(t f64.Aff3, r Rect) bool {
	for _, w := range l.words {
		if w.Intersects(t, r) {
			return true
		}
	}
	return false
}

// addWord appends w. A line joins its tree's line list with its first word.
func (l *Line) addWord(w *Word) {
	w.line = l
	l.words = append(l.words, w)
	if r, ok := w.Bounds(); ok {
		l.bounds.extend(r)
	}
	if len(l.words) == 1 && l.tree != nil {
		l.tree.lines = append(l.tree.lines, l)
	}
}

// SelectAll selects every word and glyph of the line.
func (l *Line) SelectAll() {
	l.markAllSelected()
	for _, w := range l.words {
		w.markAllSelected()
		for _, g := range w.glyphs {
			g.selected = true
		}
	}
	l.propagateSelected()
}

// ClearSelected deselects the line and everything below it. The hints of
// the owning trees are recomputed.
func (l *Line) ClearSelected() {
	l.resetSelected()
	if l.tree != nil {
		l.tree.refreshSelected()
	}
}

// ClearHighlighted removes every highlight from the line.
func (l *Line) ClearHighlighted() {
	l.resetHighlighted()
	if l.tree != nil {
		l.tree.refreshHighlighted()
	}
}

func (l *Line) resetSelected() {
	l.clearSelected()
	for _, w := range l.words {
		w.resetSelected()
	}
}

func (l *Line) resetHighlighted() {
	l.clearHighlighted()
	for _, w := range l.words {
		w.resetHighlighted()
	}
}

// refreshSelected recomputes the line's hint after a word was cleared.
func (l *Line) refreshSelected() {
	l.selected = false
	l.hasSelected = false
	for _, w := range l.words {
		if w.hasSelected {
			l.hasSelected = true
			break
		}
	}
	if l.tree != nil {
		l.tree.refreshSelected()
	}
}

func (l *Line) refreshHighlighted() {
	l.highlighted = false
	l.hasHighlighted = false
	for _, w := range l.words {
		if w.hasHighlighted {
			l.hasHighlighted = true
			break
		}
	}
	if l.tree != nil {
		l.tree.refreshHighlighted()
	}
}

// SelectedText returns the selected text of the words followed by a line
// feed, or "" when nothing on the line is selected.
func (l *Line) SelectedText() string {
	if !l.selected && !l.hasSelected {
		return ""
	}
	var b strings.Builder
	for _, w := range l.words {
		b.WriteString(w.SelectedText())
	}
	if b.Len() == 0 {
		return ""
	}
	b.WriteByte('\n')
	return b.String()
}

func (l *Line) propagateSelected() {
	l.hasSelected = true
	if l.tree != nil {
		l.tree.propagateSelected()
	}
}

func (l *Line) propagateHighlighted() {
	l.hasHighlighted = true
	if l.tree != nil {
		l.tree.propagateHighlighted()
	}
}

func (l *Line) transform(t f64.Aff3) {
	for _, w := range l.words {
		w.transform(t)
	}
	l.bounds.invalidate()
	l.bounds.refresh(l.unionWords)
}

// comparePosition orders lines top-to-bottom, then left-to-right.
func comparePosition(a, b *Line) int {
	ra, _ := a.Bounds()
	rb, _ := b.Bounds()
	switch {
	case ra.Y < rb.Y:
		return -1
	case ra.Y > rb.Y:
		return 1
	case ra.X < rb.X:
		return -1
	case ra.X > rb.X:
		return 1
	}
	return 0
}
