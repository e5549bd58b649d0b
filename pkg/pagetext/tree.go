package pagetext

import (
	"slices"
	"strings"

	"golang.org/x/image/math/f64"
)

// LayerID identifies an optional content group.
type LayerID string

// VisibilityFunc reports whether an optional content group is currently
// visible. It is owned by the optional content manager; the tree only reads it.
type VisibilityFunc func(LayerID) bool

// Option configures a Tree at construction.
type Option func(*Tree)

// WithVisibility sets the layer visibility predicate.
func WithVisibility(fn VisibilityFunc) Option {
	return func(t *Tree) {
		t.visible = fn
	}
}

// Tree is the text model of a page, or of one optional content layer of a
// page. The base content lives in Lines; each layer has its own sub-tree.
type Tree struct {
	flags

	cfg     Config
	visible VisibilityFunc // Root only
	parent  *Tree

	lines   []*Line
	current *Line // Line receiving glyphs; joins lines with its first word
	word    *Word // Open word of the current line

	layers     map[LayerID]*Tree
	layerOrder []LayerID
}

// New returns an empty tree using segmentation policy cfg.
func New(cfg Config, opts ...Option) *Tree {
	t := &Tree{
		cfg:    cfg,
		layers: make(map[LayerID]*Tree),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Config returns the tree's segmentation policy.
func (t *Tree) Config() Config { return t.cfg }

// SetVisibility replaces the layer visibility predicate. A nil predicate
// makes every layer visible.
func (t *Tree) SetVisibility(fn VisibilityFunc) {
	t.root().visible = fn
}

// IsLayerVisible consults the visibility predicate for id.
func (t *Tree) IsLayerVisible(id LayerID) bool {
	fn := t.root().visible
	if fn == nil {
		return true
	}
	return fn(id)
}

func (t *Tree) root() *Tree {
	r := t
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Parent returns the tree owning this layer sub-tree, nil for a page tree.
func (t *Tree) Parent() *Tree { return t.parent }

// Lines returns the base lines in insertion order. The slice must not be
// modified.
func (t *Tree) Lines() []*Line { return t.lines }

// Layers returns the layer ids in the order their sub-trees were created.
func (t *Tree) Layers() []LayerID { return slices.Clone(t.layerOrder) }

// Layer returns the sub-tree of id.
func (t *Tree) Layer(id LayerID) (*Tree, bool) {
	sub, ok := t.layers[id]
	return sub, ok
}

func (t *Tree) layer(id LayerID) *Tree {
	if sub, ok := t.layers[id]; ok {
		return sub
	}
	sub := &Tree{
		cfg:    t.cfg,
		parent: t,
		layers: make(map[LayerID]*Tree),
	}
	t.layers[id] = sub
	t.layerOrder = append(t.layerOrder, id)
	return sub
}

// Ingest adds one glyph in paint order. With active layers the glyph goes
// to the sub-tree of the first one, recursively for the rest.
func (t *Tree) Ingest(g Glyph, active []LayerID) {
	for len(active) > 0 {
		t = t.layer(active[0])
		active = active[1:]
	}
	t.append(&g)
}

func (t *Tree) append(g *Glyph) {
	if t.current == nil {
		t.current = &Line{tree: t}
	}
	line := t.current

	switch {
	case IsRawWhitespace(g.Codepoint):
		if t.word == nil || !t.word.whitespace {
			t.word = &Word{whitespace: true}
			line.addWord(t.word)
		}
	case t.word == nil || t.word.whitespace:
		t.word = &Word{}
		line.addWord(t.word)
	default:
		prev := t.word.last()
		if gap, ok := spaceGap(prev.Bounds, g.Bounds, t.cfg.spaceFraction()); ok {
			line.addWord(newSpaceWord(prev, g, gap))
			t.word = &Word{}
			line.addWord(t.word)
		}
	}
	t.word.add(g)
}

// NewLine closes the current line of the tree and of every layer sub-tree.
// A line without words stays open, so blank lines never accumulate.
func (t *Tree) NewLine() {
	if t.current != nil && len(t.current.words) > 0 {
		t.current = nil
		t.word = nil
	}
	for _, id := range t.layerOrder {
		t.layers[id].NewLine()
	}
}

// VisibleLines returns the base lines followed by the visible lines of each
// visible layer, in layer creation order. The tree is not modified.
func (t *Tree) VisibleLines() []*Line {
	lines := slices.Clone(t.lines)
	for _, id := range t.layerOrder {
		if t.IsLayerVisible(id) {
			lines = append(lines, t.layers[id].VisibleLines()...)
		}
	}
	return lines
}

// Text returns the plain-text serialization of the visible lines: each
// line's text followed by a line feed.
func (t *Tree) Text() string {
	var b strings.Builder
	for _, l := range t.VisibleLines() {
		b.WriteString(l.Text())
		b.WriteByte('\n')
	}
	return b.String()
}

// SelectedText returns the selected text of the base lines in page order
// (top-to-bottom, then left-to-right), then that of each visible layer.
// Insertion order is left untouched.
func (t *Tree) SelectedText() string {
	var b strings.Builder
	lines := slices.Clone(t.lines)
	slices.SortStableFunc(lines, comparePosition)
	for _, l := range lines {
		b.WriteString(l.SelectedText())
	}
	for _, id := range t.layerOrder {
		if t.IsLayerVisible(id) {
			b.WriteString(t.layers[id].SelectedText())
		}
	}
	return b.String()
}

// SelectAll selects every word and glyph of the tree and its layers.
func (t *Tree) SelectAll() {
	t.markAllSelected()
	for _, l := range t.lines {
		l.SelectAll()
	}
	for _, id := range t.layerOrder {
		t.layers[id].SelectAll()
	}
	if t.parent != nil {
		t.parent.propagateSelected()
	}
}

// ClearSelected resets every selection flag at every level. The hints of
// the owning trees are recomputed.
func (t *Tree) ClearSelected() {
	t.resetSelected()
	if t.parent != nil {
		t.parent.refreshSelected()
	}
}

// ClearHighlighted resets every highlight flag at every level. The hints of
// the owning trees are recomputed.
func (t *Tree) ClearHighlighted() {
	t.resetHighlighted()
	if t.parent != nil {
		t.parent.refreshHighlighted()
	}
}

func (t *Tree) resetSelected() {
	t.clearSelected()
	for _, l := range t.lines {
		l.resetSelected()
	}
	for _, id := range t.layerOrder {
		t.layers[id].resetSelected()
	}
}

func (t *Tree) resetHighlighted() {
	t.clearHighlighted()
	for _, l := range t.lines {
		l.resetHighlighted()
	}
	for _, id := range t.layerOrder {
		t.layers[id].resetHighlighted()
	}
}

// refreshSelected recomputes the selection hint from the children after
// one of them was cleared, then walks up to the page tree.
func (t *Tree) refreshSelected() {
	for p := t; p != nil; p = p.parent {
		p.selected = false
		p.hasSelected = false
		for _, l := range p.lines {
			if l.hasSelected {
				p.hasSelected = true
				break
			}
		}
		for _, sub := range p.layers {
			if sub.hasSelected {
				p.hasSelected = true
				break
			}
		}
	}
}

func (t *Tree) refreshHighlighted() {
	for p := t; p != nil; p = p.parent {
		p.highlighted = false
		p.hasHighlighted = false
		for _, l := range p.lines {
			if l.hasHighlighted {
				p.hasHighlighted = true
				break
			}
		}
		for _, sub := range p.layers {
			if sub.hasHighlighted {
				p.hasHighlighted = true
				break
			}
		}
	}
}

func (t *Tree) propagateSelected() {
	for p := t; p != nil; p = p.parent {
		p.hasSelected = true
	}
}

func (t *Tree) propagateHighlighted() {
	for p := t; p != nil; p = p.parent {
		p.hasHighlighted = true
	}
}

// WordAt returns the first visible word hit by the point, given in the
// space of t.
func (t *Tree) WordAt(tr f64.Aff3, pt Point) *Word {
	for _, l := range t.VisibleLines() {
		if w := l.WordAt(tr, pt); w != nil {
			return w
		}
	}
	return nil
}

// Contains reports whether any visible word is hit by the point.
func (t *Tree) Contains(tr f64.Aff3, pt Point) bool {
	return t.WordAt(tr, pt) != nil
}

// Intersects reports whether any visible word overlaps r.
func (t *Tree) Intersects(tr f64.Aff3, r Rect) bool {
	for _, l := range t.VisibleLines() {
		if l.Intersects(tr, r) {
			return true
		}
	}
	return false
}

// SelectIntersecting selects every visible glyph overlapping r, given in
// the space of tr, and returns how many were selected.
func (t *Tree) SelectIntersecting(tr f64.Aff3, r Rect) int {
	n := 0
	for _, l := range t.VisibleLines() {
		for _, w := range l.words {
			if !w.Intersects(tr, r) {
				continue
			}
			for _, g := range w.glyphs {
				if g.Intersects(tr, r) {
					w.selectGlyph(g)
					n++
				}
			}
		}
	}
	return n
}

// ApplyTransform re-expresses every glyph of the tree and its layers
// through t. Cached bounds are invalidated and recomputed before it returns.
func (t *Tree) ApplyTransform(tr f64.Aff3) {
	for _, l := range t.lines {
		l.transform(tr)
	}
	for _, id := range t.layerOrder {
		t.layers[id].ApplyTransform(tr)
	}
}

// Merge moves the content of form, a tree built from a nested form in its
// own coordinate space, into t after mapping it through tr. The receiver's
// current line is closed first. form must not be used afterwards.
func (t *Tree) Merge(form *Tree, tr f64.Aff3) {
	form.ApplyTransform(tr)
	t.adopt(form)
}

func (t *Tree) adopt(form *Tree) {
	t.NewLine()
	for _, l := range form.lines {
		l.tree = t
		t.lines = append(t.lines, l)
		if l.hasSelected {
			t.propagateSelected()
		}
		if l.hasHighlighted {
			t.propagateHighlighted()
		}
	}
	for _, id := range form.layerOrder {
		t.layer(id).adopt(form.layers[id])
	}
	form.lines = nil
	form.current = nil
	form.word = nil
	form.layers = make(map[LayerID]*Tree)
	form.layerOrder = nil
}
