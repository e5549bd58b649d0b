package pagetext

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds a page with two base lines and one layer line.
func sample() *Tree {
	tree := New(DefaultConfig())
	ingestAll(tree, run("AB", 0, 0, 4, 10))
	ingestAll(tree, run("CD", 18, 0, 4, 10))
	tree.NewLine()
	ingestAll(tree, run("EF", 0, 20, 4, 10))
	tree.NewLine()
	ingestAll(tree, run("GH", 0, 40, 4, 10), "layer")
	return tree
}

func eachLevel(tree *Tree, fn func(name string, h SelectionHost)) {
	fn("tree", tree)
	for _, id := range tree.Layers() {
		sub, _ := tree.Layer(id)
		eachLevel(sub, fn)
	}
	for _, l := range tree.Lines() {
		fn("line "+l.Text(), l)
		for _, w := range l.Words() {
			fn("word "+w.Text(), w)
		}
	}
}

func TestSelectAll_Propagates(t *testing.T) {
	tree := sample()
	tree.SelectAll()

	eachLevel(tree, func(name string, h SelectionHost) {
		assert.True(t, h.Selected(), name)
		assert.True(t, h.HasSelected(), name)
		assert.Equal(t, Selected, h.State(), name)
	})
	for _, l := range tree.VisibleLines() {
		for _, w := range l.Words() {
			for _, g := range w.Glyphs() {
				assert.True(t, g.Selected())
			}
		}
	}
}

func TestClearSelected_ResetsEverything(t *testing.T) {
	tree := sample()
	tree.SelectAll()
	tree.ClearSelected()

	eachLevel(tree, func(name string, h SelectionHost) {
		assert.False(t, h.Selected(), name)
		assert.False(t, h.HasSelected(), name)
		assert.Equal(t, Clean, h.State(), name)
	})
	assert.Empty(t, tree.SelectedText())
}

func TestClearSelected_Idempotent(t *testing.T) {
	once := sample()
	twice := sample()
	for _, tree := range []*Tree{once, twice} {
		tree.Lines()[0].Words()[0].SelectGlyphs(0, 1)
		tree.Lines()[1].Words()[0].Highlight()
	}

	once.ClearSelected()
	twice.ClearSelected()
	twice.ClearSelected()

	var a, b []State
	eachLevel(once, func(_ string, h SelectionHost) { a = append(a, h.State()) })
	eachLevel(twice, func(_ string, h SelectionHost) { b = append(b, h.State()) })
	assert.Equal(t, a, b)
	// Highlights survive a selection clear.
	assert.Equal(t, Highlighted, once.State())
}

func TestSelectGlyphs_PartialWord(t *testing.T) {
	tree := sample()
	line := tree.Lines()[0]
	word := line.Words()[2] // "CD"

	word.SelectGlyphs(1, 5)

	assert.False(t, word.Selected())
	assert.True(t, word.HasSelected())
	assert.True(t, line.HasSelected())
	assert.False(t, line.Selected())
	assert.True(t, tree.HasSelected())
	assert.Equal(t, Selected, tree.State())
	assert.Equal(t, "D\n", tree.SelectedText())

	// Untouched siblings stay clean.
	assert.Equal(t, Clean, tree.Lines()[1].State())
	sub, _ := tree.Layer("layer")
	assert.Equal(t, Clean, sub.State())

	word.SelectGlyphs(0, 1)
	assert.True(t, word.Selected())
	assert.Equal(t, "CD\n", tree.SelectedText())
}

func TestSelectGlyphs_EmptyRange(t *testing.T) {
	tree := sample()
	tree.Lines()[0].Words()[0].SelectGlyphs(2, 1)
	assert.Equal(t, Clean, tree.State())
}

func TestSelection_LayerPropagatesToPage(t *testing.T) {
	tree := sample()
	sub, ok := tree.Layer("layer")
	require.True(t, ok)

	sub.Lines()[0].Words()[0].SelectGlyphs(0, 1)
	assert.True(t, sub.HasSelected())
	assert.True(t, tree.HasSelected())
	assert.Equal(t, "G\n", tree.SelectedText())
}

func TestHighlight_States(t *testing.T) {
	tree := sample()
	word := tree.Lines()[1].Words()[0]
	word.Highlight()

	assert.Equal(t, Highlighted, word.State())
	assert.Equal(t, Highlighted, tree.Lines()[1].State())
	assert.Equal(t, Clean, tree.Lines()[0].State())
	assert.Equal(t, Highlighted, tree.State())

	tree.SelectAll()
	assert.Equal(t, Both, word.State())
	assert.Equal(t, Both, tree.State())

	tree.ClearHighlighted()
	assert.Equal(t, Selected, word.State())
	for _, g := range word.Glyphs() {
		assert.False(t, g.Highlighted())
	}
}

func TestLine_SelectAll(t *testing.T) {
	tree := sample()
	tree.Lines()[1].SelectAll()
	assert.Equal(t, "EF\n", tree.SelectedText())
	assert.True(t, tree.HasSelected())
	assert.False(t, tree.Selected())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "clean", Clean.String())
	assert.Equal(t, "selected+highlighted", Both.String())
}

func TestWordClearSelected_RecomputesParents(t *testing.T) {
	tree := New(DefaultConfig())
	ingestAll(tree, run("AB", 0, 0, 4, 10))
	w := tree.Lines()[0].Words()[0]

	w.SelectAll()
	require.Equal(t, Selected, tree.State())
	w.ClearSelected()

	line := tree.Lines()[0]
	assert.Equal(t, Clean, w.State())
	assert.False(t, line.HasSelected())
	assert.Equal(t, Clean, line.State())
	assert.Equal(t, Clean, tree.State())
	assert.Empty(t, tree.SelectedText())
}

func TestLineClearSelected_KeepsSiblingHints(t *testing.T) {
	tree := sample()
	tree.SelectAll()

	first, second := tree.Lines()[0], tree.Lines()[1]
	first.ClearSelected()

	assert.Equal(t, Clean, first.State())
	assert.True(t, second.Selected())
	assert.False(t, tree.Selected(), "no longer selected as a whole")
	assert.True(t, tree.HasSelected())
	assert.Equal(t, "EF\nGH\n", tree.SelectedText())

	second.ClearSelected()
	sub, _ := tree.Layer("layer")
	sub.ClearSelected()
	assert.Equal(t, Clean, sub.State())
	assert.Equal(t, Clean, tree.State())
}

func TestWordClearHighlighted_RecomputesParents(t *testing.T) {
	tree := sample()
	a := tree.Lines()[0].Words()[0]
	b := tree.Lines()[1].Words()[0]
	a.Highlight()
	b.Highlight()

	a.ClearHighlighted()
	assert.False(t, tree.Lines()[0].HasHighlighted())
	assert.True(t, tree.HasHighlighted())

	b.ClearHighlighted()
	assert.False(t, tree.Lines()[1].HasHighlighted())
	assert.Equal(t, Clean, tree.State())
}

func TestConcurrentReads(t *testing.T) {
	tree := New(DefaultConfig())
	for i := range 20 {
		y := float64(i) * 20
		ingestAll(tree, run("ab", 0, y, 4, 10))
		ingestAll(tree, run("cd", 20, y, 4, 10))
		tree.NewLine()
	}
	tree.SelectAll()
	want := tree.SelectedText()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, tree.SelectedText())
			assert.True(t, tree.Contains(Identity, Point{X: 1, Y: 385}))
			assert.True(t, tree.Intersects(Scale(2, 2), Rect{X: 40, Y: 0, W: 2, H: 2}))
		}()
	}
	wg.Wait()
}
