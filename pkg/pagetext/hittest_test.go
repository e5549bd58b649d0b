package pagetext

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func f64Rotate45() f64.Aff3 {
	c, s := math.Cos(math.Pi/4), math.Sin(math.Pi/4)
	return f64.Aff3{c, -s, 0, s, c, 0}
}

func TestWord_ContainsUnderTransform(t *testing.T) {
	tree := sample()
	word := tree.Lines()[0].Words()[0] // "AB": 0..8 x 0..10

	assert.True(t, word.Contains(Identity, Point{4, 5}))
	assert.False(t, word.Contains(Identity, Point{9, 5}))

	// At 200% zoom the same word covers 0..16 x 0..20 on screen.
	zoom := Scale(2, 2)
	assert.True(t, word.Contains(zoom, Point{15, 19}))
	assert.False(t, word.Contains(zoom, Point{4, 25}))

	// The zoomed path never leaks into the cached bounds.
	r, ok := word.Bounds()
	require.True(t, ok)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 8, H: 10}, r)
}

func TestWord_Intersects(t *testing.T) {
	tree := sample()
	word := tree.Lines()[0].Words()[2] // "CD": 18..26 x 0..10

	assert.True(t, word.Intersects(Identity, Rect{X: 25, Y: 9, W: 10, H: 10}))
	assert.False(t, word.Intersects(Identity, Rect{X: 27, Y: 0, W: 5, H: 5}))
	assert.True(t, word.Intersects(Translate(-18, 0), Rect{X: 0, Y: 0, W: 1, H: 1}))
}

func TestPath_Rotated(t *testing.T) {
	// A unit square rotated 45 degrees about the origin is a diamond.
	rot := f64Rotate45()
	p := Rect{W: 1, H: 1}.Path(rot)

	assert.True(t, p.Contains(Point{0, 0.7}))
	assert.False(t, p.Contains(Point{0.6, 0.1}))
	assert.True(t, p.Intersects(Rect{X: -0.2, Y: 1.3, W: 0.4, H: 0.2}))
	assert.False(t, p.Intersects(Rect{X: 0.5, Y: 0, W: 0.1, H: 0.1}))
}

func TestTree_WordAtAndSelectIntersecting(t *testing.T) {
	tree := sample()

	w := tree.WordAt(Identity, Point{20, 5})
	require.NotNil(t, w)
	assert.Equal(t, "CD", w.Text())
	assert.True(t, tree.Contains(Identity, Point{2, 45}))
	assert.Nil(t, tree.WordAt(Identity, Point{500, 500}))
	assert.False(t, tree.Intersects(Identity, Rect{X: 500, Y: 500, W: 1, H: 1}))

	// Drag a box over "B" and the first spaces.
	n := tree.SelectIntersecting(Identity, Rect{X: 5, Y: 2, W: 6, H: 2})
	assert.Equal(t, 3, n)
	assert.Equal(t, "B  \n", tree.SelectedText())
	assert.True(t, tree.Lines()[0].HasSelected())
	assert.False(t, tree.Lines()[1].HasSelected())
}

func TestEmptyPath(t *testing.T) {
	var w Word
	assert.False(t, w.Contains(Identity, Point{}))
	assert.False(t, w.Intersects(Identity, Rect{W: 1, H: 1}))
}
