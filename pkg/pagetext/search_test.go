package pagetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func searchTree() *Tree {
	tree := New(DefaultConfig())
	ingestAll(tree, run("Hello,", 0, 0, 4, 10))
	ingestAll(tree, run("brave", 40, 0, 4, 10))
	ingestAll(tree, run("world.", 80, 0, 4, 10))
	tree.NewLine()
	ingestAll(tree, run("HELLO", 0, 20, 4, 10))
	tree.NewLine()
	ingestAll(tree, run("hello", 0, 40, 4, 10), "hidden")
	tree.SetVisibility(func(id LayerID) bool { return id != "hidden" })
	return tree
}

func TestHighlight_SingleWord(t *testing.T) {
	tree := searchTree()
	n := tree.Highlight("hello", SearchOptions{})
	assert.Equal(t, 2, n)

	assert.True(t, tree.Lines()[0].Words()[0].Highlighted())
	assert.True(t, tree.Lines()[1].Words()[0].Highlighted())
	assert.True(t, tree.HasHighlighted())

	sub, _ := tree.Layer("hidden")
	assert.Equal(t, Clean, sub.State())
}

func TestHighlight_CaseSensitive(t *testing.T) {
	tree := searchTree()
	assert.Equal(t, 1, tree.Highlight("HELLO", SearchOptions{CaseSensitive: true}))
	assert.Equal(t, 0, tree.Highlight("Hello", SearchOptions{CaseSensitive: true, KeepPunctuation: true}))
}

func TestHighlight_Phrase(t *testing.T) {
	tree := searchTree()
	n := tree.Highlight("brave World", SearchOptions{})
	assert.Equal(t, 1, n)

	words := tree.Lines()[0].Words()
	assert.False(t, words[0].Highlighted())
	assert.False(t, words[1].Highlighted())
	for _, w := range words[2:] {
		assert.True(t, w.Highlighted(), w.Text())
	}
	assert.Equal(t, Clean, tree.Lines()[1].State())
}

func TestHighlight_EmptyTerm(t *testing.T) {
	tree := searchTree()
	assert.Equal(t, 0, tree.Highlight("  ...  ", SearchOptions{}))
	assert.Equal(t, Clean, tree.State())
}
