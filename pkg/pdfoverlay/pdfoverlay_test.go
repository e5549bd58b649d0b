package pdfoverlay

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/pagetext/pkg/pagetext"
)

func ingest(tree *pagetext.Tree, text string, r pagetext.Rect, layers ...pagetext.LayerID) {
	for _, g := range pagetext.SplitRun(text, r, r.MaxY()) {
		tree.Ingest(g, layers)
	}
}

func sampleTree(visible func(pagetext.LayerID) bool) *pagetext.Tree {
	tree := pagetext.New(pagetext.DefaultConfig(), pagetext.WithVisibility(visible))
	ingest(tree, "Hello", pagetext.Rect{X: 72, Y: 72, W: 50, H: 12})
	ingest(tree, "world", pagetext.Rect{X: 130, Y: 72, W: 50, H: 12})
	tree.NewLine()
	ingest(tree, "margin", pagetext.Rect{X: 72, Y: 100, W: 60, H: 12}, "Notes")
	return tree
}

func TestRender(t *testing.T) {
	tree := sampleTree(func(id pagetext.LayerID) bool { return id != "Notes" })
	tree.Lines()[0].Words()[0].SelectGlyphs(0, 2)
	tree.Highlight("world", pagetext.SearchOptions{})

	out, err := Render([]Page{{Tree: tree, Width: 612, Height: 792}}, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Contains(t, string(out), "/OCG")

	layers, err := DetectLayers(out)
	require.NoError(t, err)
	assert.Contains(t, layers, "Page Text (Page 1)")
	assert.Contains(t, layers, "Notes")
}

func TestRender_LayerSharedAcrossPages(t *testing.T) {
	all := func(pagetext.LayerID) bool { return true }
	pages := []Page{
		{Tree: sampleTree(all), Width: 612, Height: 792},
		{Tree: sampleTree(all), Width: 612, Height: 792},
	}
	out, err := Render(pages, DefaultConfig())
	require.NoError(t, err)

	layers, err := DetectLayers(out)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Page Text (Page 1)", "Page Text (Page 2)", "Notes"}, layers)
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(nil, DefaultConfig())
	assert.True(t, errors.Is(err, ErrNoPages))

	tree := pagetext.New(pagetext.DefaultConfig())
	_, err = Render([]Page{{Tree: tree}}, DefaultConfig())
	assert.ErrorContains(t, err, "invalid size")

	_, err = Render([]Page{{Width: 10, Height: 10}}, DefaultConfig())
	assert.ErrorContains(t, err, "no text tree")

	cfg := DefaultConfig()
	cfg.StartPage = 0
	_, err = Render([]Page{{Tree: tree, Width: 10, Height: 10}}, cfg)
	assert.ErrorContains(t, err, "start page")
}

func TestRender_RefusesExistingLayer(t *testing.T) {
	tree := sampleTree(nil)
	first, err := Render([]Page{{Tree: tree, Width: 612, Height: 792}}, DefaultConfig())
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Source = first
	_, err = Render([]Page{{Tree: tree, Width: 612, Height: 792}}, cfg)
	assert.True(t, errors.Is(err, ErrLayerExists))
}

func TestDetectLayers(t *testing.T) {
	raw := []byte("1 0 obj\n<</Type /OCG /Name (Scan \\(left\\))>>\nendobj\n" +
		"2 0 obj\n<</Name (Draft) /Type /OCG>>\nendobj\n" +
		"3 0 obj\n<</Type /OCG /Name (\xfe\xff\x00A\x00b)>>\nendobj\n" +
		"4 0 obj\n<</Type /OCG /Name (Draft)>>\nendobj\n")

	layers, err := DetectLayers(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Scan (left)", "Ab", "Draft"}, layers)

	_, err = DetectLayers(nil)
	assert.Error(t, err)
}

func TestCheckExistingLayers(t *testing.T) {
	raw := []byte("<</Type /OCG /Name (OCR Text (Page 1\\))>>\n<</Type /OCG /Name (Page Text \\(Page 3\\))>>")

	result, err := CheckExistingLayers(raw, "Page Text")
	require.NoError(t, err)
	assert.True(t, result.HasTextLayer)
	assert.Equal(t, "Page Text (Page 3)", result.TextLayerName)
	assert.Len(t, result.Warnings, 1)

	result, err = CheckExistingLayers(raw, "Other")
	require.NoError(t, err)
	assert.False(t, result.HasTextLayer)
	assert.Len(t, result.Warnings, 2)
}

func TestDecodeUTF16BE(t *testing.T) {
	s, err := decodeUTF16BE([]byte("\xfe\xff\x00h\x00i\x00\xe9"))
	require.NoError(t, err)
	assert.Equal(t, "hié", s)

	_, err = decodeUTF16BE([]byte("hi"))
	assert.Error(t, err)
}
