package pdfglyphs

import (
	"errors"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/pagetext/pkg/pagetext"
)

var letter = box{x1: 612, y1: 792}

func char(s string, x, y, w float64) pdf.Text {
	return pdf.Text{Font: "Helvetica", FontSize: 10, X: x, Y: y, W: w, S: s}
}

func TestIngestTexts(t *testing.T) {
	texts := []pdf.Text{
		char("H", 72, 700, 6),
		char("i", 78, 700, 6),
		char(" ", 84, 700, 6),
		char("y", 90, 700.5, 6), // within tolerance
		char("o", 96, 700, 6),
		char("x", 72, 686, 6),
	}
	tree := pagetext.New(pagetext.DefaultConfig())
	ingestTexts(tree, texts, letter, DefaultConfig())

	require.Len(t, tree.Lines(), 2)
	assert.Equal(t, "Hi yo\nx\n", tree.Text())

	g := tree.Lines()[0].Words()[0].Glyphs()[0]
	assert.Equal(t, pagetext.Rect{X: 72, Y: 82, W: 6, H: 10}, g.Bounds)
	assert.Equal(t, 92.0, g.Baseline)
}

func TestIngestTexts_GapBecomesSpace(t *testing.T) {
	texts := []pdf.Text{
		char("a", 72, 700, 6),
		char("b", 86, 700, 6),
	}
	tree := pagetext.New(pagetext.DefaultConfig())
	ingestTexts(tree, texts, letter, DefaultConfig())

	// Gap 8 over half the widest glyph (3): two spaces.
	assert.Equal(t, "a  b\n", tree.Text())
	assert.True(t, tree.Lines()[0].Words()[1].IsWhitespace())
}

func TestIngestTexts_MultiRuneRun(t *testing.T) {
	texts := []pdf.Text{
		{FontSize: 12, X: 100, Y: 500, W: 24, S: "abcd"},
		{FontSize: 12, X: 10, Y: 480, W: 6, S: ""},
	}
	tree := pagetext.New(pagetext.DefaultConfig())
	ingestTexts(tree, texts, box{x0: 50, y1: 600}, DefaultConfig())

	require.Len(t, tree.Lines(), 1)
	glyphs := tree.Lines()[0].Words()[0].Glyphs()
	require.Len(t, glyphs, 4)
	assert.Equal(t, 50.0, glyphs[0].Bounds.X)
	assert.Equal(t, 68.0, glyphs[3].Bounds.X)
	assert.Equal(t, 6.0, glyphs[3].Bounds.W)
	assert.Equal(t, 88.0, glyphs[3].Bounds.Y)
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.pdf")
	doc := fpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Text(72, 72, "Hello")
	doc.AddPage()
	require.NoError(t, doc.OutputFileAndClose(path))

	pages, err := Read(path, DefaultConfig(), pagetext.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, 1, pages[0].Number)
	assert.InDelta(t, 595.28, pages[0].Width, 0.01)
	assert.InDelta(t, 841.89, pages[0].Height, 0.01)
	assert.Contains(t, pages[0].Tree.Text(), "Hello")
	assert.Empty(t, pages[1].Tree.Text())
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.pdf"), DefaultConfig(), pagetext.DefaultConfig())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoPages))
}
