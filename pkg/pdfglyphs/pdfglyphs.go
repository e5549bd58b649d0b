// Package pdfglyphs reads positioned glyphs out of PDF content streams and
// assembles them into one page text tree per page.
//
// Page space has a top-left origin in PDF points, matching the rest of the
// module; the PDF's bottom-left coordinates are flipped against the page
// MediaBox. Glyphs are ingested in content-stream order and a new line is
// started whenever the baseline moves.
package pdfglyphs

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/ledongthuc/pdf"

	"github.com/gardar/pagetext/pkg/pagetext"
)

// ErrNoPages is returned for a PDF without pages.
var ErrNoPages = errors.New("PDF has no pages")

// Letter size, used when a page has no usable MediaBox.
const (
	defaultWidth  = 612
	defaultHeight = 792
)

// Config controls how text runs are grouped into lines.
type Config struct {
	// BaselineTolerance is the baseline movement, as a fraction of the font
	// size, that still counts as the same line.
	BaselineTolerance float64
	Logger            *slog.Logger // nil means slog.Default()
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{BaselineTolerance: 0.5}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Page is the text of one PDF page.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Tree   *pagetext.Tree
}

// Read opens the PDF at path and builds a tree for every page. Pages without
// content yield empty trees so page numbers stay aligned with the document.
func Read(path string, cfg Config, treeCfg pagetext.Config) ([]Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, ErrNoPages
	}

	log := cfg.logger()
	pages := make([]Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		mb := mediaBox(page.V)
		out := Page{
			Number: i,
			Width:  mb.x1 - mb.x0,
			Height: mb.y1 - mb.y0,
			Tree:   pagetext.New(treeCfg),
		}
		if !page.V.IsNull() && page.V.Key("Contents").Kind() != pdf.Null {
			texts, err := content(page)
			if err != nil {
				return nil, fmt.Errorf("read page %d: %w", i, err)
			}
			ingestTexts(out.Tree, texts, mb, cfg)
			log.Debug("read page", "page", i, "glyphs", len(texts), "lines", len(out.Tree.Lines()))
		}
		pages = append(pages, out)
	}
	return pages, nil
}

// content returns the text of a page. The parser panics on malformed
// content streams.
func content(page pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	return page.Content().Text, nil
}

type box struct {
	x0, y0, x1, y1 float64
}

// mediaBox looks up the MediaBox of a page, following inheritance from the
// page tree.
func mediaBox(v pdf.Value) box {
	for ; v.Kind() == pdf.Dict; v = v.Key("Parent") {
		mb := v.Key("MediaBox")
		if mb.Kind() != pdf.Array || mb.Len() != 4 {
			continue
		}
		b := box{
			x0: mb.Index(0).Float64(),
			y0: mb.Index(1).Float64(),
			x1: mb.Index(2).Float64(),
			y1: mb.Index(3).Float64(),
		}
		if b.x1 > b.x0 && b.y1 > b.y0 {
			return b
		}
	}
	return box{x1: defaultWidth, y1: defaultHeight}
}

// ingestTexts feeds text runs into tree. Each run spans the font size above
// its baseline; runs of several runes are split evenly across their width.
func ingestTexts(tree *pagetext.Tree, texts []pdf.Text, b box, cfg Config) {
	prevBaseline := math.NaN()
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		baseline := b.y1 - t.Y
		size := math.Abs(t.FontSize)
		if !math.IsNaN(prevBaseline) && math.Abs(baseline-prevBaseline) > cfg.BaselineTolerance*size {
			tree.NewLine()
		}
		prevBaseline = baseline

		r := pagetext.Rect{X: t.X - b.x0, Y: baseline - size, W: t.W, H: size}
		for _, g := range pagetext.SplitRun(t.S, r, baseline) {
			tree.Ingest(g, nil)
		}
	}
	tree.NewLine()
}
