package pdfoverlay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/pagetext/pkg/pagetext"
)

var (
	// ErrNoPages is returned when Render is called without pages.
	ErrNoPages = errors.New("no pages to render")
	// ErrLayerExists is returned when the source PDF already carries the
	// text layer and Config.Force is not set.
	ErrLayerExists = errors.New("source PDF already has a text layer")
)

// Page is one output page: the tree drawn onto it and the page size in
// points. Tree coordinates are taken as page coordinates with a top-left
// origin; scale the tree with ApplyTransform first if they differ.
type Page struct {
	Tree   *pagetext.Tree
	Width  float64
	Height float64
	Image  []byte // Optional background image stretched over the page
}

// Render draws pages into a new PDF. Each page gets its base text in a
// layer named after Config.LayerName and one layer per tree layer, whose
// initial visibility follows the tree's visibility predicate. Selected and
// highlighted glyphs are filled under the text.
func Render(pages []Page, cfg Config) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if cfg.StartPage < 1 {
		return nil, fmt.Errorf("start page must be at least 1, got %d", cfg.StartPage)
	}
	for i, p := range pages {
		if p.Tree == nil {
			return nil, fmt.Errorf("page %d has no text tree", i+1)
		}
		if p.Width <= 0 || p.Height <= 0 {
			return nil, fmt.Errorf("page %d has invalid size %gx%g", i+1, p.Width, p.Height)
		}
	}

	log := cfg.logger()
	if len(cfg.Source) > 0 {
		if err := checkSource(cfg); err != nil {
			return nil, err
		}
	}

	r := &renderer{
		pdf:    fpdf.New("P", "pt", "", ""),
		cfg:    cfg,
		layers: make(map[string]int),
	}
	if len(cfg.Source) > 0 {
		r.importer = gofpdi.NewImporter()
		r.source = io.ReadSeeker(bytes.NewReader(cfg.Source))
	}

	for i, p := range pages {
		if err := r.page(i, p); err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i+1, err)
		}
		log.Debug("rendered page", "page", i+1, "lines", len(p.Tree.VisibleLines()))
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func checkSource(cfg Config) error {
	log := cfg.logger()
	result, err := CheckExistingLayers(cfg.Source, cfg.LayerName)
	if err != nil {
		return fmt.Errorf("layer detection failed: %w", err)
	}
	for _, warning := range result.Warnings {
		log.Warn(warning)
	}
	if result.HasTextLayer {
		if !cfg.Force {
			return fmt.Errorf("%w: layer '%s'", ErrLayerExists, result.TextLayerName)
		}
		log.Warn("source already has a text layer, rendering a duplicate", "layer", result.TextLayerName)
	}
	return nil
}

type renderer struct {
	pdf      *fpdf.Fpdf
	cfg      Config
	importer *gofpdi.Importer
	source   io.ReadSeeker
	layers   map[string]int // fpdf layer id by name, shared across pages

	words          int
	encodingErrors int
}

func (r *renderer) page(i int, p Page) error {
	r.pdf.AddPageFormat("P", fpdf.SizeType{Wd: p.Width, Ht: p.Height})

	switch {
	case r.importer != nil:
		if err := r.importPage(r.cfg.StartPage+i, p); err != nil {
			return err
		}
	case len(p.Image) > 0:
		imageType, err := detectImageType(p.Image)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("img%d", i)
		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
		r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(p.Image))
		r.pdf.ImageOptions(name, 0, 0, p.Width, p.Height, false, opts, 0, "")
	}

	r.words, r.encodingErrors = 0, 0
	base := fmt.Sprintf("%s (Page %d)", r.cfg.LayerName, i+1)
	r.drawTree(p.Tree, base, true)

	if r.pdf.Err() {
		return r.pdf.Error()
	}
	// Report encoding errors if more than a threshold
	if r.words > 0 && r.encodingErrors > r.words/10 {
		return fmt.Errorf("character encoding issues in %d of %d words", r.encodingErrors, r.words)
	}
	return nil
}

// importPage places page pageno of the source PDF as the page background.
// The importer panics on pages it cannot read.
func (r *renderer) importPage(pageno int, p Page) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("import source page %d: %v", pageno, rec)
		}
	}()
	tpl := r.importer.ImportPageFromStream(r.pdf, &r.source, pageno, "/MediaBox")
	r.importer.UseImportedTemplate(r.pdf, tpl, 0, 0, p.Width, 0)
	return nil
}

// drawTree draws the lines of tree in the named layer, then each sub-tree in
// a layer of its own. A nested layer starts visible only when all of its
// ancestors do.
func (r *renderer) drawTree(tree *pagetext.Tree, name string, visible bool) {
	id, ok := r.layers[name]
	if !ok {
		id = r.pdf.AddLayer(name, visible)
		r.layers[name] = id
	}

	r.pdf.BeginLayer(id)
	for _, line := range tree.Lines() {
		if line.HasSelected() || line.HasHighlighted() {
			r.drawMarks(line)
		}
	}
	r.beginText()
	for _, line := range tree.Lines() {
		for _, w := range line.Words() {
			if !w.IsWhitespace() {
				r.drawWord(w)
			}
		}
	}
	r.endText()
	r.pdf.EndLayer()

	for _, layer := range tree.Layers() {
		sub, _ := tree.Layer(layer)
		subName := string(layer)
		if tree.Parent() != nil {
			subName = name + " / " + subName
		}
		r.drawTree(sub, subName, visible && tree.IsLayerVisible(layer))
	}
}

// drawMarks fills selected and highlighted glyphs of a line.
func (r *renderer) drawMarks(line *pagetext.Line) {
	r.pdf.SetAlpha(r.cfg.MarkAlpha, "Multiply")
	for _, w := range line.Words() {
		if !w.HasSelected() && !w.HasHighlighted() {
			continue
		}
		for _, g := range w.Glyphs() {
			b := g.Bounds
			if g.Highlighted() {
				c := r.cfg.HighlightColor
				r.pdf.SetFillColor(c.R, c.G, c.B)
				r.pdf.Rect(b.X, b.Y, b.W, b.H, "F")
			}
			if g.Selected() {
				c := r.cfg.SelectionColor
				r.pdf.SetFillColor(c.R, c.G, c.B)
				r.pdf.Rect(b.X, b.Y, b.W, b.H, "F")
			}
		}
	}
	r.pdf.SetAlpha(1, "Normal")
}

func (r *renderer) beginText() {
	font := r.cfg.Font
	r.pdf.SetFont(font.Name, font.Style, font.Size)
	if r.cfg.Debug {
		r.pdf.SetTextColor(255, 0, 0) // highlight text in red
		r.pdf.SetDrawColor(255, 0, 0)
	} else {
		r.pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}
}

func (r *renderer) endText() {
	r.pdf.SetAlpha(1, "Normal")
	r.pdf.SetTextColor(0, 0, 0)
}

// drawWord writes one word scaled to the width of its box.
func (r *renderer) drawWord(w *pagetext.Word) {
	b, ok := w.Bounds()
	if !ok {
		return
	}
	r.words++
	font := r.cfg.Font

	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	text := strings.TrimSpace(w.Text())
	latin1, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		// Track encoding errors but continue
		r.encodingErrors++
		latin1 = text
	}

	if strWidth := r.pdf.GetStringWidth(latin1); strWidth > 0 {
		r.pdf.SetFontSize(font.Size * b.W / strWidth)
	}
	fontSize, _ := r.pdf.GetFontSize()
	y := b.Y + fontSize*font.AscentRatio

	r.pdf.Text(b.X, y, latin1)
	r.pdf.SetFontSize(font.Size)

	if r.cfg.Debug {
		r.pdf.Rect(b.X, b.Y, b.W, b.H, "D")
	}
}
