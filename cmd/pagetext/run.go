package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/pagetext/pkg/gdocai"
	"github.com/gardar/pagetext/pkg/hocr"
	"github.com/gardar/pagetext/pkg/pagetext"
	"github.com/gardar/pagetext/pkg/pdfglyphs"
	"github.com/gardar/pagetext/pkg/pdfoverlay"
)

// page is a loaded page whatever its source
type page struct {
	number int
	width  float64
	height float64
	tree   *pagetext.Tree
	image  []byte
}

// input is the loaded document
type input struct {
	pages    []page
	source   []byte // PDF to draw the overlay on, if any
	language string
	docJSON  string // Raw Document AI response
}

func run(ctx context.Context, opts options, cfg fileConfig, log *slog.Logger) error {
	var pdfBytes []byte
	if opts.pdfPath != "" {
		var err error
		if pdfBytes, err = os.ReadFile(opts.pdfPath); err != nil {
			return fmt.Errorf("failed to read PDF file: %w", err)
		}
	}

	if opts.listLayers {
		layers, err := pdfoverlay.DetectLayers(pdfBytes)
		if err != nil {
			return fmt.Errorf("layer detection failed: %w", err)
		}
		for i, layer := range layers {
			fmt.Printf("%d. %s\n", i+1, layer)
		}
	}
	if !opts.writesOutput() {
		return nil
	}

	in, err := load(ctx, opts, cfg, pdfBytes, log)
	if err != nil {
		return err
	}

	visible := visibility(cfg.HiddenLayers)
	for _, p := range in.pages {
		p.tree.SetVisibility(visible)
		if opts.selectAll {
			p.tree.SelectAll()
		}
		if opts.highlight != "" {
			hits := p.tree.Highlight(opts.highlight, pagetext.SearchOptions{CaseSensitive: opts.caseSensitive})
			log.Info("highlighted", "page", p.number, "term", opts.highlight, "hits", hits)
		}
	}

	if opts.textPath != "" {
		if err := writeFile(opts.textPath, joinPages(in.pages, (*pagetext.Tree).Text), log); err != nil {
			return err
		}
	}
	if opts.selectedPath != "" {
		if err := writeFile(opts.selectedPath, joinPages(in.pages, (*pagetext.Tree).SelectedText), log); err != nil {
			return err
		}
	}
	if opts.hocrOutPath != "" {
		html, err := renderHOCR(in)
		if err != nil {
			return err
		}
		if err := writeFile(opts.hocrOutPath, html, log); err != nil {
			return err
		}
	}
	if opts.jsonPath != "" {
		if err := writeFile(opts.jsonPath, in.docJSON, log); err != nil {
			return err
		}
	}
	if opts.overlayPath != "" {
		out, err := renderOverlay(in, cfg, log)
		if err != nil {
			return err
		}
		if err := writeFile(opts.overlayPath, string(out), log); err != nil {
			return err
		}
	}
	return nil
}

func load(ctx context.Context, opts options, cfg fileConfig, pdfBytes []byte, log *slog.Logger) (input, error) {
	switch {
	case opts.hocrPath != "":
		data, err := os.ReadFile(opts.hocrPath)
		if err != nil {
			return input{}, fmt.Errorf("failed to read hOCR file: %w", err)
		}
		doc, err := hocr.Parse(data)
		if err != nil {
			return input{}, fmt.Errorf("failed to parse hOCR data: %w", err)
		}
		in := input{source: pdfBytes, language: doc.Language}
		for i, hp := range doc.Pages {
			tree := pagetext.New(cfg.Segmentation)
			hocr.IngestPage(tree, hp)
			in.pages = append(in.pages, page{
				number: i + 1,
				width:  hp.BBox.X2,
				height: hp.BBox.Y2,
				tree:   tree,
			})
		}
		log.Info("loaded hOCR", "path", opts.hocrPath, "pages", len(in.pages))
		return in, nil

	case opts.docAI:
		docCfg := cfg.DocAI
		docCfg.Logger = log
		doc, err := gdocai.ProcessDocument(ctx, pdfBytes, &docCfg)
		if err != nil {
			return input{}, err
		}
		in, err := fromDocument(ctx, doc, cfg.Segmentation, opts.jsonPath != "")
		if err != nil {
			return input{}, err
		}
		log.Info("recognized PDF", "path", opts.pdfPath, "pages", len(in.pages), "language", in.language)
		return in, nil

	default:
		glyphCfg := pdfglyphs.Config{BaselineTolerance: cfg.BaselineTolerance, Logger: log}
		pages, err := pdfglyphs.Read(opts.pdfPath, glyphCfg, cfg.Segmentation)
		if err != nil {
			return input{}, fmt.Errorf("failed to read PDF text: %w", err)
		}
		in := input{source: pdfBytes}
		for _, p := range pages {
			in.pages = append(in.pages, page{
				number: p.Number,
				width:  p.Width,
				height: p.Height,
				tree:   p.Tree,
			})
		}
		log.Info("read PDF text", "path", opts.pdfPath, "pages", len(in.pages))
		return in, nil
	}
}

// fromDocument builds the pages of a Document AI response, optionally
// keeping the response as JSON.
func fromDocument(ctx context.Context, doc *documentaipb.Document, seg pagetext.Config, dumpJSON bool) (input, error) {
	trees, err := gdocai.PageTrees(ctx, doc, seg)
	if err != nil {
		return input{}, fmt.Errorf("failed to build page text: %w", err)
	}
	// Document AI coordinates are image pixels, so the overlay is built
	// on the page images instead of the source PDF.
	in := input{language: gdocai.DocumentLanguage(doc)}
	for _, p := range trees {
		in.pages = append(in.pages, page{
			number: p.Number,
			width:  p.Width,
			height: p.Height,
			tree:   p.Tree,
			image:  p.Image,
		})
	}
	if dumpJSON {
		if in.docJSON, err = gdocai.ToJSON(doc); err != nil {
			return input{}, err
		}
	}
	return in, nil
}

// joinPages separates the text of pages with form feeds
func joinPages(pages []page, text func(*pagetext.Tree) string) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = text(p.tree)
	}
	return strings.Join(parts, "\f")
}

func renderHOCR(in input) (string, error) {
	pages := make([]hocr.Page, len(in.pages))
	for i, p := range in.pages {
		pages[i] = hocr.FromTree(p.tree, p.number, hocr.NewBoundingBox(0, 0, p.width, p.height))
	}
	doc := hocr.NewDocument("pagetext", pages...)
	doc.Language = in.language
	html, err := hocr.Generate(doc)
	if err != nil {
		return "", fmt.Errorf("failed to generate hOCR: %w", err)
	}
	return html, nil
}

func renderOverlay(in input, cfg fileConfig, log *slog.Logger) ([]byte, error) {
	overlayCfg := pdfoverlay.DefaultConfig()
	overlayCfg.LayerName = cfg.Overlay.LayerName
	overlayCfg.Debug = cfg.Overlay.Debug
	overlayCfg.Force = cfg.Overlay.Force
	overlayCfg.Source = in.source
	overlayCfg.Logger = log

	pages := make([]pdfoverlay.Page, len(in.pages))
	for i, p := range in.pages {
		pages[i] = pdfoverlay.Page{Tree: p.tree, Width: p.width, Height: p.height, Image: p.image}
	}
	out, err := pdfoverlay.Render(pages, overlayCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to render overlay: %w", err)
	}
	return out, nil
}

func writeFile(path, content string, log *slog.Logger) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info("saved", "path", path, "bytes", len(content))
	return nil
}
