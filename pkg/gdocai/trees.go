package gdocai

import (
	"context"
	"errors"
	"fmt"
	"math"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"golang.org/x/sync/errgroup"

	"github.com/gardar/pagetext/pkg/pagetext"
)

// ErrNoPages is returned for a response without pages.
var ErrNoPages = errors.New("document has no pages")

// Page is the text tree of one processed page, in the pixel space of the
// page image Document AI worked on.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Tree   *pagetext.Tree
	Image  []byte // Page image, when the response carries one
}

// PageTrees builds one tree per page. Trees share nothing, so pages are
// built concurrently.
func PageTrees(ctx context.Context, doc *documentaipb.Document, cfg pagetext.Config) ([]Page, error) {
	if len(doc.GetPages()) == 0 {
		return nil, ErrNoPages
	}

	pages := make([]Page, len(doc.Pages))
	g, ctx := errgroup.WithContext(ctx)
	for i, page := range doc.Pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := pageTree(page, doc.Text, cfg)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			if p.Number == 0 {
				p.Number = i + 1
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func pageTree(page *documentaipb.Document_Page, fullText string, cfg pagetext.Config) (Page, error) {
	dim := page.GetDimension()
	if dim == nil || dim.Width <= 0 || dim.Height <= 0 {
		return Page{}, errors.New("page has no dimension")
	}

	out := Page{
		Number: int(page.PageNumber),
		Width:  float64(dim.Width),
		Height: float64(dim.Height),
		Tree:   pagetext.New(cfg),
	}
	if img, err := PageImage(page); err == nil {
		out.Image = img
	}

	for _, line := range page.Lines {
		for _, token := range page.Tokens {
			if !isElementInParent(token.Layout, line.Layout) {
				continue
			}
			r, ok := layoutRect(token.Layout, dim)
			if !ok {
				continue
			}
			text := cleanTokenText(textFromLayout(token.Layout, fullText))
			for _, g := range pagetext.SplitRun(text, r, r.MaxY()) {
				out.Tree.Ingest(g, nil)
			}
		}
		out.Tree.NewLine()
	}
	return out, nil
}

// layoutRect converts the bounding poly of a layout to page pixels. Normalized
// vertices (0-1) are scaled by the page dimension; absolute vertices are used
// as they are.
func layoutRect(layout *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension) (pagetext.Rect, bool) {
	poly := layout.GetBoundingPoly()
	if poly == nil {
		return pagetext.Rect{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(x, y float64) {
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}

	switch {
	case len(poly.NormalizedVertices) > 0:
		w, h := float64(dim.Width), float64(dim.Height)
		for _, v := range poly.NormalizedVertices {
			extend(float64(v.X)*w, float64(v.Y)*h)
		}
	case len(poly.Vertices) > 0:
		for _, v := range poly.Vertices {
			extend(float64(v.X), float64(v.Y))
		}
	default:
		return pagetext.Rect{}, false
	}
	return pagetext.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}
