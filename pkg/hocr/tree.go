package hocr

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gardar/pagetext/pkg/pagetext"
)

// IngestPage feeds the words of an hOCR page into tree, one line at a time.
// Each word's text is split into glyphs of equal width across its box; the
// gaps between words are left to the tree's space detection.
func IngestPage(tree *pagetext.Tree, page Page) {
	for _, line := range page.Lines {
		for _, word := range line.Words {
			text := norm.NFC.String(strings.TrimSpace(word.Text))
			box := word.BBox.Rect()
			for _, g := range pagetext.SplitRun(text, box, word.BBox.Y2) {
				tree.Ingest(g, word.Layers)
			}
		}
		tree.NewLine()
	}
}

// FromTree builds an hOCR page from the visible content of tree: base lines
// first, then the lines of each visible layer. Whitespace words are dropped
// since hOCR encodes spacing through word boxes.
func FromTree(tree *pagetext.Tree, pageNumber int, pageBox BoundingBox) Page {
	page := Page{
		ID:         fmt.Sprintf("page_%d", pageNumber),
		PageNumber: pageNumber,
		BBox:       pageBox,
		Metadata:   make(map[string]string),
	}
	appendTreeLines(&page, tree, nil)
	return page
}

func appendTreeLines(page *Page, tree *pagetext.Tree, layers []pagetext.LayerID) {
	for _, l := range tree.Lines() {
		lineNum := len(page.Lines) + 1
		line := Line{ID: fmt.Sprintf("line_%d_%d", page.PageNumber, lineNum)}
		if r, ok := l.Bounds(); ok {
			line.BBox = BoundingBoxFromRect(r)
		}
		for _, w := range l.Words() {
			if w.IsWhitespace() {
				continue
			}
			r, ok := w.Bounds()
			if !ok {
				continue
			}
			line.Words = append(line.Words, Word{
				ID:     fmt.Sprintf("word_%d_%d_%d", page.PageNumber, lineNum, len(line.Words)+1),
				Text:   w.Text(),
				BBox:   BoundingBoxFromRect(r),
				Layers: layers,
			})
		}
		if len(line.Words) > 0 {
			page.Lines = append(page.Lines, line)
		}
	}

	for _, id := range tree.Layers() {
		if !tree.IsLayerVisible(id) {
			continue
		}
		sub, _ := tree.Layer(id)
		appendTreeLines(page, sub, append(slices.Clip(layers), id))
	}
}

// NewDocument wraps pages in a Document with the usual hOCR metadata.
func NewDocument(title string, pages ...Page) *Document {
	return &Document{
		Title: title,
		Metadata: map[string]string{
			"ocr-system":          "pagetext",
			"ocr-capabilities":    "ocr_page ocr_line ocrx_word",
			"ocr-number-of-pages": fmt.Sprintf("%d", len(pages)),
		},
		Pages: pages,
	}
}
