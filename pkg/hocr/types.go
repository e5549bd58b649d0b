package hocr

import (
	"github.com/gardar/pagetext/pkg/pagetext"
)

// Document represents an entire hOCR document
type Document struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-capabilities, ...
	Pages    []Page            // Pages in the document
}

// Page is one page of text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string            // Unique identifier
	PageNumber int               // Page number in document
	ImageName  string            // Source image filename
	BBox       BoundingBox       // Page coordinates
	Lines      []Line            // Lines in reading order
	Metadata   map[string]string // Other page properties
}

// Class assigns 'ocr_page' to 'Page'
func (Page) Class() string { return "ocr_page" }

// Line represents a line of text
// Corresponds to hOCR element with class: 'ocr_line'
type Line struct {
	ID       string      // Unique identifier
	BBox     BoundingBox // Line coordinates
	Baseline string      // Baseline information
	Words    []Word      // Words in this line
}

// Class assigns 'ocr_line' to 'Line'
func (Line) Class() string { return "ocr_line" }

// Word is a word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string             // Unique identifier
	Text       string             // The text content
	BBox       BoundingBox        // Word coordinates
	Confidence float64            // Recognition confidence (0-100)
	Layers     []pagetext.LayerID // Optional content stack, from the x_ocg property
}

// Class assigns 'ocrx_word' to 'Word'
func (Word) Class() string { return "ocrx_word" }

// BoundingBox represents a rectangle in the document
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// NewBoundingBox creates a bounding box from the x1, y1 (top-left) and
// x2, y2 (bottom-right) coordinates of an hOCR 'bbox' property.
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// BoundingBoxFromRect converts a page-space rectangle.
func BoundingBoxFromRect(r pagetext.Rect) BoundingBox {
	return NewBoundingBox(r.X, r.Y, r.MaxX(), r.MaxY())
}

// Rect converts the box to a page-space rectangle.
func (b BoundingBox) Rect() pagetext.Rect {
	return pagetext.Rect{X: b.X1, Y: b.Y1, W: b.X2 - b.X1, H: b.Y2 - b.Y1}
}

// Width returns the horizontal extent.
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent.
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }
