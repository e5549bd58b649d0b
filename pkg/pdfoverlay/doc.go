// Package pdfoverlay renders page text trees onto PDF pages.
//
// Text is positioned over the page with the bounding boxes of its words and
// drawn invisibly, so the resulting PDF is searchable and selectable while
// showing the original page. Pages can be new (optionally with a background
// image) or imported from an existing PDF.
//
// Key Features:
//
// - One PDF optional content group (layer) for the base text of each page
// - One layer per tree layer, initially visible when the tree's visibility
// predicate says so
// - Selection and highlight fills for marked glyphs
// - Detection of existing layers to prevent duplicate text layers
//
// Main Functions:
//
// - Render: builds a PDF from pages and their text trees
// - DetectLayers: lists optional content group names in a PDF
// - CheckExistingLayers: looks for a previously rendered text layer
package pdfoverlay
