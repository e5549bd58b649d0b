// Package pagetext implements the text model of a single page: a tree of
// lines, words and glyphs built from positioned glyphs as a content
// interpreter paints them.
//
// This package provides:
//
// - Online word segmentation from glyph bounding boxes, materializing
// synthetic whitespace words where a gap is wide enough to read as a space
// - Line assembly driven by the interpreter's baseline changes
// - Optional content (layer) sub-trees composed at query time against an
// externally supplied visibility predicate
// - A selection and highlight protocol shared by Word, Line and Tree, with
// "has selected/highlighted descendant" hints for cheap repaint decisions
// - Plain-text and selected-text extraction, hit-testing under a caller
// transform, and re-normalization of nested form text into page space
//
// The hierarchy is:
//
// Tree → Lines → Words → Glyphs, plus Tree → layer sub-trees (each a Tree).
//
// Page space has its origin at the top-left corner of the page with Y
// growing downwards. Geometry cached on words and lines is always in page
// space; caller transforms (zoom, rotation) only ever apply to temporary
// paths built for a single hit test.
//
// Concurrency: a Tree is built by a single writer. Ingest, NewLine,
// ApplyTransform and Merge must never run concurrently on the same Tree.
// Once ingestion is complete the read operations (VisibleLines, Text,
// SelectedText, Contains, Intersects, WordAt) may run from several
// goroutines as long as selection and highlight mutations are serialized
// against them by the owner. Cached bounds are only stored by the writer, so
// reads never write. Trees of different pages share no state.
//
// Key Types:
//
// - Glyph: a positioned character
// - Word: a run of glyphs, either content or whitespace
// - Line: words on one baseline
// - Tree: the page (or layer) root
// - SelectionHost: the protocol implemented by Word, Line and Tree
package pagetext
