// Package hocr reads and writes hOCR, the HTML-based format for positioned
// text, and converts between hOCR pages and page text trees.
//
// This package provides:
//
// - An object model for the part of the hOCR hierarchy a text tree needs:
// Document → Pages → Lines → Words, with bounding boxes
// - Functions for parsing hOCR HTML into that model
// - Functions for feeding an hOCR page into a pagetext.Tree, and for
// building an hOCR page from the visible content of a tree
// - Functions for generating hOCR HTML from the model
//
// Words drawn inside optional content carry their layer stack in the
// non-standard 'x_ocg' title property, so layered trees survive a round trip.
//
// Main Functions:
//
// - Parse: Parses hOCR data from HTML into the object model
// - IngestPage: Feeds an hOCR page into a text tree
// - FromTree: Builds an hOCR page from a text tree
// - Generate: Generates hOCR HTML from the object model
package hocr
