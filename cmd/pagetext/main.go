// pagetext is a command-line tool for building page text trees and working
// with them: extracting text, selecting, searching and rendering.
//
// Text comes from one of three sources: the text already in a PDF, Google
// Document AI OCR of a PDF, or an hOCR file. Layers (optional content) can
// be hidden through the configuration file or -hide, which changes what the
// text outputs contain and which layers start visible in a rendered PDF.
//
// Usage:
//
//	pagetext [-config config.yml] (-pdf input.pdf [-docai] | -hocr input.hocr [-pdf input.pdf]) [options]
//
// Input flags:
//
//	-pdf string     Path to the input PDF
//	-docai          Recognize the PDF with Document AI instead of reading its text
//	-hocr string    Path to an hOCR file (text is drawn over -pdf pages when both are given)
//
// Operations:
//
//	-select-all         Select all text
//	-highlight string   Highlight every occurrence of a phrase
//	-case-sensitive     Match -highlight case sensitively
//	-hide string        Comma separated list of layers to hide
//
// Output options (at least one required):
//
//	-text string       Path to save the visible text
//	-selected string   Path to save the selected text
//	-hocr-out string   Path to save the text as hOCR
//	-json string       Path to save the raw Document AI response as JSON (with -docai)
//	-overlay string    Path to save a PDF with the text layer, selection and highlights
//	-layers            Print the optional content layers of -pdf
//
// Configuration:
//
//	segmentation:
//	  space_fraction: 3
//	baseline_tolerance: 0.5
//	hidden_layers: ["Watermark"]
//	docai:
//	  project_id: "your-gcp-project-id"
//	  location: "us"
//	  processor_id: "your-processor-id"
//	overlay:
//	  layer_name: "Page Text"
//	  debug: false
//	  force: false
//	log:
//	  level: info
//	  format: text
//
// Example:
//
//	pagetext -pdf report.pdf -highlight "net income" -overlay report_marked.pdf
//	pagetext -config config.yml -pdf scan.pdf -docai -text scan.txt -hocr-out scan.hocr
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
)

type options struct {
	configPath string
	pdfPath    string
	docAI      bool
	hocrPath   string

	selectAll     bool
	highlight     string
	caseSensitive bool
	hide          string
	debug         bool
	force         bool

	textPath     string
	selectedPath string
	hocrOutPath  string
	jsonPath     string
	overlayPath  string
	listLayers   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to the config YAML file")
	flag.StringVar(&opts.pdfPath, "pdf", "", "Path to the input PDF file")
	flag.BoolVar(&opts.docAI, "docai", false, "Recognize the PDF with Google Document AI")
	flag.StringVar(&opts.hocrPath, "hocr", "", "Path to an input hOCR file")
	flag.BoolVar(&opts.selectAll, "select-all", false, "Select all text")
	flag.StringVar(&opts.highlight, "highlight", "", "Highlight every occurrence of a phrase")
	flag.BoolVar(&opts.caseSensitive, "case-sensitive", false, "Match -highlight case sensitively")
	flag.StringVar(&opts.hide, "hide", "", "Comma-separated list of layers to hide")
	flag.BoolVar(&opts.debug, "debug", false, "Draw the overlay text visibly with word boxes")
	flag.BoolVar(&opts.force, "force", false, "Render the overlay even if the PDF already has a text layer")
	flag.StringVar(&opts.textPath, "text", "", "Path to save the visible text")
	flag.StringVar(&opts.selectedPath, "selected", "", "Path to save the selected text")
	flag.StringVar(&opts.hocrOutPath, "hocr-out", "", "Path to save the text as hOCR")
	flag.StringVar(&opts.jsonPath, "json", "", "Path to save the Document AI response as JSON")
	flag.StringVar(&opts.overlayPath, "overlay", "", "Path to save the PDF with the text overlay")
	flag.BoolVar(&opts.listLayers, "layers", false, "Print the optional content layers of -pdf")
	flag.Parse()

	if err := opts.check(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(opts.configPath)
	if err == nil {
		opts.apply(&cfg)
		err = cfg.validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := run(context.Background(), opts, cfg, log); err != nil {
		log.Error("pagetext failed", "error", err)
		os.Exit(1)
	}
}

func (o options) check() error {
	if o.pdfPath == "" && o.hocrPath == "" {
		return fmt.Errorf("either -pdf or -hocr must be provided")
	}
	if o.docAI && o.pdfPath == "" {
		return fmt.Errorf("-docai requires -pdf")
	}
	if o.docAI && o.hocrPath != "" {
		return fmt.Errorf("-docai and -hocr cannot be combined")
	}
	if o.jsonPath != "" && !o.docAI {
		return fmt.Errorf("-json requires -docai")
	}
	if o.listLayers && o.pdfPath == "" {
		return fmt.Errorf("-layers requires -pdf")
	}
	if !o.writesOutput() && !o.listLayers {
		return fmt.Errorf("at least one output flag must be provided (-text, -selected, -hocr-out, -json, -overlay or -layers)")
	}
	return nil
}

func (o options) writesOutput() bool {
	return o.textPath != "" || o.selectedPath != "" || o.hocrOutPath != "" || o.jsonPath != "" || o.overlayPath != ""
}

// apply lets flags override the configuration file
func (o options) apply(cfg *fileConfig) {
	if o.hide != "" {
		cfg.HiddenLayers = append(cfg.HiddenLayers, strings.Split(o.hide, ",")...)
	}
	if o.debug {
		cfg.Overlay.Debug = true
		cfg.Log.Level = "debug"
	}
	if o.force {
		cfg.Overlay.Force = true
	}
}
