package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"math"
	"net/url"
	"strings"
	"text/template"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"text":      func(s string) string { return html.EscapeString(strings.TrimSpace(s)) },
	"esc":       html.EscapeString,
	"bbox":      formatBBox,
	"pageTitle": pageTitle,
	"wordTitle": wordTitle,
}

// Generate creates an hOCR HTML document from the Document struct
// Uses the embedded template to generate a complete HTML document
func Generate(doc *Document) (string, error) {
	tmpl, err := template.New("hocr.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/hocr.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing hOCR template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}
	return buf.String(), nil
}

// formatBBox renders integer hOCR bbox coordinates.
func formatBBox(b BoundingBox) string {
	return fmt.Sprintf("bbox %d %d %d %d", round(b.X1), round(b.Y1), round(b.X2), round(b.Y2))
}

func round(v float64) int {
	return int(math.Round(v))
}

func pageTitle(p Page) string {
	parts := []string{formatBBox(p.BBox)}
	if p.ImageName != "" {
		parts = append(parts, fmt.Sprintf("image %q", p.ImageName))
	}
	if p.PageNumber > 0 {
		parts = append(parts, fmt.Sprintf("ppageno %d", p.PageNumber))
	}
	return strings.Join(parts, "; ")
}

func wordTitle(w Word) string {
	parts := []string{formatBBox(w.BBox)}
	if w.Confidence > 0 {
		parts = append(parts, fmt.Sprintf("x_wconf %d", round(w.Confidence)))
	}
	if len(w.Layers) > 0 {
		ids := make([]string, len(w.Layers))
		for i, id := range w.Layers {
			ids[i] = url.QueryEscape(string(id))
		}
		parts = append(parts, layerProperty+" "+strings.Join(ids, " "))
	}
	return strings.Join(parts, "; ")
}
