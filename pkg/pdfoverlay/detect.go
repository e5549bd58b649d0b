package pdfoverlay

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ocgPatterns match the name of an optional content group in raw PDF bytes.
// Names are PDF literal strings, so escaped parentheses are part of the
// capture.
var ocgPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/Type\s*/OCG\s*/Name\s*\(((?:\\.|[^\\)])+)\)`),
	regexp.MustCompile(`/OCG\s*<<[^>]*?/Name\s*\(((?:\\.|[^\\)])+)\)`),
	regexp.MustCompile(`/Name\s*\(((?:\\.|[^\\)])+)\)[\s\S]{1,50}?/Type\s*/OCG`),
}

// DetectLayers lists the optional content group names found in raw PDF data,
// in order of first appearance.
func DetectLayers(pdfData []byte) ([]string, error) {
	if len(pdfData) == 0 {
		return nil, errors.New("empty PDF data")
	}

	content := string(pdfData)
	var layers []string
	for _, re := range ocgPatterns {
		for _, match := range re.FindAllStringSubmatch(content, -1) {
			layers = append(layers, unescapePDFString(match[1]))
		}
	}

	// Check if any are UTF-16 BOM
	for i, layer := range layers {
		if strings.HasPrefix(layer, "\xfe\xff") {
			if decoded, err := decodeUTF16BE([]byte(layer)); err == nil {
				layers[i] = decoded
			}
		}
	}

	// Deduplicate
	unique := make([]string, 0, len(layers))
	seen := make(map[string]bool)
	for _, l := range layers {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}
	return unique, nil
}

// LayerCheckResult contains the results of checking for text layers
type LayerCheckResult struct {
	Layers        []string // All detected layers
	HasTextLayer  bool     // True if the configured text layer exists
	TextLayerName string   // Name of the detected text layer (if any)
	Warnings      []string // Layers that look like text layers from other tools
}

// CheckExistingLayers checks a PDF for a text layer named like layerName,
// either exactly or with a "(Page N)" suffix.
func CheckExistingLayers(pdfData []byte, layerName string) (LayerCheckResult, error) {
	result := LayerCheckResult{}

	layers, err := DetectLayers(pdfData)
	if err != nil {
		return result, fmt.Errorf("cannot analyze layers: %w", err)
	}
	result.Layers = layers

	pageLayerPattern := regexp.MustCompile(fmt.Sprintf(`^%s\s*\(Page\s*\d+.*`, regexp.QuoteMeta(layerName)))

	for _, layer := range layers {
		if layer == layerName || pageLayerPattern.MatchString(layer) {
			result.HasTextLayer = true
			result.TextLayerName = layer
			break
		}

		lower := strings.ToLower(layer)
		if (strings.Contains(lower, "ocr") || strings.Contains(lower, "text")) &&
			!strings.HasPrefix(layer, layerName) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("existing layer might contain text: %s", layer))
		}
	}

	return result, nil
}
