package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/pagetext/pkg/hocr"
	"github.com/gardar/pagetext/pkg/pagetext"
	"github.com/gardar/pagetext/pkg/pdfoverlay"
)

const sampleHOCR = `<html><head><title>t</title></head><body>
<div class="ocr_page" id="page_1" title="bbox 0 0 600 800; ppageno 1">
 <span class="ocr_line" title="bbox 10 10 140 30">
  <span class="ocrx_word" title="bbox 10 10 60 30">Hello</span>
  <span class="ocrx_word" title="bbox 80 10 140 30">world</span>
 </span>
 <span class="ocr_line" title="bbox 10 40 50 60">
  <span class="ocrx_word" title="bbox 10 40 50 60; x_ocg Watermark">DRAFT</span>
 </span>
</div>
<div class="ocr_page" id="page_2" title="bbox 0 0 600 800; ppageno 2">
 <span class="ocr_line" title="bbox 10 10 60 30">
  <span class="ocrx_word" title="bbox 10 10 60 30">again</span>
 </span>
</div>
</body></html>`

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_HOCR(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		hocrPath:     writeTemp(t, "in.hocr", sampleHOCR),
		selectAll:    true,
		highlight:    "WORLD",
		textPath:     filepath.Join(dir, "out.txt"),
		selectedPath: filepath.Join(dir, "selected.txt"),
		hocrOutPath:  filepath.Join(dir, "out.hocr"),
		overlayPath:  filepath.Join(dir, "out.pdf"),
	}
	cfg := defaultConfig()
	cfg.HiddenLayers = []string{"Watermark"}

	require.NoError(t, run(context.Background(), opts, cfg, discard()))

	assert.Equal(t, "Hello   world\n\fagain\n", readFile(t, opts.textPath))
	assert.Equal(t, "Hello   world\n\fagain\n", readFile(t, opts.selectedPath))

	doc, err := hocr.Parse([]byte(readFile(t, opts.hocrOutPath)))
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "Hello world\n\nagain\n", hocr.ExtractText(&doc))

	overlay := readFile(t, opts.overlayPath)
	require.True(t, strings.HasPrefix(overlay, "%PDF"))
	layers, err := pdfoverlay.DetectLayers([]byte(overlay))
	require.NoError(t, err)
	assert.Contains(t, layers, "Watermark")
	assert.Contains(t, layers, "Page Text (Page 2)")
}

func TestRun_ShowsLayersByDefault(t *testing.T) {
	opts := options{
		hocrPath: writeTemp(t, "in.hocr", sampleHOCR),
		textPath: filepath.Join(t.TempDir(), "out.txt"),
	}
	require.NoError(t, run(context.Background(), opts, defaultConfig(), discard()))
	assert.Equal(t, "Hello   world\nDRAFT\n\fagain\n", readFile(t, opts.textPath))
}

func TestRun_MissingInput(t *testing.T) {
	opts := options{
		hocrPath: filepath.Join(t.TempDir(), "missing.hocr"),
		textPath: filepath.Join(t.TempDir(), "out.txt"),
	}
	err := run(context.Background(), opts, defaultConfig(), discard())
	assert.ErrorContains(t, err, "failed to read hOCR file")
}

func TestFromDocument_JSON(t *testing.T) {
	doc := &documentaipb.Document{
		Text: "Hi",
		Pages: []*documentaipb.Document_Page{{
			PageNumber: 1,
			Dimension:  &documentaipb.Document_Page_Dimension{Width: 100, Height: 200, Unit: "pixels"},
		}},
	}

	in, err := fromDocument(context.Background(), doc, pagetext.DefaultConfig(), true)
	require.NoError(t, err)
	require.Len(t, in.pages, 1)
	assert.Equal(t, 200.0, in.pages[0].height)

	var dump map[string]any
	require.NoError(t, json.Unmarshal([]byte(in.docJSON), &dump))
	assert.Equal(t, "Hi", dump["text"])

	in, err = fromDocument(context.Background(), doc, pagetext.DefaultConfig(), false)
	require.NoError(t, err)
	assert.Empty(t, in.docJSON)
}
