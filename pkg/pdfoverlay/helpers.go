package pdfoverlay

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var pdfStringUnescaper = strings.NewReplacer(
	`\(`, "(",
	`\)`, ")",
	`\r`, "\r",
	`\n`, "\n",
	`\\`, `\`,
)

func unescapePDFString(s string) string {
	return pdfStringUnescaper.Replace(s)
}

// decodeUTF16BE decodes a PDF text string that starts with a UTF-16BE BOM.
func decodeUTF16BE(b []byte) (string, error) {
	if len(b) < 2 || b[0] != 0xFE || b[1] != 0xFF {
		return "", fmt.Errorf("no BOM detected, cannot confirm UTF-16BE")
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode UTF-16BE: %w", err)
	}
	return string(out), nil
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}
