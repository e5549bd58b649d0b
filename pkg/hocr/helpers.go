package hocr

import (
	"strings"
)

// ExtractText extracts all text from an hOCR document
// Words are joined by a space, each line ends with a newline
// and pages are separated by an empty line
func ExtractText(doc *Document) string {
	var builder strings.Builder

	for i, page := range doc.Pages {
		if i > 0 {
			builder.WriteString("\n")
		}
		for _, line := range page.Lines {
			for j, word := range line.Words {
				if j > 0 {
					builder.WriteString(" ")
				}
				builder.WriteString(strings.TrimSpace(word.Text))
			}
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
