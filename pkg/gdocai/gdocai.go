// Package gdocai turns Google Document AI OCR results into page text trees.
//
// Every token Document AI recognizes becomes a run of glyphs spread across
// the token's bounding box, one tree line per Document AI line. Spaces
// between tokens are left to the tree's space detection, so the text of a
// tree follows the geometry of the page rather than Document AI's own
// text layout.
//
// Main Functions:
//
// - ProcessDocument: Sends a document to Google Document AI for processing
// - PageTrees: Builds one text tree per page of a processed document
// - DocumentLanguage: Finds the most common language of a document
// - ToJSON: Dumps a response for debugging
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
// or Config.CredentialsFile
package gdocai

import (
	"errors"
	"log/slog"
)

// Config identifies the Document AI processor
type Config struct {
	ProjectID       string       `yaml:"project_id"`
	Location        string       `yaml:"location"`
	ProcessorID     string       `yaml:"processor_id"`
	CredentialsFile string       `yaml:"credentials_file"` // Defaults to GOOGLE_APPLICATION_CREDENTIALS
	Logger          *slog.Logger `yaml:"-"`
}

// Validate reports missing processor settings.
func (c *Config) Validate() error {
	var errs []error
	if c.ProjectID == "" {
		errs = append(errs, errors.New("project_id is required"))
	}
	if c.Location == "" {
		errs = append(errs, errors.New("location is required"))
	}
	if c.ProcessorID == "" {
		errs = append(errs, errors.New("processor_id is required"))
	}
	return errors.Join(errs...)
}

func (c *Config) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
