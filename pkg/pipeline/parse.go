package pipeline

import (
	"bytes"

	docio "github.com/matzehuels/energydiagram/pkg/io"
)

// Parse decodes and validates a document held in memory. format is one of
// "json", "toml", "yaml"; an empty format means JSON.
func Parse(data []byte, format string) (*docio.Document, error) {
	if format == "" {
		format = string(docio.FormatJSON)
	}
	f, err := docio.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return docio.Read(bytes.NewReader(data), f)
}

// ParseFile reads a document from disk, choosing the decoder by extension.
func ParseFile(path string) (*docio.Document, error) {
	return docio.ImportFile(path)
}
