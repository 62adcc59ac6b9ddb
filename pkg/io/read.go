package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/energydiagram/pkg/errors"
)

// Format is a document serialization.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// MaxDocumentSize bounds how much input the readers consume.
const MaxDocumentSize = 8 << 20

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"cannot infer document format from %q (want .json, .toml, .yaml or .yml)", filepath.Base(path))
}

// ParseFormat accepts "json", "toml", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", s)
}

// ReadJSON decodes a JSON document from r and validates it. Unknown fields
// are rejected so typos do not silently fall back to defaults.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(io.LimitReader(r, MaxDocumentSize))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
	}
	return validated(&doc)
}

// ReadTOML decodes a TOML document from r and validates it.
func ReadTOML(r io.Reader) (*Document, error) {
	var doc Document
	md, err := toml.NewDecoder(io.LimitReader(r, MaxDocumentSize)).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "decode toml: unknown key %q", undec[0].String())
	}
	return validated(&doc)
}

// ReadYAML decodes a YAML document from r and validates it.
func ReadYAML(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(io.LimitReader(r, MaxDocumentSize))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "decode yaml: empty document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode yaml")
	}
	return validated(&doc)
}

// Read decodes a document in the given format.
func Read(r io.Reader, f Format) (*Document, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatYAML:
		return ReadYAML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", string(f))
}

// ReadBytes decodes a document held in memory.
func ReadBytes(data []byte, f Format) (*Document, error) {
	return Read(bytes.NewReader(data), f)
}

// ImportFile reads a document from path, choosing the decoder by extension.
func ImportFile(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Read(file, f)
}

func validated(doc *Document) (*Document, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
