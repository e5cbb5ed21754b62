package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/circuitdraw/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatCirc Format = "circ"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatTOML, FormatJSON, FormatCirc}

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".circ":
		return FormatCirc, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "%s: unsupported document type (want .toml, .json or .circ)", filepath.Base(path))
}

// IsDocument reports whether path has a document extension.
func IsDocument(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// Load reads and validates a document.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse decodes and validates a document. name is used in messages.
func Parse(data []byte, format Format, name string) (*Document, error) {
	var doc *Document
	switch format {
	case FormatTOML:
		doc = &Document{}
		md, err := toml.Decode(string(data), doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", name)
		}
		if extra := md.Undecoded(); len(extra) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: unknown key %s", name, extra[0])
		}
	case FormatJSON:
		doc = &Document{}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", name)
		}
	case FormatCirc:
		var err error
		if doc, err = ParseCirc(data, name); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	if err := doc.Validate(); err != nil {
		return nil, errors.Context(err, errors.ErrCodeInvalidDocument, "%s", name)
	}
	return doc, nil
}
