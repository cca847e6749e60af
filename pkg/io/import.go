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

	"github.com/matzehuels/burst/pkg/errors"
)

// Format is a data file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var formatFromExt = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatFromExt[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported data file extension %q", ext)
}

// tomlDoc is the TOML data file layout.
type tomlDoc struct {
	Items []any `toml:"items"`
}

// ReadData decodes a list of items from r.
//
// An empty document yields an empty, non-nil list. A document whose top level
// is not a list (or, for TOML, has no "items" array) is an INVALID_DATA error.
// ReadData does not close r.
func ReadData(r io.Reader, format Format) ([]any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []any{}, nil
	}

	var items []any
	switch format {
	case FormatJSON:
		err = json.Unmarshal(raw, &items)
	case FormatYAML:
		err = yaml.Unmarshal(raw, &items)
	case FormatTOML:
		var doc tomlDoc
		_, err = toml.Decode(string(raw), &doc)
		items = doc.Items
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported data format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode %s", format)
	}
	if items == nil {
		return []any{}, nil
	}

	if format == FormatJSON {
		return items, nil
	}
	return normalize(items)
}

// normalize maps decoded items onto the JSON data model.
func normalize(items []any) ([]any, error) {
	buf, err := json.Marshal(items)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "items are not representable as JSON")
	}
	var out []any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "normalize items")
	}
	return out, nil
}

// ImportData reads the data file at path, choosing the format by extension.
func ImportData(path string) ([]any, error) {
	if err := errors.ValidateDataPath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	items, err := ReadData(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
