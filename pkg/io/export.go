package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/burst/pkg/errors"
)

// WriteData encodes items in the given format. The output can be read back
// with [ReadData].
func WriteData(w io.Writer, items []any, format Format) error {
	if items == nil {
		items = []any{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(tomlDoc{Items: items}); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported data format %q", format)
	}
	return nil
}

// ExportData writes items to path, choosing the format by extension.
func ExportData(path string, items []any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteData(f, items, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
