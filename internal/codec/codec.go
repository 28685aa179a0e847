// Package codec reads and writes contract documents in their two textual
// formats, JSON and YAML. Both formats carry the same field names, so
// conversion between them goes through a generic map.
//
// Integers are kept as integers across the boundary: JSON input is decoded
// with json.Number and normalized, so a port of 5432 never becomes 5432.0
// on the YAML side.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thiruselvaa/odcs-converter/internal/contract"
)

// Format is a textual document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat reports a path or name that maps to no supported format.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat resolves a format name. "yml" is accepted as an alias.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// DetectFormat resolves a format from a file path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// IsWorkbookPath reports whether the path names an Excel workbook.
func IsWorkbookPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// Decode parses document bytes in the given format, returning both the typed
// document and the raw field map. The raw map preserves fields the typed
// model does not know, which the closed-schema check needs.
func Decode(data []byte, format Format) (*contract.Document, map[string]any, error) {
	doc := &contract.Document{}
	raw := map[string]any{}

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, nil, fmt.Errorf("parse json: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("parse json: %w", err)
		}
		raw = normalizeNumbers(raw).(map[string]any)
	case FormatYAML:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, nil, fmt.Errorf("parse yaml: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return doc, raw, nil
}

// DecodeFile reads and parses a document file, detecting the format from the
// extension.
func DecodeFile(path string) (*contract.Document, map[string]any, Format, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	doc, raw, err := Decode(data, format)
	if err != nil {
		return nil, nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return doc, raw, format, nil
}

// EncodeMap serializes a field map. JSON output is two-space indented; YAML
// output uses two-space indentation and block style.
func EncodeMap(m map[string]any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// EncodeDocument serializes a document after stripping empty values.
func EncodeDocument(doc *contract.Document, format Format) ([]byte, error) {
	m, err := DocumentToMap(doc)
	if err != nil {
		return nil, err
	}
	return EncodeMap(contract.Clean(m), format)
}

// DocumentToMap converts the typed document into a generic field map. The
// round trip goes through YAML rather than JSON so integer values stay
// integers instead of widening to float64.
func DocumentToMap(doc *contract.Document) (map[string]any, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert document: %w", err)
	}
	m := map[string]any{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("convert document: %w", err)
	}
	return m, nil
}

// normalizeNumbers rewrites json.Number values into int64 or float64 so the
// map form is format-agnostic.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeNumbers(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
		return t
	default:
		return v
	}
}
