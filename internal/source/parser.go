// Package source discovers and parses subscription import files.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/store"
)

// ParseFile reads an import file and decodes the records it carries.
//
// Accepted shapes:
//   - web dump   → JSON object with the browser storage keys; the records
//     value may be an array or a JSON-encoded array string
//   - store dump → JSON object with "records" and "rate" keys
//   - json       → a bare array of records
//   - yaml       → a YAML sequence of records (the yaml export)
func ParseFile(path string) ParseResult {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return ParseResult{Path: path, Err: err}
	}
	res := Parse(data, filepath.Ext(path))
	res.Path = path
	return res
}

// Parse decodes data. ext selects YAML for ".yaml"/".yml"; anything else is
// sniffed as JSON.
func Parse(data []byte, ext string) ParseResult {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return parseYAML(data)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ParseResult{Format: FormatJSON, Err: fmt.Errorf("empty file")}
	}

	switch trimmed[0] {
	case '[':
		records, skipped := model.DecodeRecords(trimmed)
		return ParseResult{Format: FormatJSON, Records: records, ParseErrors: skipped}
	case '{':
		return parseObject(trimmed)
	default:
		return ParseResult{Format: FormatJSON, Err: fmt.Errorf("expected a JSON array or object")}
	}
}

func parseObject(data []byte) ParseResult {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return ParseResult{Format: FormatJSON, Err: fmt.Errorf("parsing JSON: %w", err)}
	}

	if raw, ok := obj[LegacyRecordsKey]; ok {
		res := ParseResult{Format: FormatWebDump}
		res.Records, res.ParseErrors = model.DecodeRecords(unwrapString(raw))
		res.Rate = rawText(obj[LegacyRateKey])
		return res
	}
	if raw, ok := obj[store.KeyRecords]; ok {
		res := ParseResult{Format: FormatStore}
		res.Records, res.ParseErrors = model.DecodeRecords(unwrapString(raw))
		res.Rate = rawText(obj[store.KeyRate])
		return res
	}

	// A single record object.
	records, skipped := model.DecodeRecords(append(append([]byte{'['}, data...), ']'))
	if len(records) == 0 {
		return ParseResult{Format: FormatJSON, Err: fmt.Errorf("no recognised keys in JSON object")}
	}
	return ParseResult{Format: FormatJSON, Records: records, ParseErrors: skipped}
}

func parseYAML(data []byte) ParseResult {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ParseResult{Format: FormatYAML, Err: fmt.Errorf("parsing YAML: %w", err)}
	}

	var rate string
	if m, ok := doc.(map[string]interface{}); ok {
		if r, ok := m[store.KeyRate]; ok {
			rate = fmt.Sprint(r)
		}
		doc = m[store.KeyRecords]
	}

	// Re-encode as JSON so records pass through the same tolerant decoder.
	js, err := json.Marshal(doc)
	if err != nil {
		return ParseResult{Format: FormatYAML, Err: fmt.Errorf("converting YAML: %w", err)}
	}
	records, skipped := model.DecodeRecords(js)
	return ParseResult{Format: FormatYAML, Records: records, Rate: rate, ParseErrors: skipped}
}

// unwrapString returns the contents of a JSON string value, or raw unchanged.
// The browser stored records as a JSON-encoded string.
func unwrapString(raw json.RawMessage) []byte {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []byte(s)
	}
	return raw
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}
