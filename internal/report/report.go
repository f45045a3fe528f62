// Package report renders structured metadata records as indented trees and
// normalized JSON.
//
// Records come from external markup scanners (validator and hierarchy
// extractors) as JSON: each record carries an id, a type, flat string
// attributes, and optional children. This package does no scraping of its
// own; it is the reporting end of that pipeline.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Record is one extracted metadata record.
type Record struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Children   []Record          `json:"children,omitempty"`
}

// Load reads records from a JSON file. The file may contain either a
// single record object or an array of records.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}
	return Parse(data)
}

// Parse decodes records from JSON bytes.
func Parse(data []byte) ([]Record, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parsing record: %w", err)
		}
		return []Record{r}, nil
	}

	var rs []Record
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}
	return rs, nil
}

// RenderTree renders records as a two-space-indented tree, one record per
// line: `<type> <id> [k=v ...]`. Attributes print in sorted key order so
// output is deterministic.
func RenderTree(records []Record) string {
	var sb strings.Builder
	for _, r := range records {
		renderRecord(&sb, r, 0)
	}
	return sb.String()
}

func renderRecord(sb *strings.Builder, r Record, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(r.Type)
	if r.ID != "" {
		sb.WriteString(" " + r.ID)
	}
	if len(r.Attributes) > 0 {
		keys := make([]string, 0, len(r.Attributes))
		for k := range r.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+r.Attributes[k])
		}
		sb.WriteString(" [" + strings.Join(pairs, " ") + "]")
	}
	sb.WriteString("\n")

	for _, c := range r.Children {
		renderRecord(sb, c, depth+1)
	}
}

// RenderJSON re-emits records as indented JSON.
func RenderJSON(records []Record) (string, error) {
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding records: %w", err)
	}
	return string(out) + "\n", nil
}
