// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// metadataColumns are the pagination/protocol columns dropped from every
// normalized RecordSet regardless of whether the source pages carried them.
var metadataColumns = []string{
	"page_count",
	"page_number",
	"page_size",
	"next_page_token",
	"total_records",
}

// Normalize converts accumulated raw JSON pages into one rectangular
// RecordSet. For each page it locates the named collection field, flattens
// nested objects into underscore-joined paths, coerces every scalar to its
// string representation, and appends one row per record. Pages are
// concatenated in arrival order. A page whose collection field is absent or
// empty contributes zero rows rather than failing. Column names are
// canonicalized and the known pagination metadata columns are removed.
//
// Normalization is pure: the same pages always produce an identical
// RecordSet.
func Normalize(pages [][]byte, collection string) (*RecordSet, error) {
	rs := &RecordSet{}

	for i, page := range pages {
		parsed, err := parsePage(page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %d: %w", i+1, err)
		}

		records, ok := parsed[collection].([]any)
		if !ok {
			continue
		}
		for _, record := range records {
			obj, ok := record.(map[string]any)
			if !ok {
				continue
			}
			row := Row{}
			flattenInto(row, "", obj)
			rs.AddRow(row)
		}
	}

	canonicalizeColumns(rs)
	rs.DropColumns(metadataColumns...)
	return rs, nil
}

// NormalizeObject converts a single-object response body into one row. Fields
// whose values are themselves nested structures are discarded so cells stay
// scalar; the second return value names the discarded fields.
func NormalizeObject(body []byte) (Row, []string, error) {
	parsed, err := parsePage(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse object body: %w", err)
	}

	row := Row{}
	var dropped []string
	for key, value := range parsed {
		switch value.(type) {
		case map[string]any, []any:
			dropped = append(dropped, canonicalName(key))
		default:
			row[canonicalName(key)] = scalarString(value)
		}
	}

	for _, meta := range metadataColumns {
		delete(row, meta)
	}
	return row, dropped, nil
}

// parsePage decodes a JSON page, preserving numeric literals as json.Number
// so large IDs and timestamps do not drift through float64.
func parsePage(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var parsed map[string]any
	if err := dec.Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// flattenInto flattens a JSON object into the row. Nested objects contribute
// underscore-joined paths; nested arrays are carried as compact JSON text for
// endpoint shapers to unnest when they matter.
func flattenInto(row Row, prefix string, obj map[string]any) {
	for key, value := range obj {
		name := canonicalName(key)
		if prefix != "" {
			name = prefix + "_" + name
		}
		switch v := value.(type) {
		case map[string]any:
			flattenInto(row, name, v)
		case []any:
			compact, err := json.Marshal(v)
			if err != nil {
				row[name] = ""
				continue
			}
			row[name] = string(compact)
		default:
			row[name] = scalarString(v)
		}
	}
}

// scalarString coerces a decoded JSON scalar to text. Nulls become empty
// strings so sparse optional fields match absent ones.
func scalarString(value any) string {
	if value == nil {
		return ""
	}
	if n, ok := value.(json.Number); ok {
		return n.String()
	}
	return cast.ToString(value)
}

// canonicalName rewrites a field name into snake_case: camelCase boundaries
// become underscores, everything is lowercased, and separator runs collapse
// to a single underscore.
func canonicalName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	lastUnderscore := true
	var prev rune
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'A' && r <= 'Z':
			if !lastUnderscore && (unicodeLowerOrDigit(prev)) {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			lastUnderscore = false
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
		prev = r
	}
	return strings.TrimSuffix(b.String(), "_")
}

func unicodeLowerOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// canonicalizeColumns rewrites all column names into canonical form, merging
// columns that collapse to the same name.
func canonicalizeColumns(rs *RecordSet) {
	renames := map[string]string{}
	for _, name := range rs.Columns {
		canon := canonicalName(name)
		if canon != name {
			renames[name] = canon
		}
	}
	for from, to := range renames {
		rs.RenameColumn(from, to)
	}

	// Merge duplicates introduced by the rename.
	seen := map[string]bool{}
	merged := rs.Columns[:0]
	for _, name := range rs.Columns {
		if seen[name] {
			continue
		}
		seen[name] = true
		merged = append(merged, name)
	}
	rs.Columns = merged
}
