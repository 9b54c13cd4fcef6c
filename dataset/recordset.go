// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

// Package dataset defines the rectangular RecordSet produced by every report
// operation and the normalizer that flattens raw Zoom API pages into one.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// Row is one record: a mapping from normalized column name to a string-typed
// value. Every cell is text; uniform typing avoids column type drift when
// different pages carry sparse or missing optional fields.
type Row = map[string]string

// RecordSet is the rectangular, column-stable dataset produced for a single
// logical operation. Columns are the union of fields observed in the source
// pages, in first-observed order. Rows preserve page arrival order; that
// order reflects pagination, not a business ordering, and is never re-sorted.
type RecordSet struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int {
	return len(rs.Rows)
}

// HasColumn reports whether the named column is present.
func (rs *RecordSet) HasColumn(name string) bool {
	return slices.Contains(rs.Columns, name)
}

// addColumnName registers a column name if it is not already known.
func (rs *RecordSet) addColumnName(name string) {
	if !rs.HasColumn(name) {
		rs.Columns = append(rs.Columns, name)
	}
}

// AddRow appends a row, registering any columns it introduces.
func (rs *RecordSet) AddRow(row Row) {
	for _, name := range sortedKeys(row) {
		rs.addColumnName(name)
	}
	rs.Rows = append(rs.Rows, row)
}

// SetColumn sets the named column to the same value on every row, appending
// the column when it is new.
func (rs *RecordSet) SetColumn(name, value string) {
	rs.addColumnName(name)
	for _, row := range rs.Rows {
		row[name] = value
	}
}

// PrependColumn inserts the named column at the front of the column order and
// stamps the same value on every row. Used to annotate rows with the
// caller-supplied identifier when the response does not echo it.
func (rs *RecordSet) PrependColumn(name, value string) {
	if !rs.HasColumn(name) {
		rs.Columns = append([]string{name}, rs.Columns...)
	}
	for _, row := range rs.Rows {
		row[name] = value
	}
}

// RenameColumn renames a column on every row, preserving its position. A
// missing source column is a no-op.
func (rs *RecordSet) RenameColumn(from, to string) {
	idx := slices.Index(rs.Columns, from)
	if idx < 0 {
		return
	}
	rs.Columns[idx] = to
	for _, row := range rs.Rows {
		if v, ok := row[from]; ok {
			delete(row, from)
			row[to] = v
		}
	}
}

// DropColumns removes the named columns from the column order and from every
// row. Missing columns are ignored.
func (rs *RecordSet) DropColumns(names ...string) {
	for _, name := range names {
		idx := slices.Index(rs.Columns, name)
		if idx < 0 {
			continue
		}
		rs.Columns = slices.Delete(rs.Columns, idx, idx+1)
		for _, row := range rs.Rows {
			delete(row, name)
		}
	}
}

// Append concatenates another RecordSet onto this one, merging column sets in
// first-observed order and preserving row order.
func (rs *RecordSet) Append(other *RecordSet) {
	if other == nil {
		return
	}
	for _, name := range other.Columns {
		rs.addColumnName(name)
	}
	rs.Rows = append(rs.Rows, other.Rows...)
}

// Value returns the cell at (row, column); missing cells are empty strings.
func (rs *RecordSet) Value(row int, column string) string {
	if row < 0 || row >= len(rs.Rows) {
		return ""
	}
	return rs.Rows[row][column]
}

// WriteCSV writes the RecordSet as CSV with a header row. Missing cells are
// written as empty fields so the output stays rectangular.
func (rs *RecordSet) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i, name := range rs.Columns {
			record[i] = row[name]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the RecordSet as a JSON array of objects.
func (rs *RecordSet) WriteJSON(w io.Writer) error {
	rows := rs.Rows
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
