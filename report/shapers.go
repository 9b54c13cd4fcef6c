// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"

	"github.com/clearinsights/zoomreport/dataset"
)

// Meeting structural type codes as reported by the Zoom API.
const (
	MeetingTypeInstant              = 1
	MeetingTypeScheduled            = 2
	MeetingTypeRecurringNoFixedTime = 3
	MeetingTypeRecurringFixedTime   = 8
	MeetingTypeScreenShareOnly      = 10
)

// Webinar structural type codes.
const (
	WebinarTypeSingle             = 5
	WebinarTypeRecurringNoFixed   = 6
	WebinarTypeRecurringFixedTime = 9
)

var meetingTypeLabels = map[string]string{
	"1":  "Instant meeting",
	"2":  "Scheduled meeting",
	"3":  "Recurring meeting (no fixed time)",
	"8":  "Recurring meeting (fixed time)",
	"10": "Screen-share only meeting",
}

var webinarTypeLabels = map[string]string{
	"5": "Webinar",
	"6": "Recurring webinar (no fixed time)",
	"9": "Recurring webinar (fixed time)",
}

// MeetingTypeLabel maps a meeting type code, already coerced to its string
// form, to a human-readable label. Codes outside the table map to "Unknown".
func MeetingTypeLabel(code string) string {
	if label, ok := meetingTypeLabels[code]; ok {
		return label
	}
	return "Unknown"
}

// WebinarTypeLabel maps a webinar type code to a human-readable label.
func WebinarTypeLabel(code string) string {
	if label, ok := webinarTypeLabels[code]; ok {
		return label
	}
	return "Unknown"
}

// addTypeLabel derives a type_label column from the type column using the
// given lookup.
func addTypeLabel(rs *dataset.RecordSet, lookup func(string) string) {
	if !rs.HasColumn("type") {
		return
	}
	for _, row := range rs.Rows {
		row["type_label"] = lookup(row["type"])
	}
	rs.Columns = append(rs.Columns, "type_label")
}

// nestedEntry is one element of an embedded array-of-objects field after the
// normalizer serialized it back to compact JSON.
type nestedEntry = map[string]any

// parseNestedArray decodes a compact-JSON cell produced by the normalizer for
// a nested array field. An empty or missing cell yields no entries.
func parseNestedArray(cell string) []nestedEntry {
	if cell == "" || cell == "[]" {
		return nil
	}
	var entries []nestedEntry
	if err := json.Unmarshal([]byte(cell), &entries); err != nil {
		return nil
	}
	return entries
}
