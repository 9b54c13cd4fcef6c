// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSet_PrependColumn(t *testing.T) {
	rs := &RecordSet{}
	rs.AddRow(Row{"email": "one@example.com"})
	rs.AddRow(Row{"email": "two@example.com"})

	rs.PrependColumn("webinar_id", "987")

	assert.Equal(t, []string{"webinar_id", "email"}, rs.Columns)
	assert.Equal(t, "987", rs.Value(0, "webinar_id"))
	assert.Equal(t, "987", rs.Value(1, "webinar_id"))
}

func TestRecordSet_RenameColumn(t *testing.T) {
	rs := &RecordSet{}
	rs.AddRow(Row{"visitors_count": "12", "source_name": "newsletter"})

	rs.RenameColumn("visitors_count", "visitor_count")

	assert.True(t, rs.HasColumn("visitor_count"))
	assert.False(t, rs.HasColumn("visitors_count"))
	assert.Equal(t, "12", rs.Value(0, "visitor_count"))

	// Renaming a missing column is a no-op.
	rs.RenameColumn("absent", "still_absent")
	assert.False(t, rs.HasColumn("still_absent"))
}

func TestRecordSet_DropColumns(t *testing.T) {
	rs := &RecordSet{}
	rs.AddRow(Row{"id": "1", "custom_questions": "[]", "email": "a@example.com"})

	rs.DropColumns("custom_questions", "never_there")

	assert.False(t, rs.HasColumn("custom_questions"))
	assert.NotContains(t, rs.Rows[0], "custom_questions")
	assert.True(t, rs.HasColumn("email"))
}

func TestRecordSet_Append(t *testing.T) {
	first := &RecordSet{}
	first.AddRow(Row{"id": "1", "name": "A"})

	second := &RecordSet{}
	second.AddRow(Row{"id": "2", "instance_date": "2024-06-01"})

	first.Append(second)

	require.Equal(t, 2, first.Len())
	// Column union in first-observed order; row order preserved.
	assert.Equal(t, []string{"id", "name", "instance_date"}, first.Columns)
	assert.Equal(t, "2", first.Value(1, "id"))

	first.Append(nil)
	assert.Equal(t, 2, first.Len())
}

func TestRecordSet_SetColumn(t *testing.T) {
	rs := &RecordSet{}
	rs.AddRow(Row{"id": "1"})
	rs.AddRow(Row{"id": "2"})

	rs.SetColumn("instance_date", "2024-06-01")

	assert.Equal(t, "2024-06-01", rs.Value(0, "instance_date"))
	assert.Equal(t, "2024-06-01", rs.Value(1, "instance_date"))
}

func TestRecordSet_WriteCSV(t *testing.T) {
	rs := &RecordSet{}
	rs.AddRow(Row{"id": "1", "name": "Ada"})
	rs.AddRow(Row{"id": "2"})

	var sb strings.Builder
	require.NoError(t, rs.WriteCSV(&sb))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name", lines[0])
	assert.Equal(t, "1,Ada", lines[1])
	// Missing cells stay rectangular as empty fields.
	assert.Equal(t, "2,", lines[2])
}

func TestRecordSet_WriteJSON(t *testing.T) {
	rs := &RecordSet{}

	var sb strings.Builder
	require.NoError(t, rs.WriteJSON(&sb))
	assert.Equal(t, "[]", strings.TrimSpace(sb.String()))
}
