// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package zoomapi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name         string
		op           string
		params       map[string]string
		expectedPath string
		expectError  bool
	}{
		{
			name:         "list users needs no params",
			op:           OpListUsers,
			expectedPath: "/users",
		},
		{
			name:         "webinar registrants",
			op:           OpWebinarRegistrants,
			params:       map[string]string{"webinar_id": "987654321"},
			expectedPath: "/webinars/987654321/registrants",
		},
		{
			name:         "report participants",
			op:           OpReportParticipants,
			params:       map[string]string{"meeting_id": "123"},
			expectedPath: "/report/meetings/123/participants",
		},
		{
			name:         "past meeting instances",
			op:           OpPastMeetingInstances,
			params:       map[string]string{"meeting_id": "123"},
			expectedPath: "/past_meetings/123/instances",
		},
		{
			name:         "path parameter is escaped",
			op:           OpMeetingDetails,
			params:       map[string]string{"meeting_id": "abc/def"},
			expectedPath: "/meetings/abc%2Fdef",
		},
		{
			name:        "unknown operation",
			op:          "get_coffee",
			expectError: true,
		},
		{
			name:        "missing path parameter",
			op:          OpWebinarDetails,
			params:      map[string]string{},
			expectError: true,
		},
		{
			name:        "empty path parameter",
			op:          OpWebinarDetails,
			params:      map[string]string{"webinar_id": ""},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := ResolvePath(tt.op, tt.params)

			if tt.expectError {
				require.Error(t, err)
				var apiErr *Error
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, ErrorTypeConfiguration, apiErr.Type)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedPath, path)
		})
	}
}

func TestEscapeInstanceUUID(t *testing.T) {
	tests := []struct {
		name     string
		uuid     string
		resolved string
	}{
		{
			name:     "plain UUID passes through",
			uuid:     "4444AAAiAAAAAiAiAiiAii",
			resolved: "/report/meetings/4444AAAiAAAAAiAiAiiAii/participants",
		},
		{
			name:     "leading slash is double encoded",
			uuid:     "/ajXp112QmuoKj4854875==",
			resolved: "/report/meetings/%252FajXp112QmuoKj4854875==/participants",
		},
		{
			name:     "double slash is double encoded",
			uuid:     "a//bcd",
			resolved: "/report/meetings/a%252F%252Fbcd/participants",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := ResolvePath(OpReportParticipants,
				map[string]string{"meeting_id": EscapeInstanceUUID(tt.uuid)})
			require.NoError(t, err)
			assert.Equal(t, tt.resolved, path)
		})
	}
}
