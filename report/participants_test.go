// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetParticipants_ExpandsOccurrences(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/past_meetings/123/instances":
			_, _ = w.Write([]byte(`{"meetings": [
				{"uuid": "A", "start_time": "2024-06-01T15:00:00Z"},
				{"uuid": "B", "start_time": "2024-06-08T15:00:00Z"}
			]}`))
		case "/report/meetings/A/participants":
			_, _ = w.Write([]byte(`{"next_page_token": "", "total_records": 1,
				"participants": [{"id": "pA", "name": "Alice", "duration": 3600}]}`))
		case "/report/meetings/B/participants":
			_, _ = w.Write([]byte(`{"next_page_token": "", "total_records": 1,
				"participants": [{"id": "pB", "name": "Bob", "duration": 1800}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	result, err := service.GetParticipants(context.Background(), "123", ParticipantsOptions{})
	require.NoError(t, err)

	assert.Equal(t, PathExpanded, result.Path)
	assert.Equal(t, FallbackNone, result.FallbackReason)
	assert.Equal(t, 2, result.Occurrences)

	require.Equal(t, 2, result.Len())
	assert.Equal(t, "Alice", result.Value(0, "name"))
	assert.Equal(t, "Bob", result.Value(1, "name"))

	// Every row carries the occurrence date and the queried meeting ID.
	assert.Equal(t, "2024-06-01", result.Value(0, "instance_date"))
	assert.Equal(t, "2024-06-08", result.Value(1, "instance_date"))
	assert.Equal(t, "2024-06-01T15:00:00Z", result.Value(0, "instance_start_time"))
	assert.Equal(t, "123", result.Value(0, "meeting_id"))
	assert.Equal(t, "meeting_id", result.Columns[0])

	// Pagination metadata never appears in the output.
	assert.False(t, result.HasColumn("next_page_token"))
	assert.False(t, result.HasColumn("total_records"))
}

func TestGetParticipants_NoOccurrencesMatchesSinglePath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/past_meetings/123/instances":
			_, _ = w.Write([]byte(`{"meetings": []}`))
		case "/report/meetings/123/participants":
			_, _ = w.Write([]byte(`{"next_page_token": "", "total_records": 1,
				"participants": [{"id": "p1", "name": "Ada"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}

	expander, _ := newTestService(t, handler)
	single, _ := newTestService(t, handler)

	fellBack, err := expander.GetParticipants(context.Background(), "123", ParticipantsOptions{})
	require.NoError(t, err)
	direct, err := single.GetParticipants(context.Background(), "123", ParticipantsOptions{NoExpand: true})
	require.NoError(t, err)

	assert.Equal(t, PathSingle, fellBack.Path)
	assert.Equal(t, FallbackNoOccurrences, fellBack.FallbackReason)
	assert.Equal(t, FallbackNone, direct.FallbackReason)

	// Aside from the fallback trigger, the two paths produce the same dataset.
	assert.Equal(t, direct.RecordSet, fellBack.RecordSet)
	assert.Equal(t, "", fellBack.Value(0, "instance_date"))
	assert.True(t, fellBack.HasColumn("instance_start_time"))
}

func TestGetParticipants_InstancesLookupFailure(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/past_meetings/123/instances":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code": 3001, "message": "Meeting does not exist"}`))
		case "/report/meetings/123/participants":
			_, _ = w.Write([]byte(`{"next_page_token": "",
				"participants": [{"id": "p1", "name": "Ada"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	result, err := service.GetParticipants(context.Background(), "123", ParticipantsOptions{})
	require.NoError(t, err)

	assert.Equal(t, PathSingle, result.Path)
	assert.Equal(t, FallbackInstancesFailed, result.FallbackReason)
	assert.Equal(t, 1, result.Len())
}

func TestGetParticipants_EmptyExpansionFallsBack(t *testing.T) {
	service, notices := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/past_meetings/123/instances":
			_, _ = w.Write([]byte(`{"meetings": [{"uuid": "A", "start_time": "2024-06-01T15:00:00Z"}]}`))
		case "/report/meetings/A/participants":
			_, _ = w.Write([]byte(`{"next_page_token": "", "participants": []}`))
		case "/report/meetings/123/participants":
			_, _ = w.Write([]byte(`{"next_page_token": "",
				"participants": [{"id": "p1", "name": "Ada"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	result, err := service.GetParticipants(context.Background(), "123", ParticipantsOptions{})
	require.NoError(t, err)

	// No participants across any occurrence reads as a data-availability gap:
	// the single path's non-empty result wins.
	assert.Equal(t, PathSingle, result.Path)
	assert.Equal(t, FallbackEmptyExpansion, result.FallbackReason)
	assert.Equal(t, 1, result.Len())
	assert.Equal(t, 1, notices.count())
}

func TestGetParticipants_EscapesOccurrenceUUIDs(t *testing.T) {
	var participantPath string
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/past_meetings/123/instances":
			_, _ = w.Write([]byte(`{"meetings": [{"uuid": "a//bc==", "start_time": "2024-06-01T15:00:00Z"}]}`))
		default:
			// r.URL.RawPath stays empty when Go's default escaping
			// round-trips the wire path (every "%" re-escapes to "%25"),
			// so capture the request URI exactly as sent.
			participantPath = r.RequestURI
			_, _ = w.Write([]byte(`{"next_page_token": "", "participants": [{"id": "p1"}]}`))
		}
	})

	result, err := service.GetParticipants(context.Background(), "123", ParticipantsOptions{})
	require.NoError(t, err)

	assert.Equal(t, PathExpanded, result.Path)
	assert.Contains(t, participantPath, "a%252F%252Fbc==")
}

func TestOccurrenceDate(t *testing.T) {
	assert.Equal(t, "2024-06-01", occurrenceDate("2024-06-01T15:00:00Z"))
	assert.Equal(t, "2024-06-02", occurrenceDate("2024-06-01T23:30:00-05:00"))
	assert.Equal(t, "not-a-time", occurrenceDate("not-a-time"))
}

func TestFallbackReason(t *testing.T) {
	assert.Equal(t, FallbackInstancesFailed, fallbackReason(assert.AnError, nil))
	assert.Equal(t, FallbackNoOccurrences, fallbackReason(nil, nil))
	assert.Equal(t, FallbackNone, fallbackReason(nil, []occurrence{{UUID: "A"}}))
}
