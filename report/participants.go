// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/clearinsights/zoomreport/dataset"
	"github.com/clearinsights/zoomreport/internal/logging"
	"github.com/clearinsights/zoomreport/zoomapi"
)

// Participant fetch paths.
const (
	// PathExpanded means the result was assembled per historical occurrence.
	PathExpanded = "expanded"
	// PathSingle means the result came from one pass against the primary
	// meeting identifier.
	PathSingle = "single"
)

// Fallback triggers. The two fallback conditions are semantically different
// (API unavailability vs. genuinely no attendees recorded), so the trigger is
// exposed to the caller rather than silently merged.
const (
	FallbackNone            = ""
	FallbackInstancesFailed = "instances_lookup_failed"
	FallbackNoOccurrences   = "no_occurrences"
	FallbackEmptyExpansion  = "empty_expansion"
)

// ParticipantsOptions controls the participants operation.
type ParticipantsOptions struct {
	// PageSize overrides the per-page record count.
	PageSize int
	// NoExpand skips the occurrence expansion and always takes the single
	// path.
	NoExpand bool
}

// ParticipantsResult carries the participant RecordSet plus which path
// produced it. The schema is identical on both paths; on the single path the
// occurrence-tagging columns are present but empty.
type ParticipantsResult struct {
	*dataset.RecordSet
	// Path is PathExpanded or PathSingle.
	Path string
	// FallbackReason is set when the single path was taken because the
	// expansion was unavailable or produced nothing.
	FallbackReason string
	// Occurrences is the number of historical occurrences that contributed
	// rows on the expanded path.
	Occurrences int
}

// occurrence is one historical instance of a recurring meeting.
type occurrence struct {
	UUID      string `json:"uuid"`
	StartTime string `json:"start_time"`
}

// GetParticipants returns the participants reported for a meeting. When the
// meeting has multiple historical occurrences, the fetch fans out across each
// occurrence in listing order and tags every row with the occurrence's
// calendar date and raw start timestamp. The fan-out is strictly sequential:
// the vendor documents no safe concurrency guarantee for report endpoints.
func (s *Service) GetParticipants(ctx context.Context, meetingID string, opts ParticipantsOptions) (*ParticipantsResult, error) {
	ctx = opContext(ctx, zoomapi.OpReportParticipants)
	ctx = logging.AppendCtx(ctx, slog.String("meeting_id", meetingID))

	token, err := s.client.Token(ctx)
	if err != nil {
		return nil, err
	}

	if opts.NoExpand {
		return s.singleParticipants(ctx, token, meetingID, opts, FallbackNone)
	}

	occurrences, lookupErr := s.listInstances(ctx, token, meetingID)
	if reason := fallbackReason(lookupErr, occurrences); reason != FallbackNone {
		if lookupErr != nil {
			slog.WarnContext(ctx, "instances lookup unavailable, using single-occurrence path", logging.ErrKey, lookupErr)
		}
		return s.singleParticipants(ctx, token, meetingID, opts, reason)
	}

	out := &dataset.RecordSet{}
	for _, occ := range occurrences {
		rs, err := s.occurrenceParticipants(ctx, token, occ, opts)
		if err != nil {
			return nil, err
		}
		out.Append(rs)
	}

	if out.Len() == 0 {
		// No participants recorded across any occurrence is more likely a
		// data-availability gap than ground truth; prefer a non-empty
		// single-occurrence result when one exists.
		s.emit(zoomapi.OpReportParticipants, meetingID,
			fmt.Sprintf("meeting %s: occurrence expansion returned no participants, retrying the primary identifier", meetingID))
		return s.singleParticipants(ctx, token, meetingID, opts, FallbackEmptyExpansion)
	}

	out.PrependColumn("meeting_id", meetingID)
	return &ParticipantsResult{
		RecordSet:   out,
		Path:        PathExpanded,
		Occurrences: len(occurrences),
	}, nil
}

// fallbackReason is the pure selection function between the expand and single
// paths, decided from the instances-lookup outcome alone.
func fallbackReason(lookupErr error, occurrences []occurrence) string {
	if lookupErr != nil {
		return FallbackInstancesFailed
	}
	if len(occurrences) == 0 {
		return FallbackNoOccurrences
	}
	return FallbackNone
}

// listInstances fetches the historical occurrences of a meeting.
func (s *Service) listInstances(ctx context.Context, token, meetingID string) ([]occurrence, error) {
	path, err := zoomapi.ResolvePath(zoomapi.OpPastMeetingInstances, map[string]string{"meeting_id": meetingID})
	if err != nil {
		return nil, err
	}

	body, err := s.client.FetchObject(ctx, token, path, nil)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Meetings []occurrence `json:"meetings"`
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode instances response: %w", err)
	}
	return parsed.Meetings, nil
}

// occurrenceParticipants runs one full fetch-and-normalize pass scoped to a
// single occurrence and stamps the occurrence tagging columns.
func (s *Service) occurrenceParticipants(ctx context.Context, token string, occ occurrence, opts ParticipantsOptions) (*dataset.RecordSet, error) {
	path, err := zoomapi.ResolvePath(zoomapi.OpReportParticipants,
		map[string]string{"meeting_id": zoomapi.EscapeInstanceUUID(occ.UUID)})
	if err != nil {
		return nil, err
	}

	rs, err := s.fetchParticipantPages(ctx, token, path, opts)
	if err != nil {
		return nil, err
	}

	rs.SetColumn("instance_date", occurrenceDate(occ.StartTime))
	rs.SetColumn("instance_start_time", occ.StartTime)
	return rs, nil
}

// singleParticipants is the single-occurrence path: one ordinary pass against
// the primary meeting identifier, with empty occurrence-tagging columns for
// schema consistency with the expanded path.
func (s *Service) singleParticipants(ctx context.Context, token, meetingID string, opts ParticipantsOptions, reason string) (*ParticipantsResult, error) {
	path, err := zoomapi.ResolvePath(zoomapi.OpReportParticipants, map[string]string{"meeting_id": meetingID})
	if err != nil {
		return nil, err
	}

	rs, err := s.fetchParticipantPages(ctx, token, path, opts)
	if err != nil {
		return nil, err
	}

	rs.SetColumn("instance_date", "")
	rs.SetColumn("instance_start_time", "")
	rs.PrependColumn("meeting_id", meetingID)
	return &ParticipantsResult{
		RecordSet:      rs,
		Path:           PathSingle,
		FallbackReason: reason,
	}, nil
}

func (s *Service) fetchParticipantPages(ctx context.Context, token, path string, opts ParticipantsOptions) (*dataset.RecordSet, error) {
	pages, err := s.client.FetchAllPages(ctx, token, path, zoomapi.PageOptions{PageSize: opts.PageSize})
	if err != nil {
		return nil, err
	}
	return dataset.Normalize(pages, "participants")
}

// occurrenceDate truncates an occurrence start timestamp to calendar-day
// granularity. Timestamps the vendor reports in a non-RFC3339 form fall back
// to the raw value.
func occurrenceDate(startTime string) string {
	t, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return startTime
	}
	return t.UTC().Format("2006-01-02")
}
