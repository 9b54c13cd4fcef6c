// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/clearinsights/zoomreport/dataset"
	"github.com/clearinsights/zoomreport/zoomapi"
)

// Meeting listing type filters accepted by the Zoom API.
var meetingListTypes = map[string]bool{
	"scheduled":         true,
	"live":              true,
	"upcoming":          true,
	"upcoming_meetings": true,
	"previous_meetings": true,
}

// meetingLookback is the fixed window applied when listing a user's meetings;
// the vendor caps the queryable range at six months.
const meetingLookback = 6 * 30 * 24 * time.Hour

// ListMeetings returns the meetings scheduled by the given user within the
// fixed six-month lookback window. listType filters the listing ("scheduled",
// "live", "upcoming", "upcoming_meetings", "previous_meetings"); an empty
// value means "scheduled". Unrecognized filters fail before any network call.
func (s *Service) ListMeetings(ctx context.Context, userID, listType string, opts ...ListOption) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpListMeetings)

	if listType == "" {
		listType = "scheduled"
	}
	if !meetingListTypes[listType] {
		return nil, zoomapi.NewConfigurationError(fmt.Sprintf("unrecognized meeting list type %q", listType))
	}

	now := time.Now().UTC()
	pageOpts := buildPageOptions(opts)
	pageOpts.Query = url.Values{
		"type": []string{listType},
		"from": []string{now.Add(-meetingLookback).Format("2006-01-02")},
		"to":   []string{now.Format("2006-01-02")},
	}

	rs, err := s.fetchCollection(ctx, zoomapi.OpListMeetings,
		map[string]string{"user_id": userID}, "meetings", pageOpts)
	if err != nil {
		return nil, err
	}

	addTypeLabel(rs, MeetingTypeLabel)
	return rs, nil
}

// GetMeetingDetails returns a one-row RecordSet with the meeting's scalar
// fields plus a type_label column. Nested structures are discarded.
func (s *Service) GetMeetingDetails(ctx context.Context, meetingID string) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpMeetingDetails)

	body, err := s.fetchObject(ctx, zoomapi.OpMeetingDetails, map[string]string{"meeting_id": meetingID})
	if err != nil {
		return nil, err
	}

	row, _, err := dataset.NormalizeObject(body)
	if err != nil {
		return nil, err
	}

	rs := &dataset.RecordSet{}
	rs.AddRow(row)
	addTypeLabel(rs, MeetingTypeLabel)
	return rs, nil
}
