// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/clearinsights/zoomreport/dataset"
	"github.com/clearinsights/zoomreport/zoomapi"
)

// GetRegistrants returns the approved registrants of a webinar, one row per
// registrant, annotated with the webinar ID. A webinar with no registrants is
// an expected state: the operation emits a notice and returns an empty
// RecordSet instead of failing.
func (s *Service) GetRegistrants(ctx context.Context, webinarID string, opts ...ListOption) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpWebinarRegistrants)

	rs, err := s.fetchRegistrants(ctx, webinarID, opts)
	if err != nil {
		if errors.Is(err, zoomapi.ErrNoRecords) {
			s.emit(zoomapi.OpWebinarRegistrants, webinarID, fmt.Sprintf("webinar %s has no registrants yet", webinarID))
			return &dataset.RecordSet{}, nil
		}
		return nil, err
	}

	// The raw custom question payload is unnested by GetRegistrationQuestions;
	// here it would leave a JSON blob in a cell.
	rs.DropColumns("custom_questions")
	rs.PrependColumn("webinar_id", webinarID)
	return rs, nil
}

// GetRegistrationQuestions unnests the custom registration question responses
// into one row per answered question per registrant. Registrants that carry
// no custom question responses are discarded with a notice.
func (s *Service) GetRegistrationQuestions(ctx context.Context, webinarID string, opts ...ListOption) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpWebinarRegistrants)

	rs, err := s.fetchRegistrants(ctx, webinarID, opts)
	if err != nil {
		if errors.Is(err, zoomapi.ErrNoRecords) {
			s.emit(zoomapi.OpWebinarRegistrants, webinarID, fmt.Sprintf("webinar %s has no registrants yet", webinarID))
			return &dataset.RecordSet{}, nil
		}
		return nil, err
	}

	out := &dataset.RecordSet{Columns: []string{"webinar_id", "registrant_id", "email", "question_title", "answer"}}
	skipped := 0
	for _, row := range rs.Rows {
		entries := parseNestedArray(row["custom_questions"])
		if len(entries) == 0 {
			skipped++
			continue
		}
		for _, entry := range entries {
			out.AddRow(dataset.Row{
				"webinar_id":     webinarID,
				"registrant_id":  row["id"],
				"email":          row["email"],
				"question_title": stringField(entry, "title"),
				"answer":         stringField(entry, "value"),
			})
		}
	}

	if skipped > 0 {
		s.emit(zoomapi.OpWebinarRegistrants, webinarID,
			fmt.Sprintf("%d registrants had no custom question responses and were dropped", skipped))
	}
	return out, nil
}

// fetchRegistrants is the shared registrant fetch used by both registrant
// operations; the empty short-circuit happens at the fetch layer because an
// empty webinar is common and the page itself carries no rows.
func (s *Service) fetchRegistrants(ctx context.Context, webinarID string, opts []ListOption) (*dataset.RecordSet, error) {
	pageOpts := buildPageOptions(opts)
	pageOpts.StopWhenEmpty = true
	pageOpts.Query = url.Values{"status": []string{"approved"}}

	return s.fetchCollection(ctx, zoomapi.OpWebinarRegistrants,
		map[string]string{"webinar_id": webinarID}, "registrants", pageOpts)
}

func stringField(entry nestedEntry, key string) string {
	if v, ok := entry[key].(string); ok {
		return v
	}
	if v, ok := entry[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
