// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package report

import (
	"context"

	"github.com/clearinsights/zoomreport/dataset"
	"github.com/clearinsights/zoomreport/zoomapi"
)

// ListWebinars returns the webinars scheduled by the given user, one row per
// webinar, with a type_label column derived from the structural type code.
func (s *Service) ListWebinars(ctx context.Context, userID string, opts ...ListOption) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpListWebinars)

	rs, err := s.fetchCollection(ctx, zoomapi.OpListWebinars,
		map[string]string{"user_id": userID}, "webinars", buildPageOptions(opts))
	if err != nil {
		return nil, err
	}

	addTypeLabel(rs, WebinarTypeLabel)
	return rs, nil
}

// GetWebinarDetails returns a one-row RecordSet with the webinar's scalar
// fields. Fields carrying nested structures (settings, recurrence, occurrence
// lists) are discarded so the output stays rectangular.
func (s *Service) GetWebinarDetails(ctx context.Context, webinarID string) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpWebinarDetails)

	body, err := s.fetchObject(ctx, zoomapi.OpWebinarDetails, map[string]string{"webinar_id": webinarID})
	if err != nil {
		return nil, err
	}

	row, _, err := dataset.NormalizeObject(body)
	if err != nil {
		return nil, err
	}

	rs := &dataset.RecordSet{}
	rs.AddRow(row)
	addTypeLabel(rs, WebinarTypeLabel)
	return rs, nil
}

// GetPanelists returns the panelists of a webinar, one row per panelist,
// annotated with the webinar ID being queried.
func (s *Service) GetPanelists(ctx context.Context, webinarID string, opts ...ListOption) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpWebinarPanelists)

	rs, err := s.fetchCollection(ctx, zoomapi.OpWebinarPanelists,
		map[string]string{"webinar_id": webinarID}, "panelists", buildPageOptions(opts))
	if err != nil {
		return nil, err
	}

	rs.PrependColumn("webinar_id", webinarID)
	return rs, nil
}

// GetTrackingSources returns the registration tracking sources of a webinar
// with stable visitor_count and registration_count column names.
func (s *Service) GetTrackingSources(ctx context.Context, webinarID string, opts ...ListOption) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpWebinarTrackingSources)

	rs, err := s.fetchCollection(ctx, zoomapi.OpWebinarTrackingSources,
		map[string]string{"webinar_id": webinarID}, "tracking_sources", buildPageOptions(opts))
	if err != nil {
		return nil, err
	}

	// Normalization folds the camelCase payload names to snake_case already;
	// the singular variants some payloads carry are renamed here.
	rs.RenameColumn("visitors_count", "visitor_count")
	rs.RenameColumn("registrants_count", "registration_count")
	rs.PrependColumn("webinar_id", webinarID)
	return rs, nil
}
