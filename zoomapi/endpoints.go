// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package zoomapi

import (
	"fmt"
	"net/url"
	"strings"
)

// Operation names accepted by ResolvePath.
const (
	OpListUsers              = "list_users"
	OpListWebinars           = "list_webinars"
	OpListMeetings           = "list_meetings"
	OpWebinarDetails         = "webinar_details"
	OpMeetingDetails         = "meeting_details"
	OpWebinarRegistrants     = "webinar_registrants"
	OpWebinarPanelists       = "webinar_panelists"
	OpReportWebinarPolls     = "report_webinar_polls"
	OpReportWebinarQA        = "report_webinar_qa"
	OpWebinarTrackingSources = "webinar_tracking_sources"
	OpReportParticipants     = "report_meeting_participants"
	OpPastMeetingInstances   = "past_meeting_instances"
)

// operation binds a logical request name to a path template and the path
// parameters the template requires. The set is fixed at compile time; an
// unknown name is a programming error, not a runtime condition.
type operation struct {
	template string
	params   []string
}

var operations = map[string]operation{
	OpListUsers:              {template: "/users"},
	OpListWebinars:           {template: "/users/{user_id}/webinars", params: []string{"user_id"}},
	OpListMeetings:           {template: "/users/{user_id}/meetings", params: []string{"user_id"}},
	OpWebinarDetails:         {template: "/webinars/{webinar_id}", params: []string{"webinar_id"}},
	OpMeetingDetails:         {template: "/meetings/{meeting_id}", params: []string{"meeting_id"}},
	OpWebinarRegistrants:     {template: "/webinars/{webinar_id}/registrants", params: []string{"webinar_id"}},
	OpWebinarPanelists:       {template: "/webinars/{webinar_id}/panelists", params: []string{"webinar_id"}},
	OpReportWebinarPolls:     {template: "/report/webinars/{webinar_id}/polls", params: []string{"webinar_id"}},
	OpReportWebinarQA:        {template: "/report/webinars/{webinar_id}/qa", params: []string{"webinar_id"}},
	OpWebinarTrackingSources: {template: "/webinars/{webinar_id}/tracking_sources", params: []string{"webinar_id"}},
	OpReportParticipants:     {template: "/report/meetings/{meeting_id}/participants", params: []string{"meeting_id"}},
	OpPastMeetingInstances:   {template: "/past_meetings/{meeting_id}/instances", params: []string{"meeting_id"}},
}

// ResolvePath maps a logical operation name plus path parameters to a request
// path relative to the API base URL. Template substitution is a pure string
// operation; no network access happens here.
func ResolvePath(op string, params map[string]string) (string, error) {
	desc, ok := operations[op]
	if !ok {
		return "", NewConfigurationError(fmt.Sprintf("unknown operation %q", op))
	}

	path := desc.template
	for _, name := range desc.params {
		value, ok := params[name]
		if !ok || value == "" {
			return "", NewConfigurationError(fmt.Sprintf("operation %q requires path parameter %q", op, name))
		}
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}

	return path, nil
}

// EscapeInstanceUUID applies the first of the two URL encodings Zoom requires
// for past-meeting instance UUIDs that begin with "/" or contain "//".
// Encoding every UUID is accepted by the API and avoids special-casing.
// ResolvePath escapes path parameters, so passing the result through it yields
// the double-encoded form.
func EscapeInstanceUUID(uuid string) string {
	return url.PathEscape(uuid)
}
