// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/clearinsights/zoomreport/dataset"
	"github.com/clearinsights/zoomreport/zoomapi"
)

// questionReport is the shape shared by the webinar poll and Q&A report
// endpoints: a single object carrying one entry per participant, each with a
// nested list of question/answer details.
type questionReport struct {
	Questions []struct {
		Email           string           `json:"email"`
		Name            string           `json:"name"`
		QuestionDetails []map[string]any `json:"question_details"`
	} `json:"questions"`
}

// GetWebinarPolls returns the poll responses reported for a webinar, one row
// per answered poll question. A webinar without poll activity emits a notice
// and returns an empty RecordSet.
func (s *Service) GetWebinarPolls(ctx context.Context, webinarID string) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpReportWebinarPolls)
	return s.questionReportOperation(ctx, zoomapi.OpReportWebinarPolls, webinarID, "no poll responses recorded")
}

// GetWebinarQA returns the Q&A activity reported for a webinar, one row per
// asked question. A webinar without Q&A activity emits a notice and returns
// an empty RecordSet.
func (s *Service) GetWebinarQA(ctx context.Context, webinarID string) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpReportWebinarQA)
	return s.questionReportOperation(ctx, zoomapi.OpReportWebinarQA, webinarID, "no Q&A activity recorded")
}

func (s *Service) questionReportOperation(ctx context.Context, op, webinarID, emptyMessage string) (*dataset.RecordSet, error) {
	body, err := s.fetchObject(ctx, op, map[string]string{"webinar_id": webinarID})
	if err != nil {
		return nil, err
	}

	rs, err := unnestQuestionReport(body, webinarID)
	if err != nil {
		return nil, err
	}

	if rs.Len() == 0 {
		s.emit(op, webinarID, fmt.Sprintf("webinar %s: %s", webinarID, emptyMessage))
	}
	return rs, nil
}

// unnestQuestionReport flattens the nested question_details structure into
// one row per detail, keyed by the participant's name and email and the
// webinar being queried. Participants without details contribute no rows.
func unnestQuestionReport(body []byte, webinarID string) (*dataset.RecordSet, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var parsed questionReport
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode question report: %w", err)
	}

	rs := &dataset.RecordSet{Columns: []string{"webinar_id", "name", "email"}}
	for _, participant := range parsed.Questions {
		for _, detail := range participant.QuestionDetails {
			row := dataset.Row{
				"webinar_id": webinarID,
				"name":       participant.Name,
				"email":      participant.Email,
			}
			for key, value := range detail {
				switch value.(type) {
				case map[string]any, []any:
					// Detail cells must stay scalar.
				default:
					if n, ok := value.(json.Number); ok {
						row[key] = n.String()
					} else if value == nil {
						row[key] = ""
					} else {
						row[key] = fmt.Sprintf("%v", value)
					}
				}
			}
			rs.AddRow(row)
		}
	}
	return rs, nil
}
