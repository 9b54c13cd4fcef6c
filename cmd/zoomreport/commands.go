// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/clearinsights/zoomreport/dataset"
	"github.com/clearinsights/zoomreport/report"
	"github.com/spf13/cobra"
)

func newUsersCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List the active users in the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().ListUsers(cmd.Context(), opts.listOptions()...)
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newWebinarsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "webinars USER_ID",
		Short: "List the webinars scheduled by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().ListWebinars(cmd.Context(), args[0], opts.listOptions()...)
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newMeetingsCommand(opts *rootOptions) *cobra.Command {
	var listType string
	cmd := &cobra.Command{
		Use:   "meetings USER_ID",
		Short: "List the meetings scheduled by a user within the lookback window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().ListMeetings(cmd.Context(), args[0], listType, opts.listOptions()...)
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
	cmd.Flags().StringVar(&listType, "type", "scheduled", "listing type filter")
	return cmd
}

func newWebinarDetailsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "webinar-details WEBINAR_ID",
		Short: "Fetch the scalar detail fields of a webinar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().GetWebinarDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newMeetingDetailsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "meeting-details MEETING_ID",
		Short: "Fetch the scalar detail fields of a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().GetMeetingDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newRegistrantsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "registrants WEBINAR_ID",
		Short: "Fetch the approved registrants of a webinar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().GetRegistrants(cmd.Context(), args[0], opts.listOptions()...)
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newQuestionsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "questions WEBINAR_ID",
		Short: "Fetch the custom registration question responses of a webinar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().GetRegistrationQuestions(cmd.Context(), args[0], opts.listOptions()...)
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newPanelistsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "panelists WEBINAR_ID",
		Short: "Fetch the panelists of a webinar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().GetPanelists(cmd.Context(), args[0], opts.listOptions()...)
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newPollsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "polls WEBINAR_ID",
		Short: "Fetch the poll responses reported for a webinar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().GetWebinarPolls(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newQACommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "qa WEBINAR_ID",
		Short: "Fetch the Q&A activity reported for a webinar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().GetWebinarQA(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newTrackingSourcesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tracking-sources WEBINAR_ID",
		Short: "Fetch the registration tracking source summary of a webinar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.service().GetTrackingSources(cmd.Context(), args[0], opts.listOptions()...)
			if err != nil {
				return err
			}
			return writeRecordSet(cmd, opts, rs)
		},
	}
}

func newParticipantsCommand(opts *rootOptions) *cobra.Command {
	var noExpand bool
	cmd := &cobra.Command{
		Use:   "participants MEETING_ID",
		Short: "Fetch the participants of a meeting, expanded across occurrences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.service().GetParticipants(cmd.Context(), args[0], report.ParticipantsOptions{
				PageSize: opts.pageSize,
				NoExpand: noExpand,
			})
			if err != nil {
				return err
			}
			if result.FallbackReason != report.FallbackNone {
				slog.Info("single-occurrence fallback", "reason", result.FallbackReason)
			}
			return writeRecordSet(cmd, opts, result.RecordSet)
		},
	}
	cmd.Flags().BoolVar(&noExpand, "no-expand", false, "skip the recurring-occurrence expansion")
	return cmd
}

func writeRecordSet(cmd *cobra.Command, opts *rootOptions, rs *dataset.RecordSet) error {
	if opts.output == outputJSON {
		return rs.WriteJSON(cmd.OutOrStdout())
	}
	return rs.WriteCSV(cmd.OutOrStdout())
}

const (
	outputCSV  = "csv"
	outputJSON = "json"
)
