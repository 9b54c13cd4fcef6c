// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/clearinsights/zoomreport/report"
	"github.com/clearinsights/zoomreport/zoomapi"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	accountID    string
	clientID     string
	clientSecret string
	baseURL      string
	authURL      string
	output       string
	pageSize     int
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "zoomreport",
		Short:         "Produce tabular datasets from the Zoom reporting API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; flags win over the environment.
			_ = godotenv.Load()
			if opts.accountID == "" {
				opts.accountID = os.Getenv("ZOOM_ACCOUNT_ID")
			}
			if opts.clientID == "" {
				opts.clientID = os.Getenv("ZOOM_CLIENT_ID")
			}
			if opts.clientSecret == "" {
				opts.clientSecret = os.Getenv("ZOOM_CLIENT_SECRET")
			}
			if opts.accountID == "" || opts.clientID == "" || opts.clientSecret == "" {
				return fmt.Errorf("account ID, client ID, and client secret are required (flags or ZOOM_ACCOUNT_ID/ZOOM_CLIENT_ID/ZOOM_CLIENT_SECRET)")
			}
			if opts.output != outputCSV && opts.output != outputJSON {
				return fmt.Errorf("unsupported output format %q (csv or json)", opts.output)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.accountID, "account-id", "", "Zoom account ID")
	flags.StringVar(&opts.clientID, "client-id", "", "Zoom Server-to-Server OAuth client ID")
	flags.StringVar(&opts.clientSecret, "client-secret", "", "Zoom Server-to-Server OAuth client secret")
	flags.StringVar(&opts.baseURL, "base-url", "", "override the API base URL")
	flags.StringVar(&opts.authURL, "auth-url", "", "override the OAuth token URL")
	flags.StringVarP(&opts.output, "output", "o", outputCSV, "output format: csv or json")
	flags.IntVar(&opts.pageSize, "page-size", 0, "records requested per page (1-300)")

	cmd.AddCommand(
		newUsersCommand(opts),
		newWebinarsCommand(opts),
		newMeetingsCommand(opts),
		newWebinarDetailsCommand(opts),
		newMeetingDetailsCommand(opts),
		newRegistrantsCommand(opts),
		newQuestionsCommand(opts),
		newPanelistsCommand(opts),
		newPollsCommand(opts),
		newQACommand(opts),
		newTrackingSourcesCommand(opts),
		newParticipantsCommand(opts),
	)

	return cmd
}

// service builds the reporting service from the resolved flags.
func (o *rootOptions) service() *report.Service {
	client := zoomapi.NewClient(zoomapi.Config{
		AccountID:    o.accountID,
		ClientID:     o.clientID,
		ClientSecret: o.clientSecret,
		BaseURL:      o.baseURL,
		AuthURL:      o.authURL,
	})
	return report.NewService(client)
}

func (o *rootOptions) listOptions() []report.ListOption {
	if o.pageSize == 0 {
		return nil
	}
	return []report.ListOption{report.WithPageSize(o.pageSize)}
}
