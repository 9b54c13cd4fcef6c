// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"net/url"

	"github.com/clearinsights/zoomreport/dataset"
	"github.com/clearinsights/zoomreport/zoomapi"
)

// ListUsers returns the active users in the account, one row per user.
func (s *Service) ListUsers(ctx context.Context, opts ...ListOption) (*dataset.RecordSet, error) {
	ctx = opContext(ctx, zoomapi.OpListUsers)

	pageOpts := buildPageOptions(opts)
	pageOpts.Query = url.Values{"status": []string{"active"}}

	return s.fetchCollection(ctx, zoomapi.OpListUsers, nil, "users", pageOpts)
}

// ListOption adjusts paging behavior for list operations.
type ListOption func(*zoomapi.PageOptions)

// WithPageSize overrides the requested page size. Out-of-range values are
// rejected by the fetcher before any network call.
func WithPageSize(n int) ListOption {
	return func(o *zoomapi.PageOptions) {
		o.PageSize = n
	}
}

func buildPageOptions(opts []ListOption) zoomapi.PageOptions {
	var pageOpts zoomapi.PageOptions
	for _, opt := range opts {
		opt(&pageOpts)
	}
	return pageOpts
}
