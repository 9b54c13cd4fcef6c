// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package zoomapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is the page size requested when the caller does not set one.
	DefaultPageSize = 300
	// MaxPageSize is the largest page size the Zoom API accepts.
	MaxPageSize = 300
)

// ErrNoRecords is returned by FetchAllPages when StopWhenEmpty is set and the
// first page reports zero total records. It marks an expected, common state
// (a webinar with no registrants yet), not a failure; callers surface it as an
// informational notice.
var ErrNoRecords = errors.New("the requested collection has no records")

// PageOptions controls a paginated fetch.
type PageOptions struct {
	// PageSize is the number of records requested per page. Zero means
	// DefaultPageSize; values outside 1..MaxPageSize are rejected before any
	// network call.
	PageSize int
	// StopWhenEmpty short-circuits the loop when the first page reports
	// total_records == 0, returning ErrNoRecords with no pages. Used by
	// registrant-oriented endpoints where empty results are routine.
	StopWhenEmpty bool
	// Query carries operation-specific filters (status, from/to window, type).
	Query url.Values
}

// pageEnvelope reads just enough of a page body to drive the cursor loop.
type pageEnvelope struct {
	NextPageToken string `json:"next_page_token"`
	TotalRecords  *int   `json:"total_records"`
}

// FetchAllPages walks the cursor-based pagination protocol for the resolved
// path, accumulating raw response bodies in arrival order. The loop starts
// with an empty cursor and terminates when a page carries no next_page_token;
// the absence of the token is the termination sentinel.
func (c *Client) FetchAllPages(ctx context.Context, token, path string, opts PageOptions) ([][]byte, error) {
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, NewConfigurationError(fmt.Sprintf("page size %d is out of range 1..%d", pageSize, MaxPageSize))
	}

	var pages [][]byte
	cursor := ""

	for {
		query := url.Values{}
		for k, vs := range opts.Query {
			query[k] = vs
		}
		query.Set("page_size", strconv.Itoa(pageSize))
		if cursor != "" {
			query.Set("next_page_token", cursor)
		}

		body, err := c.getOK(ctx, token, path, query)
		if err != nil {
			return nil, err
		}

		var envelope pageEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode page envelope: %w", err)
		}

		if len(pages) == 0 && opts.StopWhenEmpty && envelope.TotalRecords != nil && *envelope.TotalRecords == 0 {
			slog.DebugContext(ctx, "first page reported zero total records, short-circuiting", "path", path)
			return nil, ErrNoRecords
		}

		pages = append(pages, body)
		slog.DebugContext(ctx, "fetched page", "path", path, "page", len(pages), "has_next", envelope.NextPageToken != "")

		if envelope.NextPageToken == "" {
			return pages, nil
		}
		cursor = envelope.NextPageToken
	}
}

// FetchObject retrieves a single-object, non-paginated endpoint such as a
// webinar or meeting detail lookup.
func (c *Client) FetchObject(ctx context.Context, token, path string, query url.Values) ([]byte, error) {
	return c.getOK(ctx, token, path, query)
}
