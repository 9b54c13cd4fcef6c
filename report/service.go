// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

// Package report exposes the public reporting operations. Each operation
// resolves an endpoint, acquires a fresh bearer token, drives the paginated
// fetch loop, normalizes the accumulated pages into a RecordSet, and applies
// the endpoint-specific shaping that produces the operation's stable output
// schema.
package report

import (
	"context"
	"log/slog"

	"github.com/clearinsights/zoomreport/dataset"
	"github.com/clearinsights/zoomreport/internal/logging"
	"github.com/clearinsights/zoomreport/zoomapi"
	"github.com/google/uuid"
)

// Notice is an informational message for conditions that are expected and
// non-fatal, such as a webinar with no registrants yet. Notices never abort
// an operation.
type Notice struct {
	Operation  string
	ResourceID string
	Message    string
}

// Notifier receives notices emitted while an operation runs.
type Notifier func(Notice)

// Service runs reporting operations against the Zoom API. Operations are
// synchronous and independently re-entrant: each owns its full call tree
// (token, pages, record set) and no state is shared between calls.
type Service struct {
	client *zoomapi.Client
	notify Notifier
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier routes notices to the given function instead of the default
// info-level log.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notify = n
	}
}

// NewService creates a reporting service on top of a Zoom API client.
func NewService(client *zoomapi.Client, opts ...Option) *Service {
	s := &Service{
		client: client,
		notify: logNotice,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func logNotice(n Notice) {
	slog.Info(n.Message, "operation", n.Operation, "resource_id", n.ResourceID)
}

func (s *Service) emit(op, resourceID, message string) {
	s.notify(Notice{Operation: op, ResourceID: resourceID, Message: message})
}

// opContext tags the context so every log record from the operation's call
// tree carries the operation name and a correlation ID.
func opContext(ctx context.Context, op string) context.Context {
	ctx = logging.AppendCtx(ctx, slog.String("operation", op))
	return logging.AppendCtx(ctx, slog.String("request_id", uuid.NewString()))
}

// fetchCollection is the shared resolve -> token -> fetch -> normalize spine
// used by every paged-collection operation.
func (s *Service) fetchCollection(ctx context.Context, op string, params map[string]string, collection string, opts zoomapi.PageOptions) (*dataset.RecordSet, error) {
	path, err := zoomapi.ResolvePath(op, params)
	if err != nil {
		return nil, err
	}

	token, err := s.client.Token(ctx)
	if err != nil {
		return nil, err
	}

	pages, err := s.client.FetchAllPages(ctx, token, path, opts)
	if err != nil {
		return nil, err
	}

	rs, err := dataset.Normalize(pages, collection)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "fetched collection", "collection", collection, "pages", len(pages), "rows", rs.Len())
	return rs, nil
}

// fetchObject is the shared spine for single-object detail endpoints.
func (s *Service) fetchObject(ctx context.Context, op string, params map[string]string) ([]byte, error) {
	path, err := zoomapi.ResolvePath(op, params)
	if err != nil {
		return nil, err
	}

	token, err := s.client.Token(ctx)
	if err != nil {
		return nil, err
	}

	return s.client.FetchObject(ctx, token, path, nil)
}
