// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestAppendCtx(t *testing.T) {
	ctx := AppendCtx(context.Background(), slog.String("operation", "list_users"))
	ctx = AppendCtx(ctx, slog.String("request_id", "req-1"))

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attrs on context")
	}
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "operation" || attrs[1].Key != "request_id" {
		t.Errorf("unexpected attr keys: %v", attrs)
	}
}

func TestAppendCtx_NilParent(t *testing.T) {
	ctx := AppendCtx(nil, slog.String("k", "v")) //nolint:staticcheck // nil parent is part of the contract
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
}

func TestContextHandler_IncludesContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := contextHandler{slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	ctx := AppendCtx(context.Background(), slog.String("operation", "webinar_registrants"))
	logger.InfoContext(ctx, "fetched page")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to parse log record: %v", err)
	}
	if record["operation"] != "webinar_registrants" {
		t.Errorf("expected context attr in record, got %v", record)
	}
}
