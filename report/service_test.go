// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package report

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/clearinsights/zoomreport/zoomapi"
)

// noticeRecorder captures notices emitted during a test operation.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

func (r *noticeRecorder) last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

// newTestService starts a fake Zoom API that serves the token endpoint itself
// and delegates everything else to the handler.
func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *noticeRecorder) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token": "test_token", "token_type": "Bearer"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := zoomapi.NewClient(zoomapi.Config{
		AccountID:    "test-account",
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		BaseURL:      server.URL,
		AuthURL:      server.URL + "/token",
	})

	recorder := &noticeRecorder{}
	return NewService(client, WithNotifier(recorder.notify)), recorder
}
