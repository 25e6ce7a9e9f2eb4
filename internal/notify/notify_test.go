package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWebhookPostsJSON(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
	}))
	defer server.Close()

	webhook := NewWebhook(server.URL, 2*time.Second)
	err := webhook.NotifyAdmins(context.Background(), "New Match Found - Phone", "Found 1 potential match(es)")
	if err != nil {
		t.Fatalf("NotifyAdmins: %v", err)
	}

	if got.Title != "New Match Found - Phone" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if got.Kind != "match" {
		t.Errorf("expected kind 'match', got %q", got.Kind)
	}
}

func TestWebhookErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	webhook := NewWebhook(server.URL, 2*time.Second)
	if err := webhook.NotifyAdmins(context.Background(), "t", "m"); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestWebhookEmptyURLIsNoop(t *testing.T) {
	webhook := NewWebhook("", time.Second)
	if err := webhook.NotifyAdmins(context.Background(), "t", "m"); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

type fakeSink struct {
	calls int
	err   error
}

func (f *fakeSink) NotifyAdmins(ctx context.Context, title, message string) error {
	f.calls++
	return f.err
}

func TestMultiDeliversToAllSinks(t *testing.T) {
	failing := &fakeSink{err: errors.New("down")}
	working := &fakeSink{}

	err := Multi{failing, working}.NotifyAdmins(context.Background(), "t", "m")
	if err == nil {
		t.Error("expected joined error from failing sink")
	}
	if working.calls != 1 {
		t.Errorf("expected working sink to still be called, got %d calls", working.calls)
	}
}
