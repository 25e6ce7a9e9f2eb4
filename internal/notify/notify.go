// Package notify delivers match alerts to external webhooks and fans out
// to multiple notification sinks.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "FoundIt/1.0"

// Webhook POSTs notifications to an external endpoint as JSON.
// A zero-valued Webhook (no URL) is a no-op.
type Webhook struct {
	URL    string
	Client *http.Client
}

// NewWebhook builds a webhook notifier. An empty URL yields a notifier
// whose NotifyAdmins does nothing.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Webhook{
		URL:    strings.TrimSpace(url),
		Client: &http.Client{Timeout: timeout},
	}
}

type webhookPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// NotifyAdmins sends the notification to the configured webhook endpoint.
func (w *Webhook) NotifyAdmins(ctx context.Context, title, message string) error {
	if w == nil || w.URL == "" || w.Client == nil {
		return nil
	}

	body, err := json.Marshal(webhookPayload{Title: title, Message: message, Kind: "match"})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Notifier is any sink that can deliver an admin notification.
type Notifier interface {
	NotifyAdmins(ctx context.Context, title, message string) error
}

// Multi fans a notification out to every sink, collecting errors instead
// of stopping at the first failure.
type Multi []Notifier

func (m Multi) NotifyAdmins(ctx context.Context, title, message string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.NotifyAdmins(ctx, title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
