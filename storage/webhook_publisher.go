package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nshopping-manager/models"
)

// DefaultPublishType tags rows produced by the scheduled run.
const DefaultPublishType = "auto_daily"

// WebhookPublisher posts classified rows as CSV to a spreadsheet webhook.
type WebhookPublisher struct {
	endpoint string
	token    string
	kind     string
	http     *http.Client
}

// NewWebhookPublisher creates a publisher for endpoint. kind defaults to
// DefaultPublishType.
func NewWebhookPublisher(endpoint, token, kind string, timeout time.Duration) *WebhookPublisher {
	if kind == "" {
		kind = DefaultPublishType
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookPublisher{
		endpoint: endpoint,
		token:    token,
		kind:     kind,
		http:     &http.Client{Timeout: timeout},
	}
}

// Publish sends rows in one request. It does not retry.
func (p *WebhookPublisher) Publish(ctx context.Context, rows []models.ClassifiedRow) error {
	if len(rows) == 0 {
		return nil
	}

	body, err := EncodeCSV(rows)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}

	u, err := url.Parse(p.endpoint)
	if err != nil {
		return fmt.Errorf("webhook: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("token", p.token)
	q.Set("type", p.kind)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook: unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}
	return nil
}
