package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxFieldLen bounds embed field values; Discord rejects longer ones and
// error detail beyond this is noise anyway.
const maxFieldLen = 1000

// EmbedField is a single name/value pair inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed mirrors the Discord webhook embed structure.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type webhookPayload struct {
	Content string  `json:"content"`
	Embeds  []Embed `json:"embeds"`
}

// Client posts embeds to a Discord webhook URL.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient builds a webhook client. An empty URL produces a disabled client.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// Enabled reports whether a webhook URL is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// Send posts the embed to the webhook. Callers are expected to treat failures
// as log-only; nothing here is load-bearing for the triggering operation.
func (c *Client) Send(ctx context.Context, embed Embed) error {
	if !c.Enabled() {
		return nil
	}

	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(webhookPayload{Embeds: []Embed{embed}})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, detail)
	}

	return nil
}

// Truncate clips a value to the embed field limit.
func Truncate(value string) string {
	if len(value) <= maxFieldLen {
		return value
	}
	return value[:maxFieldLen]
}
