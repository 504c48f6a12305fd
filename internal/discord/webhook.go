// Package discord delivers rendered game content through a webhook,
// with forum-thread support and rate-limit backoff.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fortuna/hockeyhook/internal/render"
)

const (
	// MaxEmbedsPerMessage is Discord's per-message embed cap.
	MaxEmbedsPerMessage = 10

	maxAttempts       = 6
	rateLimitMargin   = 200 * time.Millisecond
	defaultRetryAfter = 1 * time.Second
)

// Client posts messages to one Discord webhook.
type Client struct {
	webhookURL string
	username   string
	httpClient *http.Client

	sleep func(time.Duration)
}

// New creates a webhook client posting under the given username.
func New(webhookURL, username string) *Client {
	return &Client{
		webhookURL: webhookURL,
		username:   username,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sleep:      time.Sleep,
	}
}

// Message is one webhook call's content.
type Message struct {
	Content    string
	Embeds     []render.Embed
	ThreadName string // forum-only: creates a new thread
}

// Response is the webhook's created-message response (wait=true mode).
type Response struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
}

// ThreadID returns the identifier to address follow-up messages at the
// thread created by this response. Forum webhooks report the created
// thread as channel_id; fall back to the message id.
func (r *Response) ThreadID() string {
	if r.ChannelID != "" {
		return r.ChannelID
	}
	return r.ID
}

type payload struct {
	Username   string         `json:"username"`
	Content    string         `json:"content,omitempty"`
	Embeds     []render.Embed `json:"embeds,omitempty"`
	ThreadName string         `json:"thread_name,omitempty"`
}

// Post sends one message, creating a thread when msg.ThreadName is set
// or posting into threadID when given. Rate-limit (429) responses are
// retried after the server-advised wait plus a small margin, up to the
// attempt ceiling; any other non-2xx fails immediately.
func (c *Client) Post(ctx context.Context, msg Message, threadID string) (*Response, error) {
	if c.webhookURL == "" {
		return nil, fmt.Errorf("missing webhook URL")
	}

	u, err := url.Parse(c.webhookURL)
	if err != nil {
		return nil, fmt.Errorf("parse webhook URL: %w", err)
	}
	q := u.Query()
	q.Set("wait", "true")
	if threadID != "" {
		q.Set("thread_id", threadID)
	}
	u.RawQuery = q.Encode()

	body, err := json.Marshal(payload{
		Username:   c.username,
		Content:    msg.Content,
		Embeds:     msg.Embeds,
		ThreadName: msg.ThreadName,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal webhook payload: %w", err)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("webhook post: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := retryAfter(resp.Body)
			resp.Body.Close()
			c.sleep(wait)
			continue
		}

		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("webhook failed: status %d: %s", resp.StatusCode, string(respBody))
		}

		var out Response
		if err := json.Unmarshal(respBody, &out); err != nil {
			// Some webhook modes return an empty body on success.
			return &Response{}, nil
		}
		return &out, nil
	}

	return nil, fmt.Errorf("webhook failed: too many rate limits (%d attempts)", maxAttempts)
}

// retryAfter reads the 429 body's retry_after (seconds) and returns the
// wait with margin applied; unparsable bodies wait the default.
func retryAfter(body io.Reader) time.Duration {
	var rl struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.NewDecoder(body).Decode(&rl); err != nil || rl.RetryAfter <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(rl.RetryAfter*float64(time.Second)) + rateLimitMargin
}

// ChunkEmbeds splits embeds into webhook-sized batches.
func ChunkEmbeds(embeds []render.Embed) [][]render.Embed {
	var chunks [][]render.Embed
	for i := 0; i < len(embeds); i += MaxEmbedsPerMessage {
		end := i + MaxEmbedsPerMessage
		if end > len(embeds) {
			end = len(embeds)
		}
		chunks = append(chunks, embeds[i:end])
	}
	return chunks
}
