package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BaseURL is the NHL web API root.
const BaseURL = "https://api-web.nhle.com/v1"

// Client handles NHL web API requests. All responses are returned as
// opaque JSON maps; field access goes through the accessors in fields.go
// because the feed's shape has drifted across API versions.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an NHL API client with a custom base URL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClient creates an NHL API client with default settings.
func NewClient() *Client {
	return New(BaseURL)
}

// Score fetches the daily schedule/score sheet for a date (YYYY-MM-DD).
func (c *Client) Score(ctx context.Context, date string) (map[string]interface{}, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/score/%s", c.baseURL, date))
}

// Boxscore fetches the boxscore for a game.
func (c *Client) Boxscore(ctx context.Context, gameID int64) (map[string]interface{}, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/gamecenter/%d/boxscore", c.baseURL, gameID))
}

// PlayByPlay fetches the play-by-play feed for a game.
func (c *Client) PlayByPlay(ctx context.Context, gameID int64) (map[string]interface{}, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/gamecenter/%d/play-by-play", c.baseURL, gameID))
}

// Roster fetches the current roster for a team abbreviation (e.g. "LAK").
func (c *Client) Roster(ctx context.Context, teamAbbr string) (map[string]interface{}, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/roster/%s/current", c.baseURL, teamAbbr))
}

func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("fetch %s: status %d: %s", url, resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return result, nil
}
