package twitch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Default Twitch endpoints, overridable for tests
const (
	defaultAPIBase  = "https://api.twitch.tv/helix"
	defaultAuthBase = "https://id.twitch.tv"
)

// ErrChannelNotFound is returned when the configured channel does not exist
var ErrChannelNotFound = errors.New("twitch channel not found")

// Config holds Twitch API credentials and the channel to proxy for
type Config struct {
	ClientID     string
	ClientSecret string
	Channel      string
}

// Client is a stateless passthrough to the Twitch Helix API.
// It holds no cached data; every call goes upstream.
type Client struct {
	cfg        Config
	apiBase    string
	authBase   string
	httpClient *http.Client
}

// New creates a new Twitch client
func New(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		apiBase:  defaultAPIBase,
		authBase: defaultAuthBase,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetBaseURLs overrides the upstream endpoints (used in tests)
func (c *Client) SetBaseURLs(apiBase, authBase string) {
	c.apiBase = apiBase
	c.authBase = authBase
}

// AppToken is an app access token from the client-credentials grant
type AppToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// LiveStatus reports whether the channel is currently streaming
type LiveStatus struct {
	IsLive bool        `json:"is_live"`
	Stream *StreamInfo `json:"stream,omitempty"`
}

// StreamInfo describes an active stream
type StreamInfo struct {
	ID          string `json:"id"`
	UserName    string `json:"user_name"`
	GameName    string `json:"game_name"`
	Title       string `json:"title"`
	ViewerCount int    `json:"viewer_count"`
	StartedAt   string `json:"started_at"`
	Thumbnail   string `json:"thumbnail_url"`
}

// Clip describes a channel clip
type Clip struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail_url"`
	ViewCount int    `json:"view_count"`
	CreatedAt string `json:"created_at"`
}

// Configured reports whether API credentials are present
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// AppToken fetches an app access token via the client-credentials grant
func (c *Client) AppToken(ctx context.Context) (*AppToken, error) {
	if !c.Configured() {
		return nil, errors.New("twitch API credentials not configured")
	}

	tokenURL := fmt.Sprintf(
		"%s/oauth2/token?client_id=%s&client_secret=%s&grant_type=client_credentials",
		c.authBase, url.QueryEscape(c.cfg.ClientID), url.QueryEscape(c.cfg.ClientSecret),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, nil)
	if err != nil {
		return nil, err
	}

	var token AppToken
	if err := c.do(req, &token); err != nil {
		return nil, fmt.Errorf("twitch auth failed: %w", err)
	}
	return &token, nil
}

// LiveStatus checks whether the configured channel is live
func (c *Client) LiveStatus(ctx context.Context, accessToken string) (*LiveStatus, error) {
	userID, err := c.channelUserID(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	var streams struct {
		Data []StreamInfo `json:"data"`
	}
	path := fmt.Sprintf("%s/streams?user_id=%s", c.apiBase, url.QueryEscape(userID))
	if err := c.helixGet(ctx, path, accessToken, &streams); err != nil {
		return nil, err
	}

	if len(streams.Data) == 0 {
		return &LiveStatus{IsLive: false}, nil
	}
	return &LiveStatus{IsLive: true, Stream: &streams.Data[0]}, nil
}

// ChannelClips fetches recent clips for the configured channel
func (c *Client) ChannelClips(ctx context.Context, accessToken string, limit int) ([]Clip, error) {
	userID, err := c.channelUserID(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 6
	}

	var clips struct {
		Data []Clip `json:"data"`
	}
	path := fmt.Sprintf("%s/clips?broadcaster_id=%s&first=%d", c.apiBase, url.QueryEscape(userID), limit)
	if err := c.helixGet(ctx, path, accessToken, &clips); err != nil {
		return nil, err
	}
	return clips.Data, nil
}

// channelUserID resolves the configured channel name to a Twitch user id
func (c *Client) channelUserID(ctx context.Context, accessToken string) (string, error) {
	var users struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	path := fmt.Sprintf("%s/users?login=%s", c.apiBase, url.QueryEscape(c.cfg.Channel))
	if err := c.helixGet(ctx, path, accessToken, &users); err != nil {
		return "", err
	}
	if len(users.Data) == 0 {
		return "", ErrChannelNotFound
	}
	return users.Data[0].ID, nil
}

// helixGet performs an authenticated GET against the Helix API
func (c *Client) helixGet(ctx context.Context, fullURL, accessToken string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Client-ID", c.cfg.ClientID)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return c.do(req, result)
}

// do executes a request and decodes the JSON response
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("twitch API returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
