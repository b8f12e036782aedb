package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/dontpanic/internal/appmsg"
)

// Bridge exchanges dictionaries with the companion application.
type Bridge interface {
	appmsg.Transport
	// Receive returns the dictionaries the companion has queued since the
	// previous call, in delivery order.
	Receive(ctx context.Context) ([]appmsg.Dict, error)
}

// Ensure Client implements Bridge at compile time.
var _ Bridge = (*Client)(nil)

// Client talks to a companion bridge over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBridgeAddr = "127.0.0.1:7488"
	defaultUserAgent  = "dontpanic/0.1"
	requestTimeout    = 5 * time.Second
)

// InboxResponse is the body of GET /api/inbox.
type InboxResponse struct {
	Messages []appmsg.Dict `json:"messages"`
}

// NewClient builds a Client for the bridge at addr, a host:port or URL.
func NewClient(addr string) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// String returns the bridge base URL.
func (c *Client) String() string {
	return c.baseURL.String()
}

// Send posts d to the bridge as JSON.
func (c *Client) Send(ctx context.Context, d appmsg.Dict) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/appmessage", bytes.NewReader(body), nil)
}

// Receive fetches queued inbound messages.
func (c *Client) Receive(ctx context.Context) ([]appmsg.Dict, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload InboxResponse
	if err := c.do(ctx, http.MethodGet, "/api/inbox", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("bridge %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		trimmed = defaultBridgeAddr
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse companion url %q: %w", addr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
