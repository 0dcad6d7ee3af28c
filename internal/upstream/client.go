// Package upstream is the typed client for the remote commerce REST API.
// One method per backend operation; authenticated calls attach a bearer
// token; catalog reads go through a shared TTL cache sized to the configured
// revalidation window.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/wardiya/storefront/internal/config"
	"github.com/wardiya/storefront/internal/debuglog"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
	catalogTTL time.Duration
	heroTTL    time.Duration
	sink       *debuglog.Sink
}

// New builds a client from config. A missing base URL is a configuration
// error surfaced here, at first use.
func New(cfg *config.Config, sink *debuglog.Sink) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.UpstreamAPIURL), "/")
	if base == "" {
		return nil, ErrNotConfigured
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		cache:      gocache.New(cfg.CatalogRevalidate, 10*time.Minute),
		catalogTTL: cfg.CatalogRevalidate,
		heroTTL:    cfg.HeroRevalidate,
		sink:       sink,
	}, nil
}

// envelope is the common upstream response shape. Error bodies carry only
// Message; success bodies carry Data.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do issues one request. A nil out discards the response data. The bearer
// token is attached when non-empty.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: "request failed"}
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	// Success bodies are either {success, data} or the resource shape
	// directly; try the envelope first.
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}

// getCached serves a catalog read from the shared cache when it is inside
// its revalidation window. Staleness within the window is acceptable by
// contract; correctness never depends on the cache.
func (c *Client) getCached(ctx context.Context, path string, ttl time.Duration, out any) error {
	if cached, ok := c.cache.Get(path); ok {
		return json.Unmarshal(cached.([]byte), out)
	}

	if err := c.do(ctx, http.MethodGet, path, "", nil, out); err != nil {
		return err
	}

	if encoded, err := json.Marshal(out); err == nil {
		c.cache.Set(path, encoded, ttl)
	}
	c.record(path, out, debuglog.KindServer)
	return nil
}

// InvalidateCache empties the read cache; wired to the revalidation trigger
// endpoint.
func (c *Client) InvalidateCache() {
	c.cache.Flush()
}

// Ping checks upstream reachability for health reporting.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *Client) record(source string, payload any, kind debuglog.Kind) {
	if c.sink != nil {
		c.sink.Add(source, payload, kind)
	}
}
