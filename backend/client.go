// Package backend talks to the menu knowledge API that owns canonical menus,
// the review queue and OCR.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pandamasta/menuguide/models"
)

// Client calls the menu API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient gets one with timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type identifyRequest struct {
	MenuNameKo string `json:"menu_name_ko"`
}

// Identify matches a Korean menu name against the canonical catalogue.
func (c *Client) Identify(ctx context.Context, nameKo string) (*models.IdentifyResult, error) {
	var res models.IdentifyResult
	body := identifyRequest{MenuNameKo: strings.TrimSpace(nameKo)}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/menu/identify", body, &res); err != nil {
		return nil, fmt.Errorf("identify %q: %w", body.MenuNameKo, err)
	}
	return &res, nil
}

// MenuDetail fetches a canonical menu with its enriched content.
func (c *Client) MenuDetail(ctx context.Context, id string) (*models.Menu, error) {
	var m models.Menu
	path := "/api/v1/canonical-menus/" + url.PathEscape(id) + "?include_enriched=true"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &m); err != nil {
		return nil, fmt.Errorf("menu detail %s: %w", id, err)
	}
	return &m, nil
}

// Queue lists review queue items matching filter.
func (c *Client) Queue(ctx context.Context, filter models.QueueFilter) (*models.QueuePage, error) {
	f := filter.Normalize()
	q := url.Values{}
	q.Set("status", f.Status)
	q.Set("source", f.Source)
	q.Set("limit", fmt.Sprint(f.Limit))
	q.Set("offset", fmt.Sprint(f.Offset))

	var page models.QueuePage
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/admin/queue?"+q.Encode(), nil, &page); err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	return &page, nil
}

// QueueAction applies a review decision to a queue item.
func (c *Client) QueueAction(ctx context.Context, id string, action models.QueueAction) error {
	if err := action.Validate(); err != nil {
		return err
	}
	path := "/api/v1/admin/queue/" + url.PathEscape(id) + "/approve"
	if err := c.doJSON(ctx, http.MethodPost, path, action, nil); err != nil {
		return fmt.Errorf("queue %s %s: %w", action.Action, id, err)
	}
	return nil
}

// Stats returns the admin monitoring numbers.
func (c *Client) Stats(ctx context.Context) (*models.AdminStats, error) {
	var s models.AdminStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/admin/stats", nil, &s); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &s, nil
}

// Recognize uploads a menu photo for OCR.
func (c *Client) Recognize(ctx context.Context, filename string, image io.Reader) (*models.OCRResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/menu/recognize", &buf)
	if err != nil {
		return nil, fmt.Errorf("build recognize request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res models.OCRResult
	if err := c.do(req, &res); err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}
	return &res, nil
}

// Health pings the API health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("[API] Request failed", "method", req.Method, "path", req.URL.Path, "err", err)
		return err
	}
	defer resp.Body.Close()

	slog.Debug("[API] Response",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
