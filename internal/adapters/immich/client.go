package immich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/google/uuid"
)

const maxResponseBytes = 8 << 20
const maxErrorBytes = 4 << 10
const defaultRequestTimeout = 30 * time.Second

// groupNamespace seeds the IDs derived for groups the server sends without
// a duplicateId.
var groupNamespace = uuid.MustParse("6f0c1f38-8d4e-4c1a-9a55-2f1bde0f61c3")

type Client struct {
	Config         domain.ClientConfig
	HTTPClient     *http.Client
	RequestTimeout time.Duration

	base string
}

type duplicateResponse struct {
	DuplicateID string          `json:"duplicateId"`
	Assets      []assetResponse `json:"assets"`
}

type assetResponse struct {
	ID string `json:"id"`
}

type deleteAssetsRequest struct {
	IDs   []domain.AssetID `json:"ids"`
	Force bool             `json:"force"`
}

type updateAssetsRequest struct {
	IDs         []domain.AssetID `json:"ids"`
	DuplicateID *string          `json:"duplicateId"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func NewClient(cfg domain.ClientConfig, httpClient *http.Client, timeout time.Duration) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &domain.ConfigurationError{Field: "api key", Reason: "not set"}
	}

	base, err := requestBase(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{Config: cfg, HTTPClient: httpClient, RequestTimeout: timeout, base: base}, nil
}

// requestBase puts the endpoint path under BaseURL, so an override replaces
// the origin of every request while the API prefix stays.
func requestBase(cfg domain.ClientConfig) (string, error) {
	endpoint, err := url.Parse(strings.TrimSpace(cfg.Endpoint))
	if err != nil {
		return "", &domain.ConfigurationError{Field: "endpoint", Value: cfg.Endpoint, Reason: "not a valid URL", Err: err}
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return "", &domain.ConfigurationError{Field: "endpoint", Value: cfg.Endpoint, Reason: "not an absolute URL"}
	}

	origin := endpoint
	field, value := "endpoint", cfg.Endpoint
	if cfg.BaseURL != "" {
		origin, err = url.Parse(strings.TrimSpace(cfg.BaseURL))
		if err != nil {
			return "", &domain.ConfigurationError{Field: "base url", Value: cfg.BaseURL, Reason: "not a valid URL", Err: err}
		}
		field, value = "base url", cfg.BaseURL
	}
	if origin.Scheme != "http" && origin.Scheme != "https" {
		return "", &domain.ConfigurationError{Field: field, Value: value, Reason: "must use http or https"}
	}
	if origin.Host == "" {
		return "", &domain.ConfigurationError{Field: field, Value: value, Reason: "has no host"}
	}

	return origin.Scheme + "://" + origin.Host + strings.TrimRight(endpoint.EscapedPath(), "/"), nil
}

// ListDuplicates returns every duplicate group the server knows about.
func (c *Client) ListDuplicates(ctx context.Context) ([]domain.DuplicateGroup, error) {
	var payload []duplicateResponse
	if err := c.doJSON(ctx, http.MethodGet, "/duplicates", nil, &payload); err != nil {
		return nil, fmt.Errorf("list duplicates: %w", err)
	}

	groups := make([]domain.DuplicateGroup, 0, len(payload))
	for _, entry := range payload {
		assets := make([]domain.AssetID, 0, len(entry.Assets))
		for _, asset := range entry.Assets {
			assets = append(assets, domain.AssetID(asset.ID))
		}
		assets = domain.NormalizeAssets(assets)
		if len(assets) == 0 {
			continue
		}

		id := domain.GroupID(strings.TrimSpace(entry.DuplicateID))
		if id == "" {
			id = DeriveGroupID(assets)
		}
		groups = append(groups, domain.DuplicateGroup{ID: id, Assets: assets})
	}

	return groups, nil
}

// DeleteAssets moves the assets to the server's trash.
func (c *Client) DeleteAssets(ctx context.Context, ids []domain.AssetID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/assets", deleteAssetsRequest{IDs: ids}, nil); err != nil {
		return fmt.Errorf("delete assets: %w", err)
	}
	return nil
}

// ClearDuplicate detaches the assets from their duplicate group.
func (c *Client) ClearDuplicate(ctx context.Context, ids []domain.AssetID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.doJSON(ctx, http.MethodPut, "/assets", updateAssetsRequest{IDs: ids}, nil); err != nil {
		return fmt.Errorf("clear duplicate: %w", err)
	}
	return nil
}

// Thumbnail streams the preview image of an asset. The caller closes the
// body.
func (c *Client) Thumbnail(ctx context.Context, id domain.AssetID) (io.ReadCloser, string, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, "", errors.New("asset id is required")
	}

	requestCtx, cancel := c.requestContext(ctx)
	req, err := c.newRequest(requestCtx, http.MethodGet, "/assets/"+url.PathEscape(string(id))+"/thumbnail", nil)
	if err != nil {
		cancel()
		return nil, "", err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		cancel()
		return nil, "", fmt.Errorf("fetch thumbnail: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		_ = resp.Body.Close()
		cancel()
		return nil, "", fmt.Errorf("fetch thumbnail: %w", err)
	}

	return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, resp.Header.Get("Content-Type"), nil
}

// AssetURL links to the asset in the server's web UI.
func (c *Client) AssetURL(id domain.AssetID) string {
	return AssetURL(c.Config.BaseURL, id)
}

func AssetURL(baseURL string, id domain.AssetID) string {
	return strings.TrimRight(baseURL, "/") + "/photos/" + url.PathEscape(string(id))
}

// DeriveGroupID builds a stable ID from the member assets so the same group
// maps to the same key across refreshes.
func DeriveGroupID(assets []domain.AssetID) domain.GroupID {
	sorted := make([]string, 0, len(assets))
	for _, asset := range assets {
		sorted = append(sorted, string(asset))
	}
	sort.Strings(sorted)

	return domain.GroupID(uuid.NewSHA1(groupNamespace, []byte(strings.Join(sorted, "\n"))).String())
}

func (c *Client) doJSON(ctx context.Context, method string, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := c.newRequest(requestCtx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBytes))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body io.Reader) (*http.Request, error) {
	base := c.base
	if base == "" {
		base = strings.TrimRight(c.Config.Endpoint, "/")
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, value := range c.Config.Headers() {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	message := decodeErrorMessage(resp)
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, message)
	}
	return errors.New(message)
}

func decodeErrorMessage(resp *http.Response) string {
	var payload errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBytes)).Decode(&payload); err != nil {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	switch {
	case payload.Message != "":
		return fmt.Sprintf("status %d: %s", resp.StatusCode, payload.Message)
	case payload.Error != "":
		return fmt.Sprintf("status %d: %s", resp.StatusCode, payload.Error)
	default:
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
