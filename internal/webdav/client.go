package webdav

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// RequestTimeout bounds every WebDAV request. Uploads of large
// archives over slow links need generous room.
const RequestTimeout = 10 * time.Minute

// Client talks to one WebDAV server with fixed credentials
type Client struct {
	cfg        model.WebDAVConfig
	httpClient *http.Client
}

// NewClient creates a client for the given connection settings
func NewClient(cfg model.WebDAVConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: RequestTimeout},
	}
}

// JoinURL builds a request URL from the base URL and path segments.
// Redundant slashes collapse and empty segments disappear, so an unset
// remote path never produces a double slash.
func JoinURL(base string, segments ...string) string {
	url := strings.TrimRight(base, "/")
	for _, segment := range segments {
		segment = strings.Trim(segment, "/")
		if segment == "" {
			continue
		}
		url += "/" + segment
	}
	return url
}

// FileURL returns the full URL of a file inside the configured remote path
func (c *Client) FileURL(filename string) string {
	return JoinURL(c.cfg.URL, c.cfg.RemotePath, filename)
}

// DirURL returns the URL of the configured remote collection
func (c *Client) DirURL() string {
	return JoinURL(c.cfg.URL, c.cfg.RemotePath)
}

// Upload stores data under filename in the remote path
func (c *Client) Upload(ctx context.Context, filename string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.FileURL(filename), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.ContentLength = int64(len(data))
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return fmt.Errorf("upload %s: %w", filename, ErrUnauthorized)
	default:
		return fmt.Errorf("upload %s: unexpected status %d", filename, resp.StatusCode)
	}
}

// Download fetches the contents of filename from the remote path
func (c *Client) Download(ctx context.Context, filename string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FileURL(filename), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("download %s: %w", filename, ErrNotFound)
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("download %s: %w", filename, ErrUnauthorized)
	default:
		return nil, fmt.Errorf("download %s: unexpected status %d", filename, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read download body: %w", err)
	}
	return data, nil
}

// Delete removes filename from the remote path
func (c *Client) Delete(ctx context.Context, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.FileURL(filename), nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("delete %s: %w", filename, ErrNotFound)
	case http.StatusUnauthorized:
		return fmt.Errorf("delete %s: %w", filename, ErrUnauthorized)
	default:
		return fmt.Errorf("delete %s: unexpected status %d", filename, resp.StatusCode)
	}
}

// List returns the files in the remote collection in the order the
// server reported them. Sub-collections are skipped.
func (c *Client) List(ctx context.Context) ([]model.BackupFileInfo, error) {
	body, err := c.propfind(ctx, c.DirURL(), "1")
	if err != nil {
		return nil, err
	}
	return parseMultistatus(body)
}

// Ping checks that the remote collection is reachable with the
// configured credentials
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.propfind(ctx, c.DirURL(), "0")
	return err
}

// propfind issues a PROPFIND with the given Depth and returns the
// multistatus body
func (c *Client) propfind(ctx context.Context, url, depth string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "PROPFIND", url, strings.NewReader(propfindBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create propfind request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Depth", depth)
	req.Header.Set("Content-Type", `application/xml; charset="utf-8"`)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("propfind failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusMultiStatus, http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("propfind %s: %w", url, ErrNotFound)
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("propfind %s: %w", url, ErrUnauthorized)
	default:
		return nil, fmt.Errorf("propfind %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read propfind body: %w", err)
	}
	return data, nil
}
