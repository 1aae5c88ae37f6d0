// Package client talks to the equipview server.
//
// Every fetch is tagged with a fresh request token, sent as X-Request-Id so
// it also shows up in the server log. Fetches are grouped into channels
// (dataset, history, compare); starting a fetch makes its token the current
// one for the channel, and a response whose token has been superseded by
// the time it arrives is discarded with ErrStale. Callers that issue
// overlapping loads, such as switching quickly between history items, only
// ever see the latest one.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/logging"
	"github.com/google/uuid"
)

// ErrStale is returned when a newer request on the same channel started
// before this response arrived.
var ErrStale = errors.New("stale response discarded")

// Fetch channels.
const (
	ChannelDataset = "dataset"
	ChannelHistory = "history"
	ChannelCompare = "compare"
)

// APIError is an error response from the server.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (Code: %s)", e.Message, e.Code)
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu      sync.Mutex
	current map[string]uuid.UUID
}

// New returns a client for the server at baseURL.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		current: make(map[string]uuid.UUID),
	}
}

// begin makes a new token current for channel.
func (c *Client) begin(channel string) uuid.UUID {
	tok := uuid.New()
	c.mu.Lock()
	c.current[channel] = tok
	c.mu.Unlock()
	return tok
}

// Current reports whether tok is still the latest token for channel.
func (c *Client) Current(channel string, tok uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current[channel] == tok
}

// History lists the server's upload history, newest first.
func (c *Client) History(ctx context.Context) ([]equipment.HistoryItem, error) {
	var items []equipment.HistoryItem
	err := c.do(ctx, ChannelHistory, http.MethodGet, "/api/history", nil, "", &items)
	return items, err
}

// Dataset loads the summary and records of one history item.
func (c *Client) Dataset(ctx context.Context, id int64) (equipment.Dataset, error) {
	var ds equipment.Dataset
	err := c.do(ctx, ChannelDataset, http.MethodGet, "/api/history/"+strconv.FormatInt(id, 10), nil, "", &ds)
	return ds, err
}

// Upload sends a CSV file to be stored and analyzed.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (equipment.Dataset, error) {
	body, contentType, err := multipartBody(map[string]namedReader{"file": {name, r}})
	if err != nil {
		return equipment.Dataset{}, err
	}
	var ds equipment.Dataset
	err = c.do(ctx, ChannelDataset, http.MethodPost, "/api/upload", body, contentType, &ds)
	return ds, err
}

// CompareFiles compares two local CSV files without storing them.
func (c *Client) CompareFiles(ctx context.Context, nameA string, a io.Reader, nameB string, b io.Reader) (equipment.ComparisonResult, error) {
	body, contentType, err := multipartBody(map[string]namedReader{
		"file_a": {nameA, a},
		"file_b": {nameB, b},
	})
	if err != nil {
		return equipment.ComparisonResult{}, err
	}
	var res equipment.ComparisonResult
	err = c.do(ctx, ChannelCompare, http.MethodPost, "/api/compare", body, contentType, &res)
	return res, err
}

// CompareStored compares two history items.
func (c *Client) CompareStored(ctx context.Context, idA, idB int64) (equipment.ComparisonResult, error) {
	q := url.Values{}
	q.Set("a", strconv.FormatInt(idA, 10))
	q.Set("b", strconv.FormatInt(idB, 10))

	var res equipment.ComparisonResult
	err := c.do(ctx, ChannelCompare, http.MethodGet, "/api/compare?"+q.Encode(), nil, "", &res)
	return res, err
}

func (c *Client) do(ctx context.Context, channel, method, path string, body io.Reader, contentType string, out any) error {
	tok := c.begin(channel)
	logger := logging.WithFields(ctx, "channel", channel, "token", tok.String())

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", tok.String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug("response", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	if !c.Current(channel, tok) {
		logger.Debug("discarding superseded response")
		return ErrStale
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}

type namedReader struct {
	name string
	r    io.Reader
}

func multipartBody(files map[string]namedReader) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, f := range files {
		part, err := mw.CreateFormFile(field, f.name)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", field, err)
		}
		if _, err := io.Copy(part, f.r); err != nil {
			return nil, "", fmt.Errorf("read %s: %w", f.name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
