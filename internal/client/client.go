package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/types"
)

// DefaultTimeout bounds every API call.
const DefaultTimeout = 60 * time.Second

// APIError is a non-2xx response from the API.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
}

// Client is an HTTP implementation of every provider interface.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var (
	_ GraphProvider     = (*Client)(nil)
	_ ChatProvider      = (*Client)(nil)
	_ TimelineProvider  = (*Client)(nil)
	_ MaterialsProvider = (*Client)(nil)
	_ ResumeProvider    = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Providers returns c as every provider.
func (c *Client) Providers() Providers {
	return Providers{Graph: c, Chat: c, Timeline: c, Materials: c, Resume: c}
}

// FetchGraph implements GraphProvider.
func (c *Client) FetchGraph(ctx context.Context) (types.GraphData, error) {
	var data types.GraphData
	err := c.do(ctx, http.MethodGet, "/api/graph", nil, "", &data)
	return data, err
}

// SendMessage implements ChatProvider.
func (c *Client) SendMessage(ctx context.Context, message string, history []types.HistoryEntry) (string, error) {
	var resp types.ChatResponse
	if err := c.postJSON(ctx, "/api/chat", types.ChatRequest{Message: message, History: history}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// GenerateTimeline implements TimelineProvider.
func (c *Client) GenerateTimeline(ctx context.Context, req types.TimelineRequest) (*types.TimelinePlan, error) {
	var plan types.TimelinePlan
	if err := c.postJSON(ctx, "/api/plan-timeline", req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// StudyMaterials implements MaterialsProvider.
func (c *Client) StudyMaterials(ctx context.Context, code string) (*types.CourseStudyMaterials, error) {
	var out types.CourseStudyMaterials
	if err := c.do(ctx, http.MethodGet, "/api/study-materials/"+url.PathEscape(code), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseResume implements ResumeProvider by uploading r as a multipart file.
func (c *Client) ParseResume(ctx context.Context, filename string, r io.Reader) (*types.ResumeProfile, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	var profile types.ResumeProfile
	if err := c.do(ctx, http.MethodPost, "/api/upload-resume", &body, mw.FormDataContentType(), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Endpoint: path, Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// errorMessage pulls the message out of an {"error": "..."} body.
func errorMessage(body []byte) string {
	var e struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Error != "" {
			return e.Error
		}
		if e.Detail != "" {
			return e.Detail
		}
	}
	return strings.TrimSpace(string(body))
}
