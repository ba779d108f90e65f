package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultHTTPTimeout = 60 * time.Second

// Config captures the runtime settings required to talk to the service.
type Config struct {
	ServiceURL      string
	VideoServiceURL string
	Timeout         time.Duration
}

// XRPCClient implements Client over plain XRPC HTTP calls.
type XRPCClient struct {
	cfg        Config
	httpClient *http.Client
	session    *Session
}

// Option customizes the client.
type Option func(*XRPCClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *XRPCClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an XRPC client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *XRPCClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	cfg.ServiceURL = strings.TrimRight(cfg.ServiceURL, "/")
	cfg.VideoServiceURL = strings.TrimRight(cfg.VideoServiceURL, "/")

	client := &XRPCClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Login creates a session and stores it for subsequent calls.
func (c *XRPCClient) Login(ctx context.Context, identifier, secret string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"identifier": identifier,
		"password":   secret,
	})
	if err != nil {
		return nil, fmt.Errorf("encode login request: %w", err)
	}

	var session Session
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.ServiceURL+"/xrpc/com.atproto.server.createSession", "", bytes.NewReader(body), &session); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if session.DID == "" || session.AccessJWT == "" {
		return nil, errors.New("login: incomplete session in response")
	}
	c.session = &session
	return &session, nil
}

// Post creates an app.bsky.feed.post record and returns its URI.
func (c *XRPCClient) Post(ctx context.Context, post PostInput) (string, error) {
	if c.session == nil {
		return "", errors.New("post: not logged in")
	}

	record := map[string]any{
		"$type":     "app.bsky.feed.post",
		"text":      post.Text,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}
	if post.Embed != nil {
		record["embed"] = post.Embed
	}
	body, err := json.Marshal(map[string]any{
		"repo":       c.session.DID,
		"collection": "app.bsky.feed.post",
		"record":     record,
	})
	if err != nil {
		return "", fmt.Errorf("encode post record: %w", err)
	}

	var response struct {
		URI string `json:"uri"`
		CID string `json:"cid"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.ServiceURL+"/xrpc/com.atproto.repo.createRecord", c.session.AccessJWT, bytes.NewReader(body), &response); err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	return response.URI, nil
}

// GetServiceAuth fetches a short-lived token scoped to one capability.
func (c *XRPCClient) GetServiceAuth(ctx context.Context, req ServiceAuthRequest) (string, error) {
	if c.session == nil {
		return "", errors.New("service auth: not logged in")
	}

	audience := req.Audience
	if audience == "" {
		host, err := c.serviceHost()
		if err != nil {
			return "", err
		}
		audience = "did:web:" + host
	}

	query := url.Values{}
	query.Set("aud", audience)
	query.Set("lxm", req.Capability)
	if !req.Expiry.IsZero() {
		query.Set("exp", strconv.FormatInt(req.Expiry.Unix(), 10))
	}

	var response struct {
		Token string `json:"token"`
	}
	endpoint := c.cfg.ServiceURL + "/xrpc/com.atproto.server.getServiceAuth?" + query.Encode()
	if err := c.doJSON(ctx, http.MethodGet, endpoint, c.session.AccessJWT, nil, &response); err != nil {
		return "", fmt.Errorf("service auth: %w", err)
	}
	if response.Token == "" {
		return "", errors.New("service auth: empty token in response")
	}
	return response.Token, nil
}

// UploadVideo submits video bytes to the ingest endpoint and returns the
// processing job, which may already carry a blob reference.
func (c *XRPCClient) UploadVideo(ctx context.Context, token, filename string, video []byte) (*JobStatus, error) {
	if c.session == nil {
		return nil, errors.New("upload video: not logged in")
	}

	query := url.Values{}
	query.Set("did", c.session.DID)
	query.Set("name", filename)
	endpoint := c.cfg.VideoServiceURL + "/xrpc/app.bsky.video.uploadVideo?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(video))
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "video/mp4")
	req.ContentLength = int64(len(video))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}
	// The ingest endpoint reports an already-processed video as a conflict
	// carrying a complete job status, so only reject statuses without one.
	var job JobStatus
	if err := json.Unmarshal(payload, &job); err != nil || job.JobID == "" {
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("upload video: status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
		}
		if err != nil {
			return nil, fmt.Errorf("parse upload response: %w", err)
		}
		return nil, fmt.Errorf("upload video: missing jobId in response: %s", strings.TrimSpace(string(payload)))
	}
	return &job, nil
}

// GetJobStatus queries the video-processing job state.
func (c *XRPCClient) GetJobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	query := url.Values{}
	query.Set("jobId", jobID)

	var response struct {
		JobStatus JobStatus `json:"jobStatus"`
	}
	endpoint := c.cfg.VideoServiceURL + "/xrpc/app.bsky.video.getJobStatus?" + query.Encode()
	if err := c.doJSON(ctx, http.MethodGet, endpoint, "", nil, &response); err != nil {
		return nil, fmt.Errorf("job status: %w", err)
	}
	return &response.JobStatus, nil
}

func (c *XRPCClient) serviceHost() (string, error) {
	parsed, err := url.Parse(c.cfg.ServiceURL)
	if err != nil {
		return "", fmt.Errorf("parse service url: %w", err)
	}
	return parsed.Host, nil
}

func (c *XRPCClient) doJSON(ctx context.Context, method, endpoint, bearer string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ Client = (*XRPCClient)(nil)
