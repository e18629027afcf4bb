package github

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

	"golang.org/x/oauth2"
)

// Client issues authenticated calls against the GitHub REST API. It holds no
// credential: every method takes the caller's bearer token.
// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	apiVersion string
	timeout    time.Duration
	transport  http.RoundTripper
}

// New creates a new GitHub client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		timeout:    cfg.Timeout,
		transport:  cfg.Transport,
	}
}

// WithTimeout returns a copy of c whose calls are bounded by d.
func (c *Client) WithTimeout(d time.Duration) *Client {
	cp := *c
	if d > 0 {
		cp.timeout = d
	}
	return &cp
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) httpClient(token string) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   c.transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		},
	}
}

// do performs one request. A nil out discards the body. Any non-2xx status
// and any transport failure come back as *Error.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, in, out any) (http.Header, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("github: failed to marshal %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("github: failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", mediaTypeJSON)
	req.Header.Set(headerAPIVersion, c.apiVersion)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient(token).Do(req)
	if err != nil {
		return nil, &Error{Kind: KindConnectivity, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.Header, &Error{Kind: KindConnectivity, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Header, classify(resp.StatusCode, resp.Header, raw)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.Header, fmt.Errorf("github: failed to decode %s %s response: %w", method, path, err)
		}
	}
	return resp.Header, nil
}

// classify maps a non-2xx response onto an *Error by status-code family.
func classify(status int, header http.Header, raw []byte) *Error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)

	e := &Error{StatusCode: status, Message: eb.Message, Details: eb.Errors}
	switch status {
	case http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case http.StatusForbidden:
		if header.Get(headerRateLimitRemaining) == "0" || strings.Contains(strings.ToLower(eb.Message), "rate limit") {
			e.Kind = KindRateLimited
		} else {
			e.Kind = KindForbidden
		}
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimited
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusMethodNotAllowed:
		e.Kind = KindMethodNotAllowed
	case http.StatusConflict:
		e.Kind = KindConflict
	case http.StatusUnprocessableEntity:
		e.Kind = KindValidation
	default:
		e.Kind = KindUnexpected
	}
	return e
}

// escapePath escapes each segment of a repository path, keeping separators.
func escapePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

func repoPath(owner, repo string) string {
	return fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))
}

func pageSize(n int) string {
	if n <= 0 {
		n = DefaultPageSize
	}
	return fmt.Sprintf("%d", n)
}
