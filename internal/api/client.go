package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tabnews-cli/tn/internal/debuglog"
)

const (
	// DefaultBaseURL is the production TabNews API.
	DefaultBaseURL = "https://www.tabnews.com.br/api/v1"

	// DefaultSiteURL is the web frontend, used for opening contents in a browser.
	DefaultSiteURL = "https://www.tabnews.com.br"

	userAgent      = "tn/1.0 (TabNews terminal client; github.com/tabnews-cli/tn)"
	defaultTimeout = 30 * time.Second

	// sessionCookie is how TabNews expects the session token on requests.
	sessionCookie = "session_id"
)

// Error is the failure returned for any non-2xx API response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Client talks to the TabNews read endpoints plus the session login call.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for baseURL. A nil httpClient gets the default
// transport with a 30s timeout. token may be empty; read endpoints do not
// require one.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

// Token returns the session token currently held by the client.
func (c *Client) Token() string { return c.token }

// SetToken replaces the session token attached to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// ListContents fetches one page of the site-wide feed.
func (c *Client) ListContents(ctx context.Context, page, perPage int, strategy string) ([]Content, error) {
	return c.listContents(ctx, "/contents", page, perPage, strategy)
}

// ListUserContents fetches one page of a single author's contents.
func (c *Client) ListUserContents(ctx context.Context, username string, page, perPage int, strategy string) ([]Content, error) {
	return c.listContents(ctx, "/contents/"+url.PathEscape(username), page, perPage, strategy)
}

func (c *Client) listContents(ctx context.Context, path string, page, perPage int, strategy string) ([]Content, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if strategy == "" {
		strategy = "relevant"
	}

	q := make(url.Values)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("strategy", strategy)

	resp, err := c.get(ctx, path+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var contents []Content
	if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
		return nil, fmt.Errorf("decoding contents response: %w", err)
	}
	return contents, nil
}

// GetContent fetches a single content item including its markdown body.
func (c *Client) GetContent(ctx context.Context, username, slug string) (*Content, error) {
	resp, err := c.get(ctx, "/contents/"+url.PathEscape(username)+"/"+url.PathEscape(slug))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var content Content
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return nil, fmt.Errorf("decoding content response: %w", err)
	}
	return &content, nil
}

// GetComments fetches the child comments of a content item.
func (c *Client) GetComments(ctx context.Context, username, slug string) ([]Comment, error) {
	resp, err := c.get(ctx, "/contents/"+url.PathEscape(username)+"/"+url.PathEscape(slug)+"/children")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var comments []Comment
	if err := json.NewDecoder(resp.Body).Decode(&comments); err != nil {
		return nil, fmt.Errorf("decoding comments response: %w", err)
	}
	return comments, nil
}

// Login posts credentials to the sessions endpoint. On HTTP 200 it stores the
// returned token and reports true; any other status reports false without a
// typed error. Transport failures are still returned.
func (c *Client) Login(ctx context.Context, email, password string) (bool, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return false, fmt.Errorf("encoding login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sessions", bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		debuglog.Warnf("login rejected with status %d", resp.StatusCode)
		return false, nil
	}

	var session struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return false, fmt.Errorf("decoding session response: %w", err)
	}

	c.token = session.Token
	return true, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	return resp, nil
}

// checkStatus converts a non-2xx response into an *Error, extracting the
// message field the API puts in its JSON error bodies.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := "Unknown error"
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var apiBody struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &apiBody) == nil && apiBody.Message != "" {
			message = apiBody.Message
		}
	}

	debuglog.Debugf("api error: status=%d message=%q", resp.StatusCode, message)
	return &Error{StatusCode: resp.StatusCode, Message: message}
}
