package poller

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

	"github.com/blogem/boardhook/models"
)

const eventsPath = "/api/webhooks/events"

// HTTPError is a non-2xx answer from the server
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// HTTPClient talks to a boardhook server with a bearer token
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a client; an empty token is fine for single-tenant servers
func NewHTTPClient(baseURL, token string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPClient{
		baseURL:    baseURL,
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

// ReadSince fetches the event page
func (c *HTTPClient) ReadSince(ctx context.Context, lastKnownVersion int64) (models.EventPage, error) {
	var page models.EventPage
	query := url.Values{"since": {strconv.FormatInt(lastKnownVersion, 10)}}
	if err := c.doJSON(ctx, http.MethodGet, eventsPath+"?"+query.Encode(), nil, &page); err != nil {
		return models.EventPage{}, err
	}
	if page.Events == nil {
		page.Events = []models.Event{}
	}
	return page, nil
}

// Login exchanges credentials for a bearer token
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var result models.AuthResult
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", models.LoginForm{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Board fetches the lists of a board, the state a change invalidates
func (c *HTTPClient) Board(ctx context.Context, boardID string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/boards/"+url.PathEscape(boardID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, requestPath string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+requestPath, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	payload, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, out)
}
