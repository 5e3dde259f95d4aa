// Package trello is a small client for the Trello REST API endpoints the
// service proxies. Upstream failures come back as *APIError carrying the
// upstream status and body untouched.
package trello

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/blogem/boardhook/models"
)

// DefaultBaseURL is the public Trello API
const DefaultBaseURL = "https://api.trello.com"

// Credential authenticates calls on behalf of one Trello member
type Credential struct {
	Key   string
	Token string
}

// File is an uploaded attachment
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// APIError is a non-2xx response from Trello
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("trello: http %d", e.StatusCode)
	}
	return fmt.Sprintf("trello: http %d: %s", e.StatusCode, body)
}

// API is the task-board collaborator used by the services
type API interface {
	GetMember(ctx context.Context, cred Credential) (*models.TrelloMember, error)
	ListBoards(ctx context.Context, cred Credential) (json.RawMessage, error)
	ListBoardContents(ctx context.Context, cred Credential, boardID string) (json.RawMessage, error)
	GetCardDetail(ctx context.Context, cred Credential, cardID string) (json.RawMessage, error)
	MoveCard(ctx context.Context, cred Credential, cardID, targetListID string) (json.RawMessage, error)
	AddComment(ctx context.Context, cred Credential, cardID, text string) (json.RawMessage, error)
	AddAttachment(ctx context.Context, cred Credential, cardID string, file File) (json.RawMessage, error)
	CreateSubscription(ctx context.Context, cred Credential, callbackURL, resourceID string) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, cred Credential, subscriptionID string) error
}

// Client implements API over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Trello client. Empty baseURL means DefaultBaseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// GetMember returns the member the token belongs to
func (c *Client) GetMember(ctx context.Context, cred Credential) (*models.TrelloMember, error) {
	var member models.TrelloMember
	err := c.do(ctx, http.MethodGet, "/1/members/me", cred, url.Values{"fields": {"fullName,username"}}, nil, "", &member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *Client) ListBoards(ctx context.Context, cred Credential) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/1/members/me/boards", cred, url.Values{"fields": {"name,url,shortLink"}})
}

// ListBoardContents returns the board's lists with their open cards
func (c *Client) ListBoardContents(ctx context.Context, cred Credential, boardID string) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/1/boards/"+url.PathEscape(boardID)+"/lists", cred, url.Values{
		"cards":       {"open"},
		"card_fields": {"name,idList,labels,due,shortUrl"},
	})
}

// GetCardDetail returns the card with attachments and its latest comments
func (c *Client) GetCardDetail(ctx context.Context, cred Credential, cardID string) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/1/cards/"+url.PathEscape(cardID), cred, url.Values{
		"attachments":   {"true"},
		"actions":       {"commentCard"},
		"actions_limit": {"20"},
	})
}

func (c *Client) MoveCard(ctx context.Context, cred Credential, cardID, targetListID string) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodPut, "/1/cards/"+url.PathEscape(cardID), cred, url.Values{"idList": {targetListID}})
}

func (c *Client) AddComment(ctx context.Context, cred Credential, cardID, text string) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodPost, "/1/cards/"+url.PathEscape(cardID)+"/actions/comments", cred, url.Values{"text": {text}})
}

// AddAttachment uploads the file as multipart form data
func (c *Client) AddAttachment(ctx context.Context, cred Credential, cardID string, file File) (json.RawMessage, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("key", cred.Key); err != nil {
		return nil, err
	}
	if err := form.WriteField("token", cred.Token); err != nil {
		return nil, err
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	var out json.RawMessage
	// key and token travel in the form body here
	err = c.do(ctx, http.MethodPost, "/1/cards/"+url.PathEscape(cardID)+"/attachments", Credential{}, nil, &body, form.FormDataContentType(), &out)
	return out, err
}

// CreateSubscription registers a webhook for resourceID pointing at callbackURL
func (c *Client) CreateSubscription(ctx context.Context, cred Credential, callbackURL, resourceID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := c.do(ctx, http.MethodPost, "/1/webhooks", cred, url.Values{
		"callbackURL": {callbackURL},
		"idModel":     {resourceID},
	}, nil, "", &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) DeleteSubscription(ctx context.Context, cred Credential, subscriptionID string) error {
	return c.do(ctx, http.MethodDelete, "/1/webhooks/"+url.PathEscape(subscriptionID), cred, nil, nil, "", nil)
}

func (c *Client) raw(ctx context.Context, method, path string, cred Credential, params url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, method, path, cred, params, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	cred Credential,
	params url.Values,
	body io.Reader,
	contentType string,
	out any,
) error {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if cred.Key != "" {
		q.Set("key", cred.Key)
	}
	if cred.Token != "" {
		q.Set("token", cred.Token)
	}
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trello %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read trello response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: payload}
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode trello response: %w", err)
	}
	return nil
}
