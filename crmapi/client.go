// Package crmapi is the HTTP client for the CRM REST backend. Every request
// carries the session user's access token from the request context.
package crmapi

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

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/userctx"
)

const maxErrorBody = 64 << 10

// ErrUnsuccessful is returned when the backend answers 2xx with success=false
var ErrUnsuccessful = errors.New("crm api reported failure")

// StatusError is a non-2xx response from the backend
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("crm api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("crm api: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps authorization and lookup failures onto the domain sentinels
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return models.ErrUnauthorized
	case http.StatusForbidden:
		return models.ErrForbidden
	case http.StatusNotFound:
		return models.ErrNotFound
	}
	return nil
}

// Client talks to the CRM backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	authCookie string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithAuthCookie also sends the access token as a cookie with this name
func WithAuthCookie(name string) Option {
	return func(c *Client) {
		c.authCookie = name
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid CRM API base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid CRM API base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// EntityAuditLogs reads one page of audit entries scoped to an entity
func (c *Client) EntityAuditLogs(ctx context.Context, entityType models.EntityType, entityID string, q models.AuditQuery) (*models.AuditPage, error) {
	params := url.Values{}
	for key, value := range q.Filters {
		params.Set(key, value)
	}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset()))

	path := "/api/audit-logs/entity/" + url.PathEscape(entityType.String()) + "/" + url.PathEscape(entityID)

	var resp struct {
		Success    bool                   `json:"success"`
		Message    string                 `json:"message"`
		Data       []models.AuditLogEntry `json:"data"`
		Total      int                    `json:"total"`
		Pagination struct {
			Pages int `json:"pages"`
			Limit int `json:"limit"`
		} `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, path, params, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, resp.Message)
	}

	page := &models.AuditPage{
		Entries: resp.Data,
		Total:   resp.Total,
		Pages:   resp.Pagination.Pages,
		Limit:   resp.Pagination.Limit,
	}
	if page.Entries == nil {
		page.Entries = []models.AuditLogEntry{}
	}
	if page.Limit <= 0 {
		page.Limit = q.Limit
	}
	if page.Pages == 0 && page.Total > 0 && page.Limit > 0 {
		page.Pages = (page.Total + page.Limit - 1) / page.Limit
	}
	return page, nil
}

// TicketComments lists the comments of a ticket
func (c *Client) TicketComments(ctx context.Context, ticketID string) ([]models.Comment, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, ticketCommentsPath(ticketID), nil, nil, &raw); err != nil {
		return nil, err
	}

	comments := []models.Comment{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &comments); err != nil {
			return nil, fmt.Errorf("failed to decode comments: %w", err)
		}
		return comments, nil
	}

	var envelope struct {
		Data []models.Comment `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	if envelope.Data != nil {
		comments = envelope.Data
	}
	return comments, nil
}

// AddTicketComment posts a new comment on a ticket
func (c *Client) AddTicketComment(ctx context.Context, ticketID string, input models.CommentInput) (*models.Comment, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, ticketCommentsPath(ticketID), nil, input, &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		Data *models.Comment `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var comment models.Comment
	if err := json.Unmarshal(raw, &comment); err != nil {
		return nil, fmt.Errorf("failed to decode created comment: %w", err)
	}
	return &comment, nil
}

func ticketCommentsPath(ticketID string) string {
	return "/api/tickets/" + url.PathEscape(ticketID) + "/comments"
}

// do issues one request and decodes a 2xx JSON body into out
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := userctx.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	user := userctx.GetUser(ctx)
	if c.authCookie != "" && user != nil && user.AccessToken != "" {
		req.AddCookie(&http.Cookie{Name: c.authCookie, Value: user.AccessToken})
	}

	resp, err := c.clientFor(user).Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		log.WithFields(log.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Debug("CRM API returned non-success status")
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// clientFor wraps the base client in an oauth2 transport carrying the user's token
func (c *Client) clientFor(user *models.User) *http.Client {
	if user == nil || user.AccessToken == "" {
		return c.httpClient
	}

	token := &oauth2.Token{AccessToken: user.AccessToken, TokenType: "Bearer"}
	if user.TokenExpiry > 0 {
		token.Expiry = time.Unix(user.TokenExpiry, 0)
	}

	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(token),
			Base:   c.httpClient.Transport,
		},
		Timeout: c.httpClient.Timeout,
	}
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(data))
}
