// Package api is the HTTP client for the gallery server. It normalizes both
// feed response shapes (paginated object and legacy flat array) into one
// canonical Page before anything reaches the sync engine.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/olegsm/imagewall/internal/common"
	"github.com/olegsm/imagewall/internal/client/models"
	"github.com/olegsm/imagewall/internal/logging"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	mu    sync.RWMutex
	token string
}

func New(baseURL string, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	ChallengeToken string `json:"challenge_token,omitempty"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type pageResponse struct {
	Items      []*models.Entry `json:"items"`
	HasMore    bool            `json:"has_more"`
	NextCursor int64           `json:"next_cursor"`
	Limit      int             `json:"limit"`
}

// Register creates a new account on the server.
func (c *Client) Register(ctx context.Context, username, password string) error {

	payload, err := json.Marshal(registerRequest{Username: username, Password: password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/register", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// Login authenticates and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, username, password, challengeToken string) error {

	payload, err := json.Marshal(loginRequest{Username: username, Password: password, ChallengeToken: challengeToken})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/login", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("decoding login response: %w", err)
	}

	c.SetToken(lr.AccessToken)
	return nil
}

// FetchPage retrieves one feed page. A zero cursor requests the first page.
func (c *Client) FetchPage(ctx context.Context, cursor int64, limit int) (*models.Page, error) {

	u := fmt.Sprintf("%s/api/v1/entries?limit=%d", c.baseURL, limit)
	if cursor > 0 {
		u = fmt.Sprintf("%s&cursor=%d", u, cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching entries: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading entries response: %w", err)
	}

	return normalizePage(body)
}

// normalizePage folds both response shapes into the canonical Page: a JSON
// array is the legacy flat list (one exhausted page), an object is the
// paginated shape.
func normalizePage(body []byte) (*models.Page, error) {

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty entries response")
	}

	switch trimmed[0] {
	case '[':
		var items []*models.Entry
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decoding legacy entry list: %w", err)
		}
		return &models.Page{Items: items}, nil
	case '{':
		var pr pageResponse
		if err := json.Unmarshal(trimmed, &pr); err != nil {
			return nil, fmt.Errorf("decoding entry page: %w", err)
		}
		if pr.Items == nil {
			pr.Items = []*models.Entry{}
		}
		return &models.Page{Items: pr.Items, HasMore: pr.HasMore, NextCursor: pr.NextCursor, Limit: pr.Limit}, nil
	}

	return nil, fmt.Errorf("unrecognized entries response shape")
}

// DeleteEntry removes one entry on the server.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {

	u := fmt.Sprintf("%s/api/v1/entries/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set(common.AuthHeaderName, common.BearerPrefix+c.bearer())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("deleting entry %d: %w", id, err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// Resolve confirms the file reference is servable and returns its display
// URL. The HEAD probe walks the server's provider chain without pulling the
// bytes down.
func (c *Client) Resolve(ctx context.Context, fileRef string) (string, error) {

	u := c.FileURL(fileRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolving file %q: %w", fileRef, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	return u, nil
}

// FileURL returns the byte-serving URL for a file reference.
func (c *Client) FileURL(fileRef string) string {
	return c.baseURL + "/api/v1/files/" + url.PathEscape(fileRef)
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return common.ErrInvalidRequest
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return common.ErrorUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case resp.StatusCode == http.StatusBadGateway:
		return common.ErrResolveFailed
	default:
		return fmt.Errorf("server returned %s", resp.Status)
	}
}
