package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"showsync/internal/models"
	"showsync/pkg/httputil"
	"showsync/pkg/logger"
)

// AccountClient talks to the first-party account/bookmark service. Bookmark
// calls carry a bearer token; callers that know the session is
// unauthenticated must short-circuit before reaching this client.
type AccountClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewAccountClient creates a client against the service's base URL
// (the segment before /auth and /bookmarks).
func NewAccountClient(baseURL string) *AccountClient {
	return &AccountClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httputil.NewDefaultHTTPClient(),
		logger:     logger.New(),
	}
}

// Login exchanges credentials for a bearer token.
func (c *AccountClient) Login(creds models.Credentials) (string, error) {
	var resp models.AuthResponse
	if err := c.do(http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates an account and returns its bearer token. Duplicate
// registration surfaces the service's message verbatim via RemoteError.
func (c *AccountClient) Register(creds models.Credentials) (string, error) {
	var resp models.AuthResponse
	if err := c.do(http.MethodPost, "/auth/register", "", creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// FetchBookmarks returns the account's full bookmark identifier set.
func (c *AccountClient) FetchBookmarks(token string) ([]int, error) {
	var ids []int
	if err := c.do(http.MethodGet, "/bookmarks", token, nil, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// AddBookmark inserts an identifier into the remote set.
func (c *AccountClient) AddBookmark(token string, mediaID int) error {
	return c.do(http.MethodPost, fmt.Sprintf("/bookmarks/%d", mediaID), token, nil, nil)
}

// RemoveBookmark deletes an identifier from the remote set.
func (c *AccountClient) RemoveBookmark(token string, mediaID int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/bookmarks/%d", mediaID), token, nil, nil)
}

func (c *AccountClient) do(method, path, token string, payload, out interface{}) error {
	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("account service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		remote := &RemoteError{StatusCode: resp.StatusCode}
		var apiErr models.APIError
		if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
			if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
				remote.Message = apiErr.Message
			}
		}
		return remote
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
