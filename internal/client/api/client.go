// Package api is the HTTP client for the Lockbox server. It speaks the
// cookie-based session protocol and persists the session token locally so a
// login survives across CLI runs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sentinel errors mapped from HTTP status codes.
var (
	ErrUnauthorized = errors.New("not authenticated")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("rejected")
	ErrServer       = errors.New("server error")
)

const sessionCookieName = "auth_token"

// ItemSummary is one row of the vault listing.
type ItemSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Size      string `json:"size"`
	DateAdded string `json:"dateAdded"`
}

// ItemDetail is a fetched, decrypted item.
type ItemDetail struct {
	Content string `json:"content"`
	Type    string `json:"type"`
	Name    string `json:"name"`
}

// CreateItemRequest is the body of a store request. Content is plaintext for
// text items and a base64 data URL for file items.
type CreateItemRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Name    string `json:"name"`
	Size    string `json:"size"`
}

// Client talks to one Lockbox server on behalf of one session.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *SessionStore
	token    string
}

// NewClient builds a Client for the server at baseURL, restoring any session
// persisted in the store.
func NewClient(baseURL string, sessions *SessionStore) (*Client, error) {
	token, err := sessions.Load()
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		sessions: sessions,
		token:    token,
	}, nil
}

// HasSession reports whether a session token is present. The token may still
// be expired; the server is the judge.
func (c *Client) HasSession() bool {
	return c.token != ""
}

type errorBody struct {
	Error string `json:"error"`
}

// statusErr maps a non-2xx response to a sentinel error, keeping the server's
// message for display.
func statusErr(resp *http.Response, body []byte) error {
	var eb errorBody
	msg := http.StatusText(resp.StatusCode)
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		msg = eb.Error
	}

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		sentinel = ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		sentinel = ErrBadRequest
	default:
		sentinel = ErrServer
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}

// do sends a request with the session cookie attached and returns the
// response body. out, when non-nil, receives the decoded JSON body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: c.token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return statusErr(resp, data)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			c.token = cookie.Value
			if cookie.MaxAge < 0 {
				c.token = ""
			}
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsLogin  bool   `json:"isLogin"`
}

// Register creates an account and stores the resulting session.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, email, password, false)
}

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, email, password, true)
}

func (c *Client) authenticate(ctx context.Context, email, password string, isLogin bool) error {
	err := c.do(ctx, http.MethodPost, "/auth", authRequest{Email: email, Password: password, IsLogin: isLogin}, nil)
	if err != nil {
		return err
	}
	if c.token == "" {
		return fmt.Errorf("%w: no session cookie in response", ErrServer)
	}
	return c.sessions.Save(c.token)
}

// Logout ends the session on both sides: the server expires the cookie and
// the local session file is removed.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil); err != nil {
		return err
	}
	c.token = ""
	return c.sessions.Clear()
}

// List returns the vault's item metadata, newest first.
func (c *Client) List(ctx context.Context) ([]ItemSummary, error) {
	var items []ItemSummary
	if err := c.do(ctx, http.MethodGet, "/vault", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create stores a new item and returns its ID.
func (c *Client) Create(ctx context.Context, req CreateItemRequest) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/vault", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Fetch returns one decrypted item.
func (c *Client) Fetch(ctx context.Context, id string) (*ItemDetail, error) {
	var out ItemDetail
	if err := c.do(ctx, http.MethodGet, "/vault/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes one item.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/vault/"+id, nil, nil)
}
