// Package api is the JSON client for the remote storefront backend. The
// backend is an external collaborator: this package shapes requests and
// surfaces its error messages, nothing more.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// AuthMode selects which bearer token, if any, a request carries.
type AuthMode string

const (
	AuthNone   AuthMode = "none"
	AuthUser   AuthMode = "user"
	AuthVendor AuthMode = "vendor"
	// AuthAuto picks the user or vendor token by the profile's auth-type
	// flag, the behavior pages get when they just say "authenticated".
	AuthAuto AuthMode = "auto"
)

// tokenSource is the slice of the session manager the client needs.
type tokenSource interface {
	Token(ctx context.Context) string
	VendorToken(ctx context.Context) string
	ActiveToken(ctx context.Context) string
}

// Error is a non-2xx backend response, carrying the status code and the
// message the backend put in its body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenSource
}

// New builds a Client for baseURL (including the /api prefix, no trailing
// slash required).
func New(baseURL string, tokens tokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Do issues method path against the backend. body, when non-nil, is sent
// as JSON. out, when non-nil, receives the decoded 2xx response body; an
// undecodable success body leaves out untouched rather than failing, so a
// backend that answers 204 or plain text still counts as success.
func (c *Client) Do(ctx context.Context, method, path string, auth AuthMode, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokenFor(ctx, auth); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp)}
	}

	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) tokenFor(ctx context.Context, auth AuthMode) string {
	switch auth {
	case AuthUser:
		return c.tokens.Token(ctx)
	case AuthVendor:
		return c.tokens.VendorToken(ctx)
	case AuthAuto:
		return c.tokens.ActiveToken(ctx)
	default:
		return ""
	}
}

// errorMessage digs the human-readable message out of an error body,
// trying the message field, then error, then a fixed fallback.
func errorMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message != "" {
		return body.Message
	}
	if body.Err != "" {
		return body.Err
	}
	return "Request failed"
}

// placeholderImage is what product cards render while a real image is
// missing.
const placeholderImage = "images/placeholder.jpg"

// ResolveImageURL maps the backend's loose imageUrl field to something a
// page can load: absolute URLs pass through, backend-relative uploads get
// the API host prefixed, anything else is left to the page.
func (c *Client) ResolveImageURL(imageURL string) string {
	u := strings.TrimSpace(imageURL)
	if u == "" {
		return placeholderImage
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if strings.HasPrefix(u, "/uploads") {
		return c.baseURL + u
	}
	return u
}
