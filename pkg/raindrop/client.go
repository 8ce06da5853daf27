package raindrop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/semanario-hq/semanario/internal/domain"
	"github.com/semanario-hq/semanario/pkg/httpclient"
)

// Package raindrop fetches bookmark records from the Raindrop.io REST API.

const (
	// DefaultBaseURL is the Raindrop.io REST endpoint prefix.
	DefaultBaseURL = "https://api.raindrop.io/rest/v1"

	// DefaultTimeout bounds a single fetch; there is no retry behind it.
	DefaultTimeout = 15 * time.Second

	// collection 0 is the service's "all bookmarks" pseudo-collection
	allBookmarksPath = "/raindrops/0"
)

// Client retrieves bookmarks for a bearer token. It is stateless: the token
// is a per-call parameter, not client state.
type Client struct {
	http    httpclient.Client
	baseURL string
}

// NewClient builds a Client around the given HTTP transport. A nil client
// gets the default resty transport; an empty baseURL gets DefaultBaseURL.
func NewClient(client httpclient.Client, baseURL string) *Client {
	if client == nil {
		client = httpclient.NewRestyClient(DefaultTimeout)
	}
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{http: client, baseURL: baseURL}
}

// itemsEnvelope mirrors the service's success body. Items is a pointer so a
// missing field is distinguishable from an empty collection.
type itemsEnvelope struct {
	Items *[]domain.Bookmark `json:"items"`
}

// Fetch retrieves the complete first page of bookmarks for the token. A
// non-2xx status yields a *RemoteFetchError; a body without a usable items
// array yields a *ParseError. No pagination is attempted.
func (c *Client) Fetch(ctx context.Context, token string) ([]domain.Bookmark, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("raindrop token is empty")
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"Accept":        "application/json",
	}

	resp, err := c.http.Get(ctx, c.baseURL+allBookmarksPath, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch bookmarks: %w", err)
	}

	body := resp.Body()
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &RemoteFetchError{Status: resp.StatusCode(), Snippet: responseSnippet(body)}
	}

	var envelope itemsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ParseError{Reason: "malformed body", Cause: err}
	}
	if envelope.Items == nil {
		return nil, &ParseError{Reason: "items field missing"}
	}
	return *envelope.Items, nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
