// internal/domain/cartapi/client.go
package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/your-org/storefront-bff/internal/config"
)

// Client talks to the fixed external cart API. Every mutation is a
// single request/response round trip; callers sequence mutate then
// re-fetch so rendering always reflects the server's post-mutation
// truth rather than an optimistic guess.
type Client struct {
	config     *config.Config
	httpClient *http.Client
}

// NewClient creates a new cart API client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Upstream.Timeout,
		},
	}
}

// Session binds the client to one visitor's upstream cart. The token
// travels as a header; the upstream keys its cart by it.
type Session struct {
	client *Client
	token  string
}

// Session returns a session-bound view of the client
func (c *Client) Session(token string) *Session {
	return &Session{
		client: c,
		token:  token,
	}
}

// AddItems adds a batch of items to the cart. A non-success status
// fails with an *AddItemError carrying the server's description.
func (s *Session) AddItems(ctx context.Context, items []AddItem) (*AddResult, error) {
	payload := map[string]interface{}{"items": items}

	resp, body, err := s.roundTrip(ctx, http.MethodPost, s.client.config.Upstream.AddPath, payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		description := genericAddFailure
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			if eb.Description != "" {
				description = eb.Description
			} else if eb.Message != "" {
				description = eb.Message
			}
		}
		return nil, &AddItemError{Status: resp.StatusCode, Description: description}
	}

	var result AddResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse add response: %w", err)
	}

	return &result, nil
}

// UpdateLines updates multiple line items by key. Quantity 0 removes
// a line. A non-success status fails with an *UpdateError.
func (s *Session) UpdateLines(ctx context.Context, updates map[string]int) (*Cart, error) {
	payload := map[string]interface{}{"updates": updates}

	resp, body, err := s.roundTrip(ctx, http.MethodPost, s.client.config.Upstream.UpdatePath, payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpdateError{Status: resp.StatusCode}
	}

	var cart Cart
	if err := json.Unmarshal(body, &cart); err != nil {
		return nil, fmt.Errorf("failed to parse update response: %w", err)
	}

	return &cart, nil
}

// ChangeLine changes one line item's quantity. Quantity 0 removes the
// line. A non-success status fails with an *UpdateError.
func (s *Session) ChangeLine(ctx context.Context, key string, quantity int) (*Cart, error) {
	payload := map[string]interface{}{
		"id":       key,
		"quantity": quantity,
	}

	resp, body, err := s.roundTrip(ctx, http.MethodPost, s.client.config.Upstream.ChangePath, payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpdateError{Status: resp.StatusCode}
	}

	var cart Cart
	if err := json.Unmarshal(body, &cart); err != nil {
		return nil, fmt.Errorf("failed to parse change response: %w", err)
	}

	return &cart, nil
}

// FetchCart returns the current server-side cart snapshot
func (s *Session) FetchCart(ctx context.Context) (*Cart, error) {
	resp, body, err := s.roundTrip(ctx, http.MethodGet, s.client.config.Upstream.CartPath, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch cart (status %d)", resp.StatusCode)
	}

	var cart Cart
	if err := json.Unmarshal(body, &cart); err != nil {
		return nil, fmt.Errorf("failed to parse cart response: %w", err)
	}

	return &cart, nil
}

// roundTrip performs one JSON request/response cycle against the
// upstream API
func (s *Session) roundTrip(ctx context.Context, method, path string, data interface{}) (*http.Response, []byte, error) {
	var reqBody []byte
	var err error

	if data != nil {
		reqBody, err = json.Marshal(data)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.config.Upstream.BaseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Cart-Token", s.token)

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reach cart API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp, body, nil
}
