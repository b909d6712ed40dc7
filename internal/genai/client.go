// Package genai wraps the Gemini SDK for single-turn generation.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	googleai "google.golang.org/genai"
)

type Request struct {
	Model             string
	SystemInstruction string
	Contents          string
}

type Response struct {
	Text string
}

// KeySource yields the API key for one request.
type KeySource func() (string, error)

type Config struct {
	// Endpoint overrides the service base URL; empty uses the SDK default.
	Endpoint string
	Timeout  time.Duration
	Key      KeySource
}

type Client struct {
	endpoint string
	key      KeySource
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		endpoint: strings.TrimSpace(cfg.Endpoint),
		key:      cfg.Key,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate sends a single-turn request. A reply with no candidates is not an
// error; it yields an empty Text. The key is resolved on every call, so an
// SDK client is built per request.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	key, err := c.apiKey()
	if err != nil {
		return nil, err
	}

	cc := &googleai.ClientConfig{
		APIKey:     key,
		Backend:    googleai.BackendGeminiAPI,
		HTTPClient: c.http,
	}
	if c.endpoint != "" {
		cc.HTTPOptions = googleai.HTTPOptions{BaseURL: c.endpoint}
	}
	client, err := googleai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("genai: new client: %w", err)
	}

	var gc *googleai.GenerateContentConfig
	if req.SystemInstruction != "" {
		gc = &googleai.GenerateContentConfig{
			SystemInstruction: googleai.NewContentFromText(req.SystemInstruction, googleai.RoleUser),
		}
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, googleai.Text(req.Contents), gc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if apiErr := asAPIError(err); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("genai: generate: %w", err)
	}
	return &Response{Text: replyText(resp)}, nil
}

// replyText joins the non-thought parts of the first candidate.
func replyText(resp *googleai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			text.WriteString(p.Text)
		}
	}
	return text.String()
}

func asAPIError(err error) *APIError {
	var v googleai.APIError
	if errors.As(err, &v) {
		return &APIError{Code: v.Code, Status: v.Status, Message: v.Message}
	}
	var p *googleai.APIError
	if errors.As(err, &p) && p != nil {
		return &APIError{Code: p.Code, Status: p.Status, Message: p.Message}
	}
	return nil
}

func (c *Client) apiKey() (string, error) {
	if c.key == nil {
		return "", ErrMissingAPIKey
	}
	key, err := c.key()
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

// IsAPIError reports whether err carries a service-side failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
