// Package contentgen talks to a generateContent style text generation API
// (Gemini REST) and implements ports.ContentGenerator.
package contentgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"donations/internal/core/ports"

	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultURL     = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"
	DefaultTimeout = 30 * time.Second

	temperature     = 0.7
	maxOutputTokens = 500
	maxErrorBody    = 512
)

var (
	ErrNotConfigured = errors.New("content generator: api key is not configured")
	ErrEmptyResponse = errors.New("content generator: response has no text")
)

// Config is read from the CONTENT_* environment settings. Zero URL and
// Timeout fall back to DefaultURL and DefaultTimeout.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client calls a Gemini style generateContent endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	prompts    Prompts
	policy     *bluemonday.Policy
	logger     *slog.Logger
}

var _ ports.ContentGenerator = (*Client)(nil)

// NewClient builds a client with the embedded prompt templates. A missing
// API key is accepted here; Generate then fails with ErrNotConfigured.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		prompts:    DefaultPrompts(),
		policy:     bluemonday.StrictPolicy(),
		logger:     logger.With("component", "contentgen"),
	}
}

// WithPrompts swaps the templates, mostly for tests and custom deployments.
func (c *Client) WithPrompts(prompts Prompts) *Client {
	c.prompts = prompts
	return c
}

type part struct {
	Text string `json:"text"`
}

type contentBlock struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []contentBlock   `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content contentBlock `json:"content"`
	} `json:"candidates"`
}

// Generate renders the prompt for req, posts it and returns the first
// candidate's text with any markup stripped. An answer without text is
// ErrEmptyResponse.
func (c *Client) Generate(ctx context.Context, req ports.ContentRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	prompt, err := c.prompts.Fill(req.Type, map[string]string{
		"items":      strings.Join(req.Items, ", "),
		"donorName":  req.DonorName,
		"centerName": req.CenterName,
		"date":       req.Date,
	})
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []contentBlock{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: temperature, MaxOutputTokens: maxOutputTokens},
	})
	if err != nil {
		return "", err
	}

	endpoint, err := url.Parse(c.url)
	if err != nil {
		return "", fmt.Errorf("content generator url: %w", err)
	}
	query := endpoint.Query()
	query.Set("key", c.apiKey)
	endpoint.RawQuery = query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.InfoContext(ctx, "calling content generator",
		"type", string(req.Type), "prompt_length", len(prompt))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("content generator request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("content generator returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode content generator response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := c.clean(decoded.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// clean strips markup the model may have produced and leaves plain text.
func (c *Client) clean(raw string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(raw)))
}
